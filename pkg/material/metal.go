package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Vec3 // Metal color
	Fuzzness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	fuzzness = max(0.0, min(1.0, fuzzness))
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// Scatter reflects the incoming ray about the normal, perturbed by the fuzz factor.
// Rays perturbed below the surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)

	if m.Fuzzness > 0 {
		perturbation := core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzzness)
		reflected = reflected.Add(perturbation)
	}

	scattered := core.NewRayAtTime(hit.Point, reflected, rayIn.Time)
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Attenuation: m.Albedo,
		Scattered:   scattered,
	}, true
}

func (m *Metal) albedoAt(uv core.Vec2, point core.Vec3) core.Vec3 {
	return m.Albedo
}
