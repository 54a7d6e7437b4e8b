package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Isotropic is the phase function of a participating medium: it scatters uniformly in all directions
type Isotropic struct {
	Albedo ColorSource
}

// NewIsotropic creates an isotropic phase function with a solid albedo
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates an isotropic phase function with a textured albedo
func NewTexturedIsotropic(albedo ColorSource) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter samples a uniform direction on the sphere
func (i *Isotropic) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	pdf := core.NewSpherePDF()
	return ScatterResult{
		Attenuation: i.Albedo.Evaluate(hit.UV, hit.Point),
		PDF:         pdf,
		Scattered:   core.NewRayAtTime(hit.Point, pdf.Generate(sampler), rayIn.Time),
	}, true
}

// ScatteringPDF is 1/(4π) for every direction
func (i *Isotropic) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 1 / (4 * math.Pi)
}

func (i *Isotropic) albedoAt(uv core.Vec2, point core.Vec3) core.Vec3 {
	return i.Albedo.Evaluate(uv, point)
}
