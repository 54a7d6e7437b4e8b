package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Material interface for surfaces and volumes that can scatter rays
type Material interface {
	// Scatter returns the attenuation and scattering strategy for an incoming ray,
	// or false if the ray is absorbed
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter is implemented by materials that emit light
type Emitter interface {
	Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3
}

// ScatteringPDF is implemented by materials with a non-delta scattering distribution.
// It returns the density of scattering rayIn into scattered.
type ScatteringPDF interface {
	ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Attenuation core.Vec3 // Color attenuation
	PDF         core.PDF  // Sampling strategy; nil for specular scattering
	Scattered   core.Ray  // Sampled ray (drawn from PDF when one is set)
}

// IsSpecular returns true if the scattered ray is deterministic given the sample (no PDF)
func (s ScatterResult) IsSpecular() bool {
	return s.PDF == nil
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always facing against the incoming ray
	T         float64   // Parameter t along the ray
	UV        core.Vec2 // Surface texture coordinates
	FrontFace bool      // Whether ray hit the front face
	Albedo    core.Vec3 // Surface albedo at the hit, when the material exposes one
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal is assumed to have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// SetMaterial records the material and, when available, its albedo at the hit.
// Point and UV must already be set.
func (h *HitRecord) SetMaterial(m Material) {
	h.Material = m
	if source, ok := m.(albedoSource); ok {
		h.Albedo = source.albedoAt(h.UV, h.Point)
	}
}

type albedoSource interface {
	albedoAt(uv core.Vec2, point core.Vec3) core.Vec3
}
