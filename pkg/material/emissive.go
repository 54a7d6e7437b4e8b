package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// DiffuseLight represents a light-emitting material that never scatters
type DiffuseLight struct {
	Emission ColorSource // Emitted radiance
	OneSided bool        // Emit only from the front face
}

// NewDiffuseLight creates a new emissive material with constant radiance
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emission: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a new emissive material with texture-sampled radiance
func NewTexturedDiffuseLight(emission ColorSource) *DiffuseLight {
	return &DiffuseLight{Emission: emission}
}

// Scatter always absorbs: lights only emit
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the radiance leaving the surface at the hit point
func (e *DiffuseLight) Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3 {
	if e.OneSided && !hit.FrontFace {
		return core.Vec3{}
	}
	return e.Emission.Evaluate(hit.UV, hit.Point)
}
