package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter reflects or refracts the incoming ray, choosing reflection under total
// internal reflection or with probability equal to the Fresnel reflectance
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	refractionRatio := d.RefractiveIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = unitDirection.Reflect(hit.Normal)
	} else {
		direction = unitDirection.Refract(hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Attenuation: core.NewVec3(1.0, 1.0, 1.0),
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
