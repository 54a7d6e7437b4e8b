package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedoTexture ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedoTexture}
}

// Scatter samples a cosine-weighted direction around the surface normal
func (l *Lambertian) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	pdf := core.NewCosinePDF(hit.Normal)
	scattered := core.NewRayAtTime(hit.Point, pdf.Generate(sampler), rayIn.Time)

	return ScatterResult{
		Attenuation: l.Albedo.Evaluate(hit.UV, hit.Point),
		PDF:         pdf,
		Scattered:   scattered,
	}, true
}

// ScatteringPDF returns cos(θ)/π for directions above the surface and zero below
func (l *Lambertian) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	cosTheta := hit.Normal.Dot(scattered.Direction.Normalize())
	if cosTheta < 0 {
		return 0
	}
	return cosTheta / math.Pi
}

func (l *Lambertian) albedoAt(uv core.Vec2, point core.Vec3) core.Vec3 {
	return l.Albedo.Evaluate(uv, point)
}
