package core

import "math"

// PDF is a direction sampling strategy that can also evaluate its own density
type PDF interface {
	// Value returns the solid-angle density of sampling direction
	Value(direction Vec3) float64
	// Generate draws a direction from the distribution
	Generate(sampler Sampler) Vec3
}

// CosinePDF samples the hemisphere around a normal with density cos(θ)/π
type CosinePDF struct {
	uvw ONB
}

// NewCosinePDF creates a cosine-weighted hemisphere PDF around normal
func NewCosinePDF(normal Vec3) *CosinePDF {
	return &CosinePDF{uvw: NewONB(normal)}
}

// Value returns cos(θ)/π, or zero below the hemisphere
func (p *CosinePDF) Value(direction Vec3) float64 {
	cosTheta := direction.Normalize().Dot(p.uvw.W)
	return math.Max(0, cosTheta/math.Pi)
}

// Generate draws a cosine-weighted direction
func (p *CosinePDF) Generate(sampler Sampler) Vec3 {
	return p.uvw.Transform(SampleCosineDirection(sampler.Get2D()))
}

// SpherePDF samples all directions uniformly
type SpherePDF struct{}

// NewSpherePDF creates a uniform sphere PDF
func NewSpherePDF() *SpherePDF {
	return &SpherePDF{}
}

// Value returns 1/(4π) for every direction
func (p *SpherePDF) Value(direction Vec3) float64 {
	return 1 / (4 * math.Pi)
}

// Generate draws a uniform direction on the unit sphere
func (p *SpherePDF) Generate(sampler Sampler) Vec3 {
	return SampleOnUnitSphere(sampler.Get2D())
}

// MixturePDF combines two PDFs with equal weight
type MixturePDF struct {
	P [2]PDF
}

// NewMixturePDF creates a 50/50 mixture of p0 and p1
func NewMixturePDF(p0, p1 PDF) *MixturePDF {
	return &MixturePDF{P: [2]PDF{p0, p1}}
}

// Value returns the average of both densities
func (m *MixturePDF) Value(direction Vec3) float64 {
	return 0.5*m.P[0].Value(direction) + 0.5*m.P[1].Value(direction)
}

// Generate picks one of the two PDFs with a fair coin and samples it
func (m *MixturePDF) Generate(sampler Sampler) Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.P[0].Generate(sampler)
	}
	return m.P[1].Generate(sampler)
}
