package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// HittablePDF samples directions from a fixed origin toward a sampleable shape
type HittablePDF struct {
	Shape  SampleableShape
	Origin core.Vec3
}

// NewHittablePDF creates a PDF of directions from origin toward shape
func NewHittablePDF(shape SampleableShape, origin core.Vec3) *HittablePDF {
	return &HittablePDF{Shape: shape, Origin: origin}
}

// Value returns the solid-angle density of direction
func (p *HittablePDF) Value(direction core.Vec3) float64 {
	return p.Shape.PDFValue(p.Origin, direction)
}

// Generate samples a direction toward the shape
func (p *HittablePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.Shape.RandomDirection(p.Origin, sampler)
}
