package integrator

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// shadowAcneEpsilon keeps scattered rays from re-hitting the surface they leave
const shadowAcneEpsilon = 0.001

// PathTracer implements depth-bounded unidirectional path tracing with a flat background.
// When Lights is set, diffuse bounces mix light sampling 50/50 with the material's own PDF.
type PathTracer struct {
	Background core.Vec3
	Lights     geometry.SampleableShape
}

// NewPathTracer creates a path tracer; lights may be nil to sample materials only
func NewPathTracer(background core.Vec3, lights geometry.SampleableShape) *PathTracer {
	return &PathTracer{
		Background: background,
		Lights:     lights,
	}
}

// RayColor computes the color for a single ray. Recursion ends at depth 0, on a miss
// or when the material absorbs the ray.
func (pt *PathTracer) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, core.NewInterval(shadowAcneEpsilon, math.Inf(1)))
	if !isHit {
		return pt.Background
	}
	if hit.Material == nil {
		return core.Vec3{}
	}

	colorEmitted := emittedLight(ray, hit)

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return colorEmitted
	}

	if scatter.IsSpecular() {
		return colorEmitted.Add(scatter.Attenuation.MultiplyVec(
			pt.RayColor(scatter.Scattered, world, sampler, depth-1)))
	}

	return colorEmitted.Add(pt.diffuseColor(ray, hit, scatter, world, sampler, depth))
}

// diffuseColor weights the recursive estimate by attenuation × scattering pdf / sampling pdf
func (pt *PathTracer) diffuseColor(ray core.Ray, hit *material.HitRecord, scatter material.ScatterResult, world geometry.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	samplingPDF := scatter.PDF
	scattered := scatter.Scattered

	if pt.Lights != nil {
		samplingPDF = core.NewMixturePDF(geometry.NewHittablePDF(pt.Lights, hit.Point), scatter.PDF)
		scattered = core.NewRayAtTime(hit.Point, samplingPDF.Generate(sampler), ray.Time)
	}

	pdfValue := samplingPDF.Value(scattered.Direction)
	if pdfValue <= 0 || math.IsNaN(pdfValue) || math.IsInf(pdfValue, 0) {
		return core.Vec3{}
	}

	scatteringPDF := scatter.PDF.Value(scattered.Direction)
	if m, ok := hit.Material.(material.ScatteringPDF); ok {
		scatteringPDF = m.ScatteringPDF(ray, hit, scattered)
	}
	if scatteringPDF <= 0 {
		return core.Vec3{}
	}

	sampleColor := pt.RayColor(scattered, world, sampler, depth-1)
	return scatter.Attenuation.Multiply(scatteringPDF / pdfValue).MultiplyVec(sampleColor)
}

// emittedLight returns the emitted light from a material if it's emissive
func emittedLight(ray core.Ray, hit *material.HitRecord) core.Vec3 {
	if emitter, isEmissive := hit.Material.(material.Emitter); isEmissive {
		return emitter.Emitted(ray, hit)
	}
	return core.Vec3{}
}
