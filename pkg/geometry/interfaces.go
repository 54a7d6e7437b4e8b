package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect: primitives, lists, BVH nodes,
// transform wrappers and participating media all compose through it.
type Hittable interface {
	// Hit returns the closest intersection with ray.At(t) for t inside rayT
	Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
	// BoundingBox returns the box enclosing the object over the whole shutter interval
	BoundingBox() core.AABB
}

// SampleableShape is a Hittable that can be importance sampled as a light source
type SampleableShape interface {
	Hittable
	// PDFValue returns the solid-angle density of sampling direction from origin
	PDFValue(origin, direction core.Vec3) float64
	// RandomDirection returns a direction from origin towards a random point on the shape
	RandomDirection(origin core.Vec3, sampler core.Sampler) core.Vec3
}
