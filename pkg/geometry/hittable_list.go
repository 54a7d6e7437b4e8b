package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// HittableList is an ordered collection of hittables tested by linear scan
type HittableList struct {
	Objects []Hittable
	bbox    core.AABB
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{bbox: core.EmptyAABB}
	for _, object := range objects {
		list.Add(object)
	}
	return list
}

// Add appends an object and grows the list's bounding box
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
	l.bbox = core.MergeAABB(l.bbox, object.BoundingBox())
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest hit among all objects
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); isHit {
			closestHit = hit
			closestSoFar = hit.T
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the merged box of all objects (empty for an empty list)
func (l *HittableList) BoundingBox() core.AABB {
	return l.bbox
}

// PDFValue averages the direction densities of the listed shapes.
// Objects that cannot be sampled contribute a uniform sphere density.
func (l *HittableList) PDFValue(origin, direction core.Vec3) float64 {
	if len(l.Objects) == 0 {
		return 0
	}

	weight := 1.0 / float64(len(l.Objects))
	sum := 0.0
	for _, object := range l.Objects {
		if shape, ok := object.(SampleableShape); ok {
			sum += weight * shape.PDFValue(origin, direction)
		} else {
			sum += weight * core.NewSpherePDF().Value(direction)
		}
	}
	return sum
}

// RandomDirection picks one object uniformly and samples a direction toward it
func (l *HittableList) RandomDirection(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if len(l.Objects) == 0 {
		return core.NewSpherePDF().Generate(sampler)
	}

	index := int(sampler.Get1D() * float64(len(l.Objects)))
	if index >= len(l.Objects) {
		index = len(l.Objects) - 1
	}

	if shape, ok := l.Objects[index].(SampleableShape); ok {
		return shape.RandomDirection(origin, sampler)
	}
	return core.NewSpherePDF().Generate(sampler)
}
