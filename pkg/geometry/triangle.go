package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3         // The three vertices
	Material   material.Material // Material of the triangle
	edge1      core.Vec3         // V1 - V0
	edge2      core.Vec3         // V2 - V0
	normal     core.Vec3         // Cached unit normal, following the vertex winding
	bbox       core.AABB         // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
		edge1:    edge1,
		edge2:    edge2,
		normal:   edge1.Cross(edge2).Normalize(),
		bbox:     core.NewAABBFromPoints(v0, v1, v2),
	}
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm.
// Both faces are hit (no back-face culling).
func (t *Triangle) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	const epsilon = 1e-8

	h := ray.Direction.Cross(t.edge2)
	a := t.edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(t.edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tParam := f * t.edge2.Dot(q)
	if !rayT.Surrounds(tParam) {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:     tParam,
		Point: ray.At(tParam),
		UV:    core.NewVec2(u, v),
	}
	hitRecord.SetFaceNormal(ray, t.normal)
	hitRecord.SetMaterial(t.Material)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the triangle's geometric normal (follows vertex winding)
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
