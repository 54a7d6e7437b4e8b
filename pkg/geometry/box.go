package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Box is an axis-aligned box made of six quads.
// Rotate or move it by wrapping it in RotateY and Translate.
type Box struct {
	Min, Max core.Vec3
	Material material.Material
	faces    *HittableList
}

// NewBox creates the box spanned by two opposite corners a and b
func NewBox(a, b core.Vec3, mat material.Material) *Box {
	minCorner := core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
	maxCorner := core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))

	dx := core.NewVec3(maxCorner.X-minCorner.X, 0, 0)
	dy := core.NewVec3(0, maxCorner.Y-minCorner.Y, 0)
	dz := core.NewVec3(0, 0, maxCorner.Z-minCorner.Z)

	faces := NewHittableList(
		NewQuad(core.NewVec3(minCorner.X, minCorner.Y, maxCorner.Z), dx, dy, mat),          // front
		NewQuad(core.NewVec3(maxCorner.X, minCorner.Y, maxCorner.Z), dz.Negate(), dy, mat), // right
		NewQuad(core.NewVec3(maxCorner.X, minCorner.Y, minCorner.Z), dx.Negate(), dy, mat), // back
		NewQuad(core.NewVec3(minCorner.X, minCorner.Y, minCorner.Z), dz, dy, mat),          // left
		NewQuad(core.NewVec3(minCorner.X, maxCorner.Y, maxCorner.Z), dx, dz.Negate(), mat), // top
		NewQuad(core.NewVec3(minCorner.X, minCorner.Y, minCorner.Z), dx, dz, mat),          // bottom
	)

	return &Box{
		Min:      minCorner,
		Max:      maxCorner,
		Material: mat,
		faces:    faces,
	}
}

// Hit tests the ray against all six faces
func (b *Box) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	return b.faces.Hit(ray, rayT)
}

// BoundingBox returns the box's own extent
func (b *Box) BoundingBox() core.AABB {
	return b.faces.BoundingBox()
}

// Faces returns the six quads making up the box
func (b *Box) Faces() []Hittable {
	return b.faces.Objects
}
