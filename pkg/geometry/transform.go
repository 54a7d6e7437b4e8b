package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Translate moves a child hittable by a fixed offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so that it appears displaced by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Offset(offset),
	}
}

// Hit moves the ray into object space, intersects, and moves the hit point back
func (t *Translate) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, isHit := t.Object.Hit(offsetRay, rayT)
	if !isHit {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	hit.SetFaceNormal(ray, outwardNormal(hit))

	return hit, true
}

// BoundingBox returns the child's box shifted by the offset
func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

// RotateY rotates a child hittable about the world Y axis
type RotateY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees about the Y axis
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	// Box the eight rotated corners of the child's box
	childBox := object.BoundingBox()
	if childBox.IsEmpty() {
		r.bbox = core.EmptyAABB
		return r
	}

	lo, hi := childBox.Min(), childBox.Max()
	corners := make([]core.Vec3, 0, 8)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				corner := core.NewVec3(
					float64(i)*hi.X+float64(1-i)*lo.X,
					float64(j)*hi.Y+float64(1-j)*lo.Y,
					float64(k)*hi.Z+float64(1-k)*lo.Z,
				)
				corners = append(corners, r.toWorld(corner))
			}
		}
	}
	r.bbox = core.NewAABBFromPoints(corners...)

	return r
}

// Hit rotates the ray into object space by -θ, intersects, and rotates the result back by +θ
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	rotatedRay := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)

	hit, isHit := r.Object.Hit(rotatedRay, rayT)
	if !isHit {
		return nil, false
	}

	outward := r.toWorld(outwardNormal(hit))
	hit.Point = r.toWorld(hit.Point)
	hit.SetFaceNormal(ray, outward)

	return hit, true
}

// BoundingBox returns the box enclosing the rotated child
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}

func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// outwardNormal undoes the face flip applied by SetFaceNormal
func outwardNormal(hit *material.HitRecord) core.Vec3 {
	if hit.FrontFace {
		return hit.Normal
	}
	return hit.Normal.Negate()
}
