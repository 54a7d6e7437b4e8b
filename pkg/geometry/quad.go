package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Quad represents a planar parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3         // One corner of the quad
	U        core.Vec3         // First edge vector
	V        core.Vec3         // Second edge vector
	Normal   core.Vec3         // Unit normal (U × V normalized)
	D        float64           // Plane equation constant: normal · p = D
	W        core.Vec3         // Cached n / (n · n) for planar coordinates
	Material material.Material // Material of the quad
	area     float64
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()

	var w core.Vec3
	if nn := n.Dot(n); nn > 0 {
		w = n.Multiply(1.0 / nn)
	}

	// Box both diagonals so the bounds hold for any parallelogram
	bboxDiagonal1 := core.NewAABBFromPoints(corner, corner.Add(u).Add(v))
	bboxDiagonal2 := core.NewAABBFromPoints(corner.Add(u), corner.Add(v))

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		D:        normal.Dot(corner),
		W:        w,
		Material: mat,
		area:     n.Length(),
		bbox:     core.MergeAABB(bboxDiagonal1, bboxDiagonal2),
	}
}

// Hit intersects the quad's plane and accepts points whose planar coordinates lie in [0,1]²
func (q *Quad) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	denominator := q.Normal.Dot(ray.Direction)

	// No hit if the ray is parallel to the plane (or the quad is degenerate)
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := (q.D - q.Normal.Dot(ray.Origin)) / denominator
	if !rayT.Contains(t) {
		return nil, false
	}

	hitPoint := ray.At(t)
	planarHitVector := hitPoint.Subtract(q.Corner)

	alpha := q.W.Dot(planarHitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planarHitVector))

	unit := core.NewInterval(0, 1)
	if !unit.Contains(alpha) || !unit.Contains(beta) {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:     t,
		Point: hitPoint,
		UV:    core.NewVec2(alpha, beta),
	}
	hitRecord.SetFaceNormal(ray, q.Normal)
	hitRecord.SetMaterial(q.Material)

	return hitRecord, true
}

// BoundingBox returns the (padded) box enclosing the quad
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}

// Area returns the surface area of the quad
func (q *Quad) Area() float64 {
	return q.area
}

// PDFValue converts the uniform area density of the quad into a solid-angle density seen from origin
func (q *Quad) PDFValue(origin, direction core.Vec3) float64 {
	hit, isHit := q.Hit(core.NewRay(origin, direction), core.NewInterval(0.001, math.Inf(1)))
	if !isHit || q.area == 0 {
		return 0
	}

	distanceSquared := hit.T * hit.T * direction.LengthSquared()
	cosine := math.Abs(direction.Dot(hit.Normal) / direction.Length())
	if cosine == 0 {
		return 0
	}

	return distanceSquared / (cosine * q.area)
}

// RandomDirection returns the direction from origin to a uniformly chosen point on the quad
func (q *Quad) RandomDirection(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	p := q.Corner.Add(q.U.Multiply(sample.X)).Add(q.V.Multiply(sample.Y))
	return p.Subtract(origin)
}
