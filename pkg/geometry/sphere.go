package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// minSphereRadius is the radius below which a sphere is treated as degenerate and never hit
const minSphereRadius = 1e-12

// Sphere represents a sphere shape, optionally moving linearly over the shutter interval
type Sphere struct {
	Center   core.Ray // Center at time 0, displaced by Center.Direction at time 1
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)

	return &Sphere{
		Center:   core.NewRay(center, core.Vec3{}),
		Radius:   radius,
		Material: mat,
		bbox:     core.NewAABBFromPoints(center.Subtract(rvec), center.Add(rvec)),
	}
}

// NewMovingSphere creates a sphere whose center moves from center0 at time 0 to center1 at time 1
func NewMovingSphere(center0, center1 core.Vec3, radius float64, mat material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)

	box0 := core.NewAABBFromPoints(center0.Subtract(rvec), center0.Add(rvec))
	box1 := core.NewAABBFromPoints(center1.Subtract(rvec), center1.Add(rvec))

	return &Sphere{
		Center:   core.NewRay(center0, center1.Subtract(center0)),
		Radius:   radius,
		Material: mat,
		bbox:     core.MergeAABB(box0, box1),
	}
}

// CenterAt returns the sphere center at the given time
func (s *Sphere) CenterAt(time float64) core.Vec3 {
	return s.Center.At(time)
}

// Hit solves |O + tD - C(time)|² = r² and returns the nearest root inside rayT
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if s.Radius < minSphereRadius {
		return nil, false
	}

	center := s.CenterAt(ray.Time)
	oc := center.Subtract(ray.Origin)

	// Quadratic equation coefficients with b = -2h
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:     root,
		Point: ray.At(root),
	}
	outwardNormal := hitRecord.Point.Subtract(center).Multiply(1.0 / s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.UV = sphereUV(outwardNormal)
	hitRecord.SetMaterial(s.Material)

	return hitRecord, true
}

// BoundingBox returns the box enclosing the sphere over the whole shutter interval
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// PDFValue returns the density of directions from origin that hit the sphere,
// uniform over the subtended cone. Motion is ignored: the center at time 0 is used.
func (s *Sphere) PDFValue(origin, direction core.Vec3) float64 {
	if _, isHit := s.Hit(core.NewRay(origin, direction), core.NewInterval(0.001, math.Inf(1))); !isHit {
		return 0
	}

	distanceSquared := s.CenterAt(0).Subtract(origin).LengthSquared()
	cosThetaMax := math.Sqrt(math.Max(0, 1-s.Radius*s.Radius/distanceSquared))
	solidAngle := 2 * math.Pi * (1 - cosThetaMax)

	return 1 / solidAngle
}

// RandomDirection samples a direction from origin inside the cone subtended by the sphere
func (s *Sphere) RandomDirection(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	direction := s.CenterAt(0).Subtract(origin)
	uvw := core.NewONB(direction)
	return uvw.Transform(core.SampleToSphere(s.Radius, direction.LengthSquared(), sampler.Get2D()))
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u: angle around the Y axis from X=-1, v: angle from Y=-1 to Y=+1
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi

	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
