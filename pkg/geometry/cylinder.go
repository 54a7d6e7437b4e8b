package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Cylinder represents a finite cylinder between two axis points, optionally closed by disc caps
type Cylinder struct {
	BaseCenter core.Vec3
	TopCenter  core.Vec3
	Radius     float64
	Capped     bool
	Material   material.Material

	// Cached derived values
	axis   core.Vec3 // Unit vector from base to top
	height float64   // Distance between base and top
	frame  core.ONB  // Basis around the axis, for UV mapping
	bbox   core.AABB
}

// NewCylinder creates a new cylinder
func NewCylinder(baseCenter, topCenter core.Vec3, radius float64, capped bool, mat material.Material) *Cylinder {
	axisVector := topCenter.Subtract(baseCenter)
	axis := axisVector.Normalize()

	return &Cylinder{
		BaseCenter: baseCenter,
		TopCenter:  topCenter,
		Radius:     radius,
		Capped:     capped,
		Material:   mat,
		axis:       axis,
		height:     axisVector.Length(),
		frame:      core.NewONB(axis),
		bbox:       core.MergeAABB(discBounds(baseCenter, axis, radius), discBounds(topCenter, axis, radius)),
	}
}

// BoundingBox returns the axis-aligned bounding box for this cylinder
func (c *Cylinder) BoundingBox() core.AABB {
	return c.bbox
}

// Hit tests the side surface and, if capped, both end caps, returning the closest
func (c *Cylinder) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if c.height == 0 || c.Radius <= 0 {
		return nil, false
	}

	var closestHit *material.HitRecord
	closest := rayT

	if hit := c.hitBody(ray, closest); hit != nil {
		closestHit = hit
		closest.Max = hit.T
	}

	if c.Capped {
		if hit := hitDisc(ray, closest, c.BaseCenter, c.axis.Negate(), c.Radius, c.frame, c.Material); hit != nil {
			closestHit = hit
			closest.Max = hit.T
		}
		if hit := hitDisc(ray, closest, c.TopCenter, c.axis, c.Radius, c.frame, c.Material); hit != nil {
			closestHit = hit
			closest.Max = hit.T
		}
	}

	return closestHit, closestHit != nil
}

// hitBody intersects the curved surface: the quadratic lives in the plane perpendicular to the axis
func (c *Cylinder) hitBody(ray core.Ray, rayT core.Interval) *material.HitRecord {
	delta := ray.Origin.Subtract(c.BaseCenter)

	DV := ray.Direction.Dot(c.axis) // D · V̂
	deltaV := delta.Dot(c.axis)     // Δ · V̂

	// a = |D|² - (D·V̂)², b = 2[Δ·D - (Δ·V̂)(D·V̂)], cc = |Δ|² - (Δ·V̂)² - r²
	a := ray.Direction.LengthSquared() - DV*DV
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*DV)
	cc := delta.LengthSquared() - deltaV*deltaV - c.Radius*c.Radius

	// Ray parallel to the axis never crosses the side
	const epsilon = 1e-8
	if math.Abs(a) < epsilon {
		return nil
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return nil
	}
	sqrtD := math.Sqrt(discriminant)

	for _, t := range [2]float64{(-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a)} {
		if !rayT.Surrounds(t) {
			continue
		}

		point := ray.At(t)
		h := point.Subtract(c.BaseCenter).Dot(c.axis)
		if h < 0 || h > c.height {
			continue
		}

		axisPoint := c.BaseCenter.Add(c.axis.Multiply(h))
		outwardNormal := point.Subtract(axisPoint).Multiply(1.0 / c.Radius)

		hitRecord := &material.HitRecord{
			T:     t,
			Point: point,
			UV:    core.NewVec2(aroundAxisU(outwardNormal, c.frame), h/c.height),
		}
		hitRecord.SetFaceNormal(ray, outwardNormal)
		hitRecord.SetMaterial(c.Material)
		return hitRecord
	}

	return nil
}

// hitDisc intersects a circular cap with the given outward normal.
// Cap UVs map the disc onto the unit square.
func hitDisc(ray core.Ray, rayT core.Interval, center, normal core.Vec3, radius float64, frame core.ONB, mat material.Material) *material.HitRecord {
	const epsilon = 1e-8

	denom := ray.Direction.Dot(normal)
	if math.Abs(denom) < epsilon {
		return nil
	}

	t := center.Subtract(ray.Origin).Dot(normal) / denom
	if !rayT.Surrounds(t) {
		return nil
	}

	point := ray.At(t)
	offset := point.Subtract(center)
	if offset.LengthSquared() > radius*radius {
		return nil
	}

	hitRecord := &material.HitRecord{
		T:     t,
		Point: point,
		UV: core.NewVec2(
			0.5+0.5*offset.Dot(frame.U)/radius,
			0.5+0.5*offset.Dot(frame.V)/radius,
		),
	}
	hitRecord.SetFaceNormal(ray, normal)
	hitRecord.SetMaterial(mat)
	return hitRecord
}

// discBounds returns the tight box of a disc: along world axis i it extends r·sqrt(1 - axis_i²)
func discBounds(center, axis core.Vec3, radius float64) core.AABB {
	extent := core.NewVec3(
		radius*math.Sqrt(math.Max(0, 1-axis.X*axis.X)),
		radius*math.Sqrt(math.Max(0, 1-axis.Y*axis.Y)),
		radius*math.Sqrt(math.Max(0, 1-axis.Z*axis.Z)),
	)
	return core.NewAABBFromPoints(center.Subtract(extent), center.Add(extent))
}

// aroundAxisU maps a radial direction to [0,1] by its angle in the frame's U/V plane
func aroundAxisU(radial core.Vec3, frame core.ONB) float64 {
	return (math.Atan2(radial.Dot(frame.V), radial.Dot(frame.U)) + math.Pi) / (2 * math.Pi)
}
