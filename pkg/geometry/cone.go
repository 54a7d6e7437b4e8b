package geometry

import (
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Cone represents a finite cone or frustum shape
type Cone struct {
	BaseCenter core.Vec3
	BaseRadius float64
	TopCenter  core.Vec3
	TopRadius  float64 // 0 for pointed cone, >0 for frustum
	Capped     bool    // Whether to include circular end cap(s)
	Material   material.Material

	// Cached derived values
	axis     core.Vec3 // Unit vector from base to top
	height   float64   // Distance between base and top
	tanAngle float64   // tan(cone angle) = (BaseRadius - TopRadius) / height
	apex     core.Vec3 // Apex of the infinite cone extended from frustum
	frame    core.ONB
	bbox     core.AABB
}

// NewCone creates a new cone or frustum
func NewCone(baseCenter core.Vec3, baseRadius float64, topCenter core.Vec3, topRadius float64, capped bool, mat material.Material) (*Cone, error) {
	if baseRadius <= 0 {
		return nil, errors.Errorf("base radius must be positive, got %f", baseRadius)
	}
	if topRadius < 0 {
		return nil, errors.Errorf("top radius must be non-negative, got %f", topRadius)
	}
	if baseRadius <= topRadius {
		return nil, errors.Errorf("base radius must be greater than top radius (got base=%f, top=%f), use a cylinder for equal radii", baseRadius, topRadius)
	}

	axisVector := topCenter.Subtract(baseCenter)
	height := axisVector.Length()
	if height <= 0 {
		return nil, errors.New("height must be positive, base and top centers cannot be the same")
	}

	axis := axisVector.Normalize()

	// The apex sits beyond the top, where the radius would reach 0
	apex := topCenter.Add(axis.Multiply(topRadius * height / (baseRadius - topRadius)))

	return &Cone{
		BaseCenter: baseCenter,
		BaseRadius: baseRadius,
		TopCenter:  topCenter,
		TopRadius:  topRadius,
		Capped:     capped,
		Material:   mat,
		axis:       axis,
		height:     height,
		tanAngle:   (baseRadius - topRadius) / height,
		apex:       apex,
		frame:      core.NewONB(axis),
		bbox:       core.MergeAABB(discBounds(baseCenter, axis, baseRadius), discBounds(topCenter, axis, topRadius)),
	}, nil
}

// BoundingBox returns the axis-aligned bounding box for this cone
func (c *Cone) BoundingBox() core.AABB {
	return c.bbox
}

// Hit tests if a ray intersects with the cone (body and optionally caps)
func (c *Cone) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closest := rayT

	if bodyHit := c.hitBody(ray, closest); bodyHit != nil {
		closestHit = bodyHit
		closest.Max = bodyHit.T
	}

	if c.Capped {
		if baseHit := hitDisc(ray, closest, c.BaseCenter, c.axis.Negate(), c.BaseRadius, c.frame, c.Material); baseHit != nil {
			closestHit = baseHit
			closest.Max = baseHit.T
		}

		// Only frustums have a top cap
		if c.TopRadius > 0 {
			if topHit := hitDisc(ray, closest, c.TopCenter, c.axis, c.TopRadius, c.frame, c.Material); topHit != nil {
				closestHit = topHit
				closest.Max = topHit.T
			}
		}
	}

	return closestHit, closestHit != nil
}

// hitBody checks for intersection with the cone body (curved surface)
func (c *Cone) hitBody(ray core.Ray, rayT core.Interval) *material.HitRecord {
	CO := ray.Origin.Subtract(c.apex)

	DdotV := ray.Direction.Dot(c.axis)
	COdotV := CO.Dot(c.axis)

	// k = tan²(α)
	k := c.tanAngle * c.tanAngle

	// a = D·D - (1+k)(D·V)², b = 2[D·CO - (1+k)(D·V)(CO·V)], cc = CO·CO - (1+k)(CO·V)²
	a := ray.Direction.LengthSquared() - (1+k)*DdotV*DdotV
	b := 2.0 * (ray.Direction.Dot(CO) - (1+k)*DdotV*COdotV)
	cc := CO.LengthSquared() - (1+k)*COdotV*COdotV

	// Ray parallel to the cone's slant
	const epsilon = 1e-8
	if math.Abs(a) < epsilon {
		return nil
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return nil
	}
	sqrtD := math.Sqrt(discriminant)

	// a < 0 flips the root order, so sort before trying the nearer one
	t0, t1 := (-b-sqrtD)/(2*a), (-b+sqrtD)/(2*a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	t := t0
	if !c.validateIntersection(ray, t, rayT) {
		t = t1
		if !c.validateIntersection(ray, t, rayT) {
			return nil
		}
	}

	point := ray.At(t)
	h := point.Subtract(c.BaseCenter).Dot(c.axis)
	radial := point.Subtract(c.BaseCenter.Add(c.axis.Multiply(h))).Normalize()

	// The slant normal leans toward the axis by the cone angle
	outwardNormal := radial.Add(c.axis.Multiply(c.tanAngle)).Normalize()

	hitRecord := &material.HitRecord{
		T:     t,
		Point: point,
		UV:    core.NewVec2(aroundAxisU(radial, c.frame), h/c.height),
	}
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.SetMaterial(c.Material)

	return hitRecord
}

// validateIntersection checks that t is in range, between base and top, and on the lower nappe
func (c *Cone) validateIntersection(ray core.Ray, t float64, rayT core.Interval) bool {
	const epsilon = 1e-8

	if !rayT.Surrounds(t) {
		return false
	}

	point := ray.At(t)

	h := point.Subtract(c.BaseCenter).Dot(c.axis)
	if h < -epsilon || h > c.height+epsilon {
		return false
	}

	// Points of the mirrored nappe lie beyond the apex
	return point.Subtract(c.apex).Dot(c.axis) <= epsilon
}
