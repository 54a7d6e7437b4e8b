package geometry

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// ConstantMedium is a homogeneous scattering volume filling a boundary hittable
type ConstantMedium struct {
	Boundary      Hittable
	PhaseFunction material.Material
	negInvDensity float64

	// random draws from [0,1); the default is goroutine-safe
	random func() float64
}

// NewConstantMedium creates a medium with an isotropic phase function of the given albedo
func NewConstantMedium(boundary Hittable, density float64, albedo core.Vec3) (*ConstantMedium, error) {
	return NewTexturedConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// NewTexturedConstantMedium creates a medium whose phase-function albedo comes from a color source
func NewTexturedConstantMedium(boundary Hittable, density float64, albedo material.ColorSource) (*ConstantMedium, error) {
	if boundary == nil {
		return nil, errors.New("medium boundary is required")
	}
	if density <= 0 || math.IsNaN(density) {
		return nil, errors.Errorf("medium density must be positive, got %f", density)
	}

	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
		negInvDensity: -1 / density,
		random:        rand.Float64,
	}, nil
}

// Hit samples an exponential free path along the segment of the ray inside the boundary
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	const epsilon = 0.0001

	entry, isHit := m.Boundary.Hit(ray, core.UniverseInterval)
	if !isHit {
		return nil, false
	}

	exit, isHit := m.Boundary.Hit(ray, core.NewInterval(entry.T+epsilon, math.Inf(1)))
	if !isHit {
		return nil, false
	}

	t1 := math.Max(entry.T, rayT.Min)
	t2 := math.Min(exit.T, rayT.Max)
	if t1 >= t2 {
		return nil, false
	}
	if t1 < 0 {
		t1 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t2 - t1) * rayLength

	// 1-U lies in (0,1], keeping the logarithm finite
	hitDistance := m.negInvDensity * math.Log(1-m.random())
	if hitDistance > distanceInsideBoundary {
		return nil, false
	}

	t := t1 + hitDistance/rayLength
	hitRecord := &material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,                  // arbitrary
	}
	hitRecord.SetMaterial(m.PhaseFunction)

	return hitRecord, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
