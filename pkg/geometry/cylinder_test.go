package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

func TestCylinder_Hit(t *testing.T) {
	base, top := core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0)
	open := NewCylinder(base, top, 1, false, nil)
	capped := NewCylinder(base, top, 1, true, nil)

	tests := []struct {
		name           string
		cylinder       *Cylinder
		ray            core.Ray
		expectHit      bool
		expectedT      float64
		expectedNormal core.Vec3
		expectedFront  bool
	}{
		{
			name:           "side from outside",
			cylinder:       open,
			ray:            core.NewRay(core.NewVec3(0, 1, 5), core.NewVec3(0, 0, -1)),
			expectHit:      true,
			expectedT:      4,
			expectedNormal: core.NewVec3(0, 0, 1),
			expectedFront:  true,
		},
		{
			name:           "side from inside",
			cylinder:       open,
			ray:            core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)),
			expectHit:      true,
			expectedT:      1,
			expectedNormal: core.NewVec3(-1, 0, 0),
			expectedFront:  false,
		},
		{
			name:      "above the top",
			cylinder:  open,
			ray:       core.NewRay(core.NewVec3(0, 3, 5), core.NewVec3(0, 0, -1)),
			expectHit: false,
		},
		{
			name:      "down the axis without caps",
			cylinder:  open,
			ray:       core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)),
			expectHit: false,
		},
		{
			name:           "down the axis onto the top cap",
			cylinder:       capped,
			ray:            core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)),
			expectHit:      true,
			expectedT:      3,
			expectedNormal: core.NewVec3(0, 1, 0),
			expectedFront:  true,
		},
		{
			name:           "up onto the base cap",
			cylinder:       capped,
			ray:            core.NewRay(core.NewVec3(0.5, -1, 0), core.NewVec3(0, 1, 0)),
			expectHit:      true,
			expectedT:      1,
			expectedNormal: core.NewVec3(0, -1, 0),
			expectedFront:  true,
		},
		{
			name:           "side wins over the farther cap",
			cylinder:       capped,
			ray:            core.NewRay(core.NewVec3(0, 1.5, 5), core.NewVec3(0, 0.1, -1)),
			expectHit:      true,
			expectedT:      4,
			expectedNormal: core.NewVec3(0, 0, 1),
			expectedFront:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := tt.cylinder.Hit(tt.ray, forward)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if !vecNear(hit.Normal, tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %v, got %v", tt.expectedFront, hit.FrontFace)
			}
		})
	}
}

func TestCylinder_BoundingBox(t *testing.T) {
	cylinder := NewCylinder(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 1, false, nil)
	box := cylinder.BoundingBox()

	const tolerance = 1e-3
	if math.Abs(box.X.Min+1) > tolerance || math.Abs(box.X.Max-1) > tolerance {
		t.Errorf("Expected x extent [-1,1], got %v", box.X)
	}
	if math.Abs(box.Y.Min) > tolerance || math.Abs(box.Y.Max-2) > tolerance {
		t.Errorf("Expected y extent [0,2], got %v", box.Y)
	}

	tilted := NewCylinder(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 0), 0.5, true, nil)
	sampler := core.NewSeededSampler(9)
	for i := 0; i < 200; i++ {
		direction := core.SampleOnUnitSphere(sampler.Get2D())
		origin := core.NewVec3(0.5, 0.5, 0)
		hit, isHit := tilted.Hit(core.NewRay(origin, direction), forward)
		if !isHit {
			t.Fatalf("Expected ray from inside the closed cylinder to hit, direction %v", direction)
		}
		b := tilted.BoundingBox()
		if !b.X.Expand(1e-9).Contains(hit.Point.X) || !b.Y.Expand(1e-9).Contains(hit.Point.Y) || !b.Z.Expand(1e-9).Contains(hit.Point.Z) {
			t.Fatalf("Hit point %v outside bounding box %v", hit.Point, b)
		}
	}
}

func TestCone_Validation(t *testing.T) {
	base, top := core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)

	tests := []struct {
		name       string
		baseRadius float64
		top        core.Vec3
		topRadius  float64
	}{
		{"zero base radius", 0, top, 0},
		{"negative top radius", 1, top, -0.1},
		{"top not smaller than base", 1, top, 1},
		{"zero height", 1, base, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCone(base, tt.baseRadius, tt.top, tt.topRadius, false, nil); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestCone_Hit(t *testing.T) {
	cone, err := NewCone(core.NewVec3(0, 0, 0), 1, core.NewVec3(0, 1, 0), 0, true, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Halfway up the radius is 0.5; the slant normal leans 45° upward
	hit, isHit := cone.Hit(core.NewRay(core.NewVec3(0, 0.5, 5), core.NewVec3(0, 0, -1)), forward)
	if !isHit {
		t.Fatal("Expected side hit")
	}
	if math.Abs(hit.T-4.5) > 1e-9 {
		t.Errorf("Expected t=4.5, got %f", hit.T)
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 1, 1).Normalize(), 1e-9) {
		t.Errorf("Expected slant normal, got %v", hit.Normal)
	}

	// Base cap is the first surface met from below
	hit, isHit = cone.Hit(core.NewRay(core.NewVec3(0.2, -5, 0), core.NewVec3(0, 1, 0)), forward)
	if !isHit || math.Abs(hit.T-5) > 1e-9 {
		t.Fatalf("Expected base cap hit at t=5, got %v %v", hit, isHit)
	}
	if !vecNear(hit.Normal, core.NewVec3(0, -1, 0), 1e-12) {
		t.Errorf("Expected -Y normal, got %v", hit.Normal)
	}

	// Passing above the apex misses
	if _, isHit := cone.Hit(core.NewRay(core.NewVec3(0, 1.5, 5), core.NewVec3(0, 0, -1)), forward); isHit {
		t.Error("Expected miss above the apex")
	}
}

func TestCone_FrustumTopCap(t *testing.T) {
	frustum, err := NewCone(core.NewVec3(0, 0, 0), 1, core.NewVec3(0, 1, 0), 0.5, true, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	hit, isHit := frustum.Hit(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)), forward)
	if !isHit || math.Abs(hit.T-4) > 1e-9 {
		t.Fatalf("Expected top cap hit at t=4, got %v %v", hit, isHit)
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 1, 0), 1e-12) {
		t.Errorf("Expected +Y normal, got %v", hit.Normal)
	}

	open, _ := NewCone(core.NewVec3(0, 0, 0), 1, core.NewVec3(0, 1, 0), 0.5, false, nil)
	hit, isHit = open.Hit(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)), forward)
	if isHit {
		t.Errorf("Expected open frustum to let the axis ray through, got hit at %v", hit.Point)
	}
}
