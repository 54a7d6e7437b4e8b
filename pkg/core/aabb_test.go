package core

import (
	"math"
	"math/rand"
	"testing"
)

func randomBox(random *rand.Rand) AABB {
	a := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
	b := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
	return NewAABBFromPoints(a, b)
}

func TestAABB_MergeCommutativeAndAssociative(t *testing.T) {
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		a, b, c := randomBox(random), randomBox(random), randomBox(random)

		if MergeAABB(a, b) != MergeAABB(b, a) {
			t.Fatalf("merge not commutative for %v, %v", a, b)
		}

		left := MergeAABB(MergeAABB(a, b), c)
		right := MergeAABB(a, MergeAABB(b, c))
		if left != right {
			t.Fatalf("merge not associative: %v != %v", left, right)
		}
	}
}

func TestAABB_MergeWithEmpty(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -2, -3), NewVec3(1, 2, 3))
	if got := MergeAABB(box, EmptyAABB); got != box {
		t.Errorf("Expected %v, got %v", box, got)
	}
	if !EmptyAABB.IsEmpty() {
		t.Error("Expected EmptyAABB to be empty")
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		name     string
		box      AABB
		expected int
	}{
		{"x longest", NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(3, 1, 2)), 0},
		{"y longest", NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 3, 2)), 1},
		{"z longest", NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 2, 3)), 2},
		{"x/y tie goes to x", NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(2, 2, 1)), 0},
		{"y/z tie goes to y", NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 2, 2)), 1},
		{"cube goes to x", NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 1, 1)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.LongestAxis(); got != tt.expected {
				t.Errorf("Expected axis %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		rayT     Interval
		expected bool
	}{
		{"straight on", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), NewInterval(0.001, math.Inf(1)), true},
		{"diagonal", NewRay(NewVec3(5, 5, 5), NewVec3(-1, -1, -1)), NewInterval(0.001, math.Inf(1)), true},
		{"parallel outside slab", NewRay(NewVec3(2, 0, 5), NewVec3(0, 0, -1)), NewInterval(0.001, math.Inf(1)), false},
		{"pointing away", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), NewInterval(0.001, math.Inf(1)), false},
		{"interval ends before box", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), NewInterval(0.001, 3.9), false},
		{"interval starts after box", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), NewInterval(6.1, 100), false},
		{"empty interval", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), EmptyInterval, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.rayT); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAABB_HitFromInside(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -2, -3), NewVec3(4, 5, 6))
	random := rand.New(rand.NewSource(3))

	directions := []Vec3{
		NewVec3(1, 0, 0), NewVec3(-1, 0, 0),
		NewVec3(0, 1, 0), NewVec3(0, 0, -1),
	}
	for i := 0; i < 100; i++ {
		directions = append(directions, SampleOnUnitSphere(NewVec2(random.Float64(), random.Float64())))
	}

	origin := NewVec3(0.5, 0.5, 0.5)
	for _, dir := range directions {
		ray := NewRay(origin, dir)
		if !box.Hit(ray, NewInterval(0, math.Inf(1))) {
			t.Errorf("Expected ray from inside with direction %v to hit", dir)
		}
		if !box.Hit(ray, UniverseInterval) {
			t.Errorf("Expected ray from inside with direction %v to hit over the universe interval", dir)
		}
	}
}

func TestAABB_PaddingKeepsPlanarBoxesHittable(t *testing.T) {
	// A flat box in the y=0 plane
	box := NewAABBFromPoints(NewVec3(-1, 0, -1), NewVec3(1, 0, 1))
	if box.Y.Size() < minAABBWidth {
		t.Fatalf("Expected y extent padded to at least %g, got %g", minAABBWidth, box.Y.Size())
	}

	ray := NewRay(NewVec3(0, 1, 0), NewVec3(0, -1, 0))
	if !box.Hit(ray, NewInterval(0.001, math.Inf(1))) {
		t.Error("Expected ray to hit padded planar box")
	}
}

func TestInterval(t *testing.T) {
	i := NewInterval(1, 3)

	if !i.Contains(1) || !i.Contains(3) || i.Contains(3.5) {
		t.Error("Contains should be inclusive of both bounds")
	}
	if i.Surrounds(1) || !i.Surrounds(2) {
		t.Error("Surrounds should be exclusive of both bounds")
	}
	if i.Clamp(5) != 3 || i.Clamp(-1) != 1 || i.Clamp(2) != 2 {
		t.Error("Clamp returned unexpected values")
	}
	if got := i.Expand(1); got != NewInterval(0.5, 3.5) {
		t.Errorf("Expected [0.5,3.5], got %v", got)
	}
	if EmptyInterval.Contains(0) || !EmptyInterval.IsEmpty() {
		t.Error("Empty interval must contain nothing")
	}
	if !UniverseInterval.Contains(1e300) {
		t.Error("Universe interval must contain everything")
	}
	if got := NewIntervalUnion(NewInterval(0, 1), NewInterval(2, 3)); got != NewInterval(0, 3) {
		t.Errorf("Expected [0,3], got %v", got)
	}
}
