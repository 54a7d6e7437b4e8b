package scene

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-smoke", "Cornell Smoke"},
		{"dragon_gold", "Dragon Gold"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if result := titleCase(tc.input); result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestList_SortedAndComplete(t *testing.T) {
	expected := []string{"cornell", "cornell-smoke", "empty", "shapes", "spheres"}
	infos := List()

	if len(infos) != len(expected) {
		t.Fatalf("Expected %d scenes, got %d", len(expected), len(infos))
	}
	for i, info := range infos {
		if info.ID != expected[i] {
			t.Errorf("Scene %d: expected %q, got %q", i, expected[i], info.ID)
		}
		if info.DisplayName == "" || info.Description == "" {
			t.Errorf("Scene %q is missing display metadata", info.ID)
		}
	}
}

func TestCreate_UnknownScene(t *testing.T) {
	if _, err := Create("teapot"); err == nil {
		t.Error("Expected an error for an unknown scene")
	}
}

func TestCreate_Presets(t *testing.T) {
	tests := []struct {
		id         string
		hasObjects bool
		lights     int
	}{
		{"spheres", true, 0},
		{"cornell", true, 1},
		{"cornell-smoke", true, 1},
		{"shapes", true, 1},
		{"empty", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, err := Create(tt.id)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.Name != tt.id {
				t.Errorf("Expected scene name %q, got %q", tt.id, s.Name)
			}
			if (len(s.Objects) > 0) != tt.hasObjects {
				t.Errorf("Expected objects=%v, got %d objects", tt.hasObjects, len(s.Objects))
			}
			if len(s.Lights) != tt.lights {
				t.Errorf("Expected %d lights, got %d", tt.lights, len(s.Lights))
			}

			world := s.Build()
			if tt.hasObjects && world.BoundingBox().IsEmpty() {
				t.Error("Expected a non-empty world bounding box")
			}
			if err := s.Camera().Initialize(); err != nil {
				t.Errorf("Expected a valid camera, got %v", err)
			}
		})
	}
}

func TestCreate_PresetsRenderFinite(t *testing.T) {
	for _, info := range List() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Create(info.ID)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			s.CameraConfig.Width = 8
			s.CameraConfig.AspectRatio = 2
			s.CameraConfig.SamplesPerPixel = 1
			s.CameraConfig.MaxDepth = 3
			s.CameraConfig.Workers = 2
			s.CameraConfig.Seed = 5

			buffer, _, err := s.Camera().RenderBuffer(s.Build())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			for i, pixel := range buffer.Pixels {
				for _, c := range []float64{pixel.X, pixel.Y, pixel.Z} {
					if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
						t.Fatalf("Pixel %d has invalid radiance %v", i, pixel)
					}
				}
			}
		})
	}
}

func TestScene_Builder(t *testing.T) {
	s := New("builder", renderer.DefaultCameraConfig())
	white := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.8))

	sphere := s.AddSphere(core.NewVec3(0, 0, -3), 1, white)
	s.AddMovingSphere(core.NewVec3(2, 0, -3), core.NewVec3(2, 1, -3), 0.5, white)
	s.AddTriangle(core.NewVec3(-1, 0, -5), core.NewVec3(1, 0, -5), core.NewVec3(0, 1, -5), white)
	s.AddCylinder(core.NewVec3(-3, 0, -3), core.NewVec3(-3, 1, -3), 0.5, true, white)
	s.AddQuad(core.NewVec3(-5, -1, -6), core.NewVec3(10, 0, 0), core.NewVec3(0, 5, 0), white)
	s.Add(geometry.NewBox(core.NewVec3(3, -1, -8), core.NewVec3(4, 0, -7), white))

	if s.LightShape() != nil {
		t.Error("Expected no light shape before lights are added")
	}

	light := s.AddSphereLight(core.NewVec3(0, 5, -3), 0.5, core.NewVec3(4, 4, 4))
	if len(s.Objects) != 7 || len(s.Lights) != 1 {
		t.Fatalf("Expected 7 objects and 1 light, got %d and %d", len(s.Objects), len(s.Lights))
	}
	if s.LightShape() != geometry.SampleableShape(light) {
		t.Error("Expected a single light to be sampled directly")
	}

	s.AddQuadLight(core.NewVec3(-1, 6, -4), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), core.NewVec3(4, 4, 4))
	list, ok := s.LightShape().(*geometry.HittableList)
	if !ok || list.Len() != 2 {
		t.Errorf("Expected a list of 2 lights, got %T", s.LightShape())
	}

	// 5 single primitives, 6 box faces and 2 lights
	if got := s.PrimitiveCount(); got != 13 {
		t.Errorf("Expected 13 primitives, got %d", got)
	}

	world := s.Build()
	if s.Objects[0] != geometry.Hittable(sphere) {
		t.Error("Build must not reorder the scene's objects")
	}

	hit, ok := world.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), core.NewInterval(0.001, math.Inf(1)))
	if !ok || math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected to hit the sphere at t=2, got %v %v", ok, hit)
	}
}

func TestShapes_MeshPrimitives(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	pyramid, err := pyramidMesh(core.NewVec3(0, 0, 0), 1, 1, mat)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pyramid.TriangleCount() != 6 {
		t.Errorf("Expected 6 pyramid triangles, got %d", pyramid.TriangleCount())
	}

	icosahedron, err := icosahedronMesh(core.NewVec3(0, 0, 0), 2, mat)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if icosahedron.TriangleCount() != 20 {
		t.Errorf("Expected 20 icosahedron triangles, got %d", icosahedron.TriangleCount())
	}

	// Faces lie between the inscribed sphere (radius ~1.51) and the circumsphere
	hit, ok := icosahedron.Hit(core.NewRay(core.NewVec3(0.1, 0.05, 10), core.NewVec3(0, 0, -1)), core.NewInterval(0.001, math.Inf(1)))
	if !ok || hit.T < 8 || hit.T > 10-1.5 {
		t.Errorf("Expected a hit between the in- and circumsphere, got %v %v", ok, hit)
	}
}

func TestNewGroundQuad_FacesUp(t *testing.T) {
	ground := NewGroundQuad(core.NewVec3(1, 2, 3), 10, nil)
	if ground.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected +Y normal, got %v", ground.Normal)
	}
	if ground.Corner != core.NewVec3(-4, 2, -2) {
		t.Errorf("Expected corner (-4,2,-2), got %v", ground.Corner)
	}
}
