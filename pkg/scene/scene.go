package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

// Scene collects the objects and light shapes of a world together with the camera that views it.
// Objects are owned by the scene until Build turns them into a BVH.
type Scene struct {
	Name         string
	Objects      []geometry.Hittable        // Everything rays can hit
	Lights       []geometry.SampleableShape // Shapes sampled directly at diffuse bounces
	CameraConfig renderer.CameraConfig
}

// New creates an empty scene viewed through cameraConfig
func New(name string, cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		Objects:      make([]geometry.Hittable, 0),
		Lights:       make([]geometry.SampleableShape, 0),
		CameraConfig: cameraConfig,
	}
}

// Add appends an already constructed object, such as a transformed instance or a medium
func (s *Scene) Add(object geometry.Hittable) {
	s.Objects = append(s.Objects, object)
}

// AddSphere adds a static sphere
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.Add(sphere)
	return sphere
}

// AddMovingSphere adds a sphere moving linearly from center0 at time 0 to center1 at time 1
func (s *Scene) AddMovingSphere(center0, center1 core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	sphere := geometry.NewMovingSphere(center0, center1, radius, mat)
	s.Add(sphere)
	return sphere
}

// AddTriangle adds a single triangle; its front face follows the v0, v1, v2 winding
func (s *Scene) AddTriangle(v0, v1, v2 core.Vec3, mat material.Material) *geometry.Triangle {
	triangle := geometry.NewTriangle(v0, v1, v2, mat)
	s.Add(triangle)
	return triangle
}

// AddCylinder adds a cylinder between the base and top cap centers
func (s *Scene) AddCylinder(baseCenter, topCenter core.Vec3, radius float64, capped bool, mat material.Material) *geometry.Cylinder {
	cylinder := geometry.NewCylinder(baseCenter, topCenter, radius, capped, mat)
	s.Add(cylinder)
	return cylinder
}

// AddQuad adds a parallelogram spanned by u and v from corner
func (s *Scene) AddQuad(corner, u, v core.Vec3, mat material.Material) *geometry.Quad {
	quad := geometry.NewQuad(corner, u, v, mat)
	s.Add(quad)
	return quad
}

// AddSphereLight adds an emissive sphere that is also sampled as a light
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) *geometry.Sphere {
	sphere := s.AddSphere(center, radius, material.NewDiffuseLight(emission))
	s.AddLight(sphere)
	return sphere
}

// AddQuadLight adds an emissive quad that is also sampled as a light
func (s *Scene) AddQuadLight(corner, u, v, emission core.Vec3) *geometry.Quad {
	quad := s.AddQuad(corner, u, v, material.NewDiffuseLight(emission))
	s.AddLight(quad)
	return quad
}

// AddLight registers a shape for direct light sampling without adding it to the objects
func (s *Scene) AddLight(light geometry.SampleableShape) {
	s.Lights = append(s.Lights, light)
}

// LightShape returns the lights as one sampleable shape, or nil when the scene has none
func (s *Scene) LightShape() geometry.SampleableShape {
	switch len(s.Lights) {
	case 0:
		return nil
	case 1:
		return s.Lights[0]
	}

	list := geometry.NewHittableList()
	for _, light := range s.Lights {
		list.Add(light)
	}
	return list
}

// Build wraps the objects in a BVH. The scene's object list is left untouched.
func (s *Scene) Build() *geometry.BVH {
	bvh := geometry.NewBVH(s.Objects)

	stats := bvh.Stats()
	logger.Debugf("scene %s: %d objects (%d primitives), BVH with %d nodes, %d leaves, depth %d",
		s.Name, len(s.Objects), s.PrimitiveCount(), stats.Nodes, stats.Leaves, stats.MaxDepth)

	return bvh
}

// Camera creates a camera for the scene with its lights attached
func (s *Scene) Camera() *renderer.Camera {
	camera := renderer.NewCamera(s.CameraConfig)
	camera.Lights = s.LightShape()
	return camera
}

// PrimitiveCount returns the number of primitives in the scene, counting each mesh triangle
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, object := range s.Objects {
		count += countPrimitives(object)
	}
	return count
}

// countPrimitives counts primitives in a single object, handling composite objects
func countPrimitives(object geometry.Hittable) int {
	switch obj := object.(type) {
	case *geometry.TriangleMesh:
		return obj.TriangleCount()
	case *geometry.Box:
		return len(obj.Faces())
	case *geometry.HittableList:
		count := 0
		for _, child := range obj.Objects {
			count += countPrimitives(child)
		}
		return count
	default:
		return 1
	}
}

// NewGroundQuad creates a large horizontal quad centered at center with its normal pointing up
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v points along +Y
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}
