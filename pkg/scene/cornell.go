package scene

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const cornellBoxSize = 555.0

// NewCornellScene creates the classic Cornell box: colored quad walls, a ceiling area light
// and two rotated white boxes
func NewCornellScene() *Scene {
	s := newCornellRoom("cornell")
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	tallBox, shortBox := cornellBoxes(white)
	s.Add(tallBox)
	s.Add(shortBox)

	return s
}

// NewCornellSmokeScene replaces the Cornell boxes with blocks of dark and light smoke
func NewCornellSmokeScene() (*Scene, error) {
	s := newCornellRoom("cornell-smoke")
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	tallBox, shortBox := cornellBoxes(white)

	darkSmoke, err := geometry.NewConstantMedium(tallBox, 0.01, core.NewVec3(0, 0, 0))
	if err != nil {
		return nil, err
	}
	lightSmoke, err := geometry.NewConstantMedium(shortBox, 0.01, core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}

	s.Add(darkSmoke)
	s.Add(lightSmoke)
	return s, nil
}

// newCornellRoom builds the camera, walls and ceiling light shared by the Cornell presets
func newCornellRoom(name string) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.Center = core.NewVec3(278, 278, -800) // Outside the open front of the box
	cameraConfig.LookAt = core.NewVec3(278, 278, 0)
	cameraConfig.AspectRatio = 1.0
	cameraConfig.VFov = 40.0
	cameraConfig.SamplesPerPixel = 200
	cameraConfig.Background = core.Vec3{}

	s := New(name, cameraConfig)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	// Right wall (green) at x=555, left wall (red) at x=0
	s.AddQuad(core.NewVec3(cornellBoxSize, 0, 0), core.NewVec3(0, cornellBoxSize, 0), core.NewVec3(0, 0, cornellBoxSize), green)
	s.AddQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, cornellBoxSize, 0), core.NewVec3(0, 0, cornellBoxSize), red)

	// Ceiling light facing down, slightly below the ceiling
	lightSize := 130.0
	lightOffset := (cornellBoxSize - lightSize) / 2.0
	s.AddQuadLight(
		core.NewVec3(lightOffset+lightSize, cornellBoxSize-1, lightOffset+lightSize),
		core.NewVec3(-lightSize, 0, 0),
		core.NewVec3(0, 0, -lightSize),
		core.NewVec3(15, 15, 15),
	)

	// Floor, ceiling and back wall
	s.AddQuad(core.NewVec3(0, 0, 0), core.NewVec3(cornellBoxSize, 0, 0), core.NewVec3(0, 0, cornellBoxSize), white)
	s.AddQuad(core.NewVec3(cornellBoxSize, cornellBoxSize, cornellBoxSize), core.NewVec3(-cornellBoxSize, 0, 0), core.NewVec3(0, 0, -cornellBoxSize), white)
	s.AddQuad(core.NewVec3(0, 0, cornellBoxSize), core.NewVec3(cornellBoxSize, 0, 0), core.NewVec3(0, cornellBoxSize, 0), white)

	return s
}

// cornellBoxes returns the tall and short boxes, rotated and placed inside the room
func cornellBoxes(mat material.Material) (geometry.Hittable, geometry.Hittable) {
	tall := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), mat)
	tallPlaced := geometry.NewTranslate(geometry.NewRotateY(tall, 15), core.NewVec3(265, 0, 295))

	short := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), mat)
	shortPlaced := geometry.NewTranslate(geometry.NewRotateY(short, -18), core.NewVec3(130, 0, 65))

	return tallPlaced, shortPlaced
}
