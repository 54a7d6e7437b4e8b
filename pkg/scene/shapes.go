package scene

import (
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

// NewShapesScene creates a showcase of the non-sphere primitives: cylinders, cones and frustums,
// loose triangles and triangle meshes on a checkered ground, lit by a sphere light
func NewShapesScene() (*Scene, error) {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.Center = core.NewVec3(0, 2.5, 7)
	cameraConfig.LookAt = core.NewVec3(0, 0.8, 0)
	cameraConfig.VFov = 45
	cameraConfig.Background = core.NewVec3(0.5, 0.7, 1.0)

	s := New("shapes", cameraConfig)

	checker := material.NewCheckerColors(0.5, core.NewVec3(0.7, 0.7, 0.7), core.NewVec3(0.3, 0.3, 0.3))
	s.Add(NewGroundQuad(core.NewVec3(0, 0, 0), 100, material.NewTexturedLambertian(checker)))

	s.AddSphereLight(core.NewVec3(3, 6, 3), 1.5, core.NewVec3(10, 10, 10))

	addShapesCylinders(s)
	if err := addShapesCones(s); err != nil {
		return nil, errors.Wrap(err, "building cones")
	}
	if err := addShapesMeshes(s); err != nil {
		return nil, errors.Wrap(err, "building meshes")
	}

	return s, nil
}

func addShapesCylinders(s *Scene) {
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.1)
	lambertianRed := material.NewLambertian(core.NewVec3(0.8, 0.2, 0.2))

	// Open tube angled toward the camera so it can be looked through
	s.AddCylinder(core.NewVec3(-3.3, 1.0, -2.5), core.NewVec3(-3, 1.2, -0.5), 0.35, false, metalGold)

	// Tall capped cylinder standing on the ground
	s.AddCylinder(core.NewVec3(3.2, 0, -1), core.NewVec3(3.2, 2, -1), 0.5, true, lambertianRed)

	// Short glass puck in front
	s.AddCylinder(core.NewVec3(1.2, 0, 1.5), core.NewVec3(1.2, 0.3, 1.5), 0.3, true, material.NewDielectric(1.5))
}

func addShapesCones(s *Scene) error {
	lambertianBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 0.8))
	lambertianGreen := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.2))

	// Wide frustum with a glass cone continuing from its top cap
	frustum, err := geometry.NewCone(core.NewVec3(0, 0, -1), 0.8, core.NewVec3(0, 0.6, -1), 0.5, true, lambertianBlue)
	if err != nil {
		return err
	}
	glassTip, err := geometry.NewCone(core.NewVec3(0, 0.6, -1), 0.5, core.NewVec3(0, 1.8, -1), 0, true, material.NewDielectric(1.5))
	if err != nil {
		return err
	}

	// Tilted open frustum
	tilted, err := geometry.NewCone(core.NewVec3(-1.5, 0, 0.5), 0.4, core.NewVec3(-1.2, 1.2, 0.7), 0.15, false, lambertianGreen)
	if err != nil {
		return err
	}

	s.Add(frustum)
	s.Add(glassTip)
	s.Add(tilted)
	return nil
}

func addShapesMeshes(s *Scene) error {
	// A standalone triangle facing the camera
	s.AddTriangle(
		core.NewVec3(-0.6, 0, 2),
		core.NewVec3(0.2, 0, 2),
		core.NewVec3(-0.2, 0.8, 2),
		material.NewTexturedLambertian(material.NewUVDebugTexture(16, 16)),
	)

	// Built around the Y axis so the rotation spins it in place
	pyramid, err := pyramidMesh(core.NewVec3(0, 0.6, 0), 1.0, 1.2, material.NewLambertian(core.NewVec3(0.8, 0.5, 0.2)))
	if err != nil {
		return err
	}
	s.Add(geometry.NewTranslate(geometry.NewRotateY(pyramid, 45), core.NewVec3(1.8, 0, 0)))

	icosahedron, err := icosahedronMesh(core.NewVec3(-1.8, 0.6, -0.5), 0.6, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.05))
	if err != nil {
		return err
	}
	s.Add(icosahedron)
	return nil
}

// pyramidMesh creates a square-based pyramid centered at center
func pyramidMesh(center core.Vec3, baseSize, height float64, mat material.Material) (*geometry.TriangleMesh, error) {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Vec3{
		center.Add(core.NewVec3(-halfBase, -halfHeight, -halfBase)), // 0: left-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, -halfBase)), // 1: right-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, +halfBase)), // 2: right-front
		center.Add(core.NewVec3(-halfBase, -halfHeight, +halfBase)), // 3: left-front
		center.Add(core.NewVec3(0, +halfHeight, 0)),                 // 4: apex
	}

	faces := []int{
		// Base
		0, 1, 2, 0, 2, 3,
		// Sides
		1, 0, 4,
		2, 1, 4,
		3, 2, 4,
		0, 3, 4,
	}

	return geometry.NewTriangleMesh(vertices, faces, mat, nil)
}

// icosahedronMesh creates a regular icosahedron with the given circumradius
func icosahedronMesh(center core.Vec3, radius float64, mat material.Material) (*geometry.TriangleMesh, error) {
	phi := (1.0 + math.Sqrt(5)) / 2.0
	scale := radius / math.Sqrt(1+phi*phi)

	corners := []core.Vec3{
		core.NewVec3(-1, phi, 0), core.NewVec3(1, phi, 0), core.NewVec3(-1, -phi, 0), core.NewVec3(1, -phi, 0),
		core.NewVec3(0, -1, phi), core.NewVec3(0, 1, phi), core.NewVec3(0, -1, -phi), core.NewVec3(0, 1, -phi),
		core.NewVec3(phi, 0, -1), core.NewVec3(phi, 0, 1), core.NewVec3(-phi, 0, -1), core.NewVec3(-phi, 0, 1),
	}
	vertices := make([]core.Vec3, len(corners))
	for i, corner := range corners {
		vertices[i] = center.Add(corner.Multiply(scale))
	}

	faces := []int{
		// 5 faces around vertex 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		// 5 adjacent faces
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// 5 faces around vertex 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		// 5 adjacent faces
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return geometry.NewTriangleMesh(vertices, faces, mat, nil)
}
