package geometry

import (
	"github.com/pkg/errors"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// TriangleMesh is an indexed triangle set traversed through its own BVH
type TriangleMesh struct {
	triangles []Hittable
	bvh       *BVH
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Materials []material.Material // Optional per-triangle materials
}

// NewTriangleMesh creates a mesh from vertices and face indices, three per triangle.
// options may be nil.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, errors.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	numTriangles := len(faces) / 3
	if options != nil && options.Materials != nil && len(options.Materials) != numTriangles {
		return nil, errors.Errorf("got %d materials for %d triangles", len(options.Materials), numTriangles)
	}

	triangles := make([]Hittable, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, index := range [3]int{i0, i1, i2} {
			if index < 0 || index >= len(vertices) {
				return nil, errors.Errorf("face %d references vertex %d of %d", i, index, len(vertices))
			}
		}

		triangleMaterial := mat
		if options != nil && options.Materials != nil {
			triangleMaterial = options.Materials[i]
		}
		triangles[i] = NewTriangle(vertices[i0], vertices[i1], vertices[i2], triangleMaterial)
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
	}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	return tm.bvh.Hit(ray, rayT)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}
