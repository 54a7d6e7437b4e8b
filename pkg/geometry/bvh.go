package geometry

import (
	"sort"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Children are either primitives, nested nodes or wrappers; Right is nil for single-object spans.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	bbox  core.AABB
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of objects. The caller's slice is never reordered.
func NewBVH(objects []Hittable) *BVH {
	if len(objects) == 0 {
		return &BVH{}
	}

	// Work on a private copy so sorting never touches the caller's scene list
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return &BVH{Root: buildBVH(objectsCopy)}
}

// buildBVH splits the span at its midpoint after sorting along the longest axis of its bounds
func buildBVH(objects []Hittable) *BVHNode {
	if len(objects) == 0 {
		return nil
	}

	bbox := core.EmptyAABB
	for _, object := range objects {
		bbox = core.MergeAABB(bbox, object.BoundingBox())
	}
	axis := bbox.LongestAxis()

	switch len(objects) {
	case 1:
		return &BVHNode{Left: objects[0], bbox: bbox}
	case 2:
		left, right := objects[0], objects[1]
		if boxMin(right, axis) < boxMin(left, axis) {
			left, right = right, left
		}
		return &BVHNode{Left: left, Right: right, bbox: bbox}
	}

	sort.SliceStable(objects, func(i, j int) bool {
		return boxMin(objects[i], axis) < boxMin(objects[j], axis)
	})

	mid := len(objects) / 2
	left := buildBVH(objects[:mid])
	right := buildBVH(objects[mid:])

	return &BVHNode{
		Left:  left,
		Right: right,
		bbox:  core.MergeAABB(left.bbox, right.bbox),
	}
}

// boxMin returns the lower bound of an object's box along axis
func boxMin(object Hittable, axis int) float64 {
	return object.BoundingBox().Axis(axis).Min
}

// Hit tests the left child first and narrows the range before testing the right child
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if !n.bbox.Hit(ray, rayT) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, rayT)
	if hitLeft {
		rayT.Max = leftHit.T
	}

	if n.Right != nil {
		if rightHit, hitRight := n.Right.Hit(ray, rayT); hitRight {
			return rightHit, true
		}
	}

	return leftHit, hitLeft
}

// BoundingBox returns the merged box of both children
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// Hit tests if a ray intersects any object in the BVH
func (bvh *BVH) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.Root.Hit(ray, rayT)
}

// BoundingBox returns the overall bounding box of the BVH (empty when it holds nothing)
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.EmptyAABB
	}
	return bvh.Root.bbox
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Nodes    int // interior nodes
	Leaves   int // objects reachable from the root
	MaxDepth int // deepest node, root at depth 1
}

// Stats walks the hierarchy and counts its nodes and leaves
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if bvh.Root != nil {
		collectStats(bvh.Root, 1, &stats)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	for _, child := range [2]Hittable{node.Left, node.Right} {
		switch c := child.(type) {
		case nil:
		case *BVHNode:
			collectStats(c, depth+1, stats)
		default:
			stats.Leaves++
		}
	}
}
