package core

// minAABBWidth is the smallest extent an AABB axis may have; planar shapes are padded to it
// so the slab test never sees a zero-width slab.
const minAABBWidth = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// EmptyAABB bounds nothing; merging it with any box yields that box
var EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}

// NewAABB creates an AABB from three per-axis intervals
func NewAABB(x, y, z Interval) AABB {
	aabb := AABB{X: x, Y: y, Z: z}
	aabb.padToMinimums()
	return aabb
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return EmptyAABB
	}

	x := NewInterval(points[0].X, points[0].X)
	y := NewInterval(points[0].Y, points[0].Y)
	z := NewInterval(points[0].Z, points[0].Z)

	for _, point := range points[1:] {
		x = NewIntervalUnion(x, NewInterval(point.X, point.X))
		y = NewIntervalUnion(y, NewInterval(point.Y, point.Y))
		z = NewIntervalUnion(z, NewInterval(point.Z, point.Z))
	}

	return NewAABB(x, y, z)
}

// MergeAABB returns the union box of a and b
func MergeAABB(a, b AABB) AABB {
	return AABB{
		X: NewIntervalUnion(a.X, b.X),
		Y: NewIntervalUnion(a.Y, b.Y),
		Z: NewIntervalUnion(a.Z, b.Z),
	}
}

// Axis returns the interval for the given axis (0=X, 1=Y, 2=Z)
func (aabb AABB) Axis(n int) Interval {
	switch n {
	case 0:
		return aabb.X
	case 1:
		return aabb.Y
	default:
		return aabb.Z
	}
}

// LongestAxis returns the axis with the greatest extent; ties go to the lower index
func (aabb AABB) LongestAxis() int {
	sx, sy, sz := aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()
	if sx >= sy && sx >= sz {
		return 0
	}
	if sy >= sz {
		return 1
	}
	return 2
}

// Hit reports whether the ray passes through all three slabs inside rayT.
// Zero direction components are not special-cased: the IEEE infinities from the
// division still narrow the interval correctly.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		slab := aabb.Axis(axis)
		origin := ray.Origin.Axis(axis)
		invDirection := 1.0 / ray.Direction.Axis(axis)

		t0 := (slab.Min - origin) * invDirection
		t1 := (slab.Max - origin) * invDirection

		if t0 < t1 {
			if t0 > rayT.Min {
				rayT.Min = t0
			}
			if t1 < rayT.Max {
				rayT.Max = t1
			}
		} else {
			if t1 > rayT.Min {
				rayT.Min = t1
			}
			if t0 < rayT.Max {
				rayT.Max = t0
			}
		}

		if rayT.Max <= rayT.Min {
			return false
		}
	}
	return true
}

// Min returns the minimum corner
func (aabb AABB) Min() Vec3 {
	return NewVec3(aabb.X.Min, aabb.Y.Min, aabb.Z.Min)
}

// Max returns the maximum corner
func (aabb AABB) Max() Vec3 {
	return NewVec3(aabb.X.Max, aabb.Y.Max, aabb.Z.Max)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min().Add(aabb.Max()).Multiply(0.5)
}

// Offset translates the box by a displacement vector
func (aabb AABB) Offset(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Shift(offset.X),
		Y: aabb.Y.Shift(offset.Y),
		Z: aabb.Z.Shift(offset.Z),
	}
}

// IsEmpty reports whether any axis interval is empty
func (aabb AABB) IsEmpty() bool {
	return aabb.X.IsEmpty() || aabb.Y.IsEmpty() || aabb.Z.IsEmpty()
}

func (aabb *AABB) padToMinimums() {
	if aabb.X.Size() < minAABBWidth && !aabb.X.IsEmpty() {
		aabb.X = aabb.X.Expand(minAABBWidth)
	}
	if aabb.Y.Size() < minAABBWidth && !aabb.Y.IsEmpty() {
		aabb.Y = aabb.Y.Expand(minAABBWidth)
	}
	if aabb.Z.Size() < minAABBWidth && !aabb.Z.IsEmpty() {
		aabb.Z = aabb.Z.Expand(minAABBWidth)
	}
}
