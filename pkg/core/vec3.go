package core

import (
	"math"
)

// Vec3 represents a 3D vector, point or linear RGB color
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Divide returns the vector divided by a scalar
func (v Vec3) Divide(scalar float64) Vec3 {
	return v.Multiply(1.0 / scalar)
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Normalize returns a unit vector in the same direction
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{0, 0, 0}
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// NearZero reports whether every component is within 1e-8 of zero
func (v Vec3) NearZero() bool {
	const s = 1e-8
	return math.Abs(v.X) < s && math.Abs(v.Y) < s && math.Abs(v.Z) < s
}

// Axis returns the component selected by index (0=X, 1=Y, 2=Z)
func (v Vec3) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// GammaCorrect applies gamma correction to color values
func (v Vec3) GammaCorrect(gamma float64) Vec3 {
	if gamma == 1 {
		return v
	}
	invGamma := 1.0 / gamma
	return Vec3{
		X: math.Pow(max(0, v.X), invGamma),
		Y: math.Pow(max(0, v.Y), invGamma),
		Z: math.Pow(max(0, v.Z), invGamma),
	}
}

// Luminance returns the perceptual luminance of an RGB color
func (v Vec3) Luminance() float64 {
	return 0.299*v.X + 0.587*v.Y + 0.114*v.Z
}

// Reflect mirrors v about the surface normal n
func (v Vec3) Reflect(n Vec3) Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends the unit vector v through a surface with normal n using Snell's law.
// etaiOverEtat is the ratio of refractive indices on the incident and transmitted sides.
func (v Vec3) Refract(n Vec3, etaiOverEtat float64) Vec3 {
	cosTheta := math.Min(v.Negate().Dot(n), 1.0)
	rOutPerp := v.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Vec2 represents a 2D vector, used for texture coordinates and 2D samples
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}
