package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates two color sources on a 3D lattice of cells
type CheckerTexture struct {
	invScale  float64
	Even, Odd ColorSource
}

// NewCheckerTexture creates a spatial checker pattern with cells of the given edge length
func NewCheckerTexture(scale float64, even, odd ColorSource) *CheckerTexture {
	return &CheckerTexture{invScale: 1.0 / scale, Even: even, Odd: odd}
}

// NewCheckerColors creates a spatial checker pattern from two solid colors
func NewCheckerColors(scale float64, even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Evaluate picks the even or odd source based on the lattice cell containing point
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	x := int(math.Floor(c.invScale * point.X))
	y := int(math.Floor(c.invScale * point.Y))
	z := int(math.Floor(c.invScale * point.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}

// ImageTexture provides color from a 2D grid of linear colors
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{Width: width, Height: height, Pixels: pixels}
}

// NewUVDebugTexture creates a texture showing UV coordinates as colors
// U maps to red channel, V maps to green channel
func NewUVDebugTexture(width, height int) *ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := float64(x) / float64(max(1, width-1))
			v := 1.0 - float64(y)/float64(max(1, height-1))
			pixels[y*width+x] = core.NewVec3(u, v, 0.2)
		}
	}
	return NewImageTexture(width, height, pixels)
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.NewVec3(0, 1, 1) // cyan marks missing data
	}

	// Wrap UV coordinates to [0, 1)
	u := uv.X - math.Floor(uv.X)
	v := uv.Y - math.Floor(uv.Y)

	// V=0 is bottom, V=1 is top; image rows start at the top
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int((1.0-v)*float64(t.Height)), t.Height-1)

	return t.Pixels[max(0, y)*t.Width+max(0, x)]
}
