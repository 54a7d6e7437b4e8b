package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// PixelBuffer holds linear colors in row-major order, row 0 at the top
type PixelBuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewPixelBuffer allocates a black buffer
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (b *PixelBuffer) At(x, y int) core.Vec3 {
	return b.Pixels[y*b.Width+x]
}

// Set stores the color of pixel (x, y)
func (b *PixelBuffer) Set(x, y int, c core.Vec3) {
	b.Pixels[y*b.Width+x] = c
}

// WritePPM writes the buffer as plain PPM: a "P3" header, the size, 255,
// then one "R G B" line per pixel
func (b *PixelBuffer) WritePPM(w io.Writer, gamma float64) error {
	out := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(out, "P3\n%d %d\n255\n", b.Width, b.Height); err != nil {
		return errors.Wrap(err, "writing PPM header")
	}

	for _, pixel := range b.Pixels {
		r, g, bl := toBytes(pixel, gamma)
		if _, err := fmt.Fprintf(out, "%d %d %d\n", r, g, bl); err != nil {
			return errors.Wrap(err, "writing PPM pixel")
		}
	}

	return errors.Wrap(out.Flush(), "flushing PPM output")
}

// Image converts the buffer to an 8-bit RGBA image
func (b *PixelBuffer) Image(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, g, bl := toBytes(b.At(x, y), gamma)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: bl, A: 255})
		}
	}
	return img
}

// Thumbnail returns the image scaled to width, keeping the aspect ratio
func (b *PixelBuffer) Thumbnail(width uint, gamma float64) image.Image {
	return resize.Resize(width, 0, b.Image(gamma), resize.Lanczos3)
}

// toBytes gamma-corrects a linear color, clamps it to [0,1] and scales by 255.999, truncating
func toBytes(c core.Vec3, gamma float64) (uint8, uint8, uint8) {
	c = c.GammaCorrect(gamma)
	return channelByte(c.X), channelByte(c.Y), channelByte(c.Z)
}

func channelByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(255.999 * math.Max(0, math.Min(1, v)))
}
