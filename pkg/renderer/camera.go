package renderer

import (
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// CameraConfig contains all parameters needed to set up a camera and render with it
type CameraConfig struct {
	Center          core.Vec3 // Camera position
	LookAt          core.Vec3 // Point the camera is looking at
	Up              core.Vec3 // Up direction (usually (0,1,0))
	Width           int       // Image width in pixels
	AspectRatio     float64   // Width / height
	VFov            float64   // Vertical field of view in degrees
	DefocusAngle    float64   // Variation angle of rays through each pixel, in degrees (0 = pinhole)
	FocusDistance   float64   // Distance to the plane of perfect focus (0 = distance to LookAt)
	SamplesPerPixel int       // Rays per pixel, rounded down to a square stratification grid
	MaxDepth        int       // Maximum ray bounce depth
	Background      core.Vec3 // Radiance returned by rays that escape the scene
	Gamma           float64   // Output gamma (1 = linear)
	Workers         int       // Render goroutines (0 = one per CPU)
	Seed            int64     // Base random seed (0 = seeded from the clock)
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:          core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		VFov:            90,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Background:      core.NewVec3(0.70, 0.80, 1.00),
		Gamma:           1,
	}
}

// Camera generates rays for rendering and drives the parallel render
type Camera struct {
	config CameraConfig

	// Lights, when set, are sampled directly at diffuse bounces
	Lights geometry.SampleableShape

	initialized  bool
	height       int
	center       core.Vec3
	pixel00      core.Vec3 // Location of pixel (0, 0)
	pixelDeltaU  core.Vec3 // Offset to the pixel to the right
	pixelDeltaV  core.Vec3 // Offset to the pixel below
	u, v, w      core.Vec3 // Camera frame basis vectors
	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
	sqrtSpp      int       // Stratification grid size per axis
	recipSqrtSpp float64   // 1 / sqrtSpp
}

// NewCamera creates a camera; call Initialize before generating rays
func NewCamera(config CameraConfig) *Camera {
	return &Camera{config: config}
}

// Config returns the camera's configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Initialize validates the configuration and derives the view basis, pixel grid and defocus disk
func (c *Camera) Initialize() error {
	cfg := c.config
	if cfg.Width <= 0 {
		return errors.Errorf("image width must be positive, got %d", cfg.Width)
	}
	if cfg.AspectRatio <= 0 || math.IsNaN(cfg.AspectRatio) || math.IsInf(cfg.AspectRatio, 0) {
		return errors.Errorf("aspect ratio must be positive, got %f", cfg.AspectRatio)
	}
	if cfg.SamplesPerPixel <= 0 {
		return errors.Errorf("samples per pixel must be positive, got %d", cfg.SamplesPerPixel)
	}
	if cfg.MaxDepth <= 0 {
		return errors.Errorf("max depth must be positive, got %d", cfg.MaxDepth)
	}
	if cfg.VFov <= 0 || cfg.VFov >= 180 {
		return errors.Errorf("vertical field of view must be in (0, 180), got %f", cfg.VFov)
	}

	c.height = max(1, int(float64(cfg.Width)/cfg.AspectRatio))

	c.sqrtSpp = max(1, int(math.Sqrt(float64(cfg.SamplesPerPixel))))
	c.recipSqrtSpp = 1.0 / float64(c.sqrtSpp)

	c.center = cfg.Center

	focusDistance := cfg.FocusDistance
	if focusDistance <= 0 {
		focusDistance = cfg.Center.Subtract(cfg.LookAt).Length()
	}
	if focusDistance <= 0 {
		return errors.New("camera center and look-at point must differ")
	}

	// Viewport dimensions
	theta := cfg.VFov * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2) * focusDistance
	viewportWidth := viewportHeight * float64(cfg.Width) / float64(c.height)

	// Orthonormal camera basis
	c.w = cfg.Center.Subtract(cfg.LookAt).Normalize()
	c.u = cfg.Up.Cross(c.w).Normalize()
	if c.u == (core.Vec3{}) {
		return errors.Errorf("up vector %v is parallel to the view direction", cfg.Up)
	}
	c.v = c.w.Cross(c.u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Negate().Multiply(viewportHeight)

	c.pixelDeltaU = viewportU.Multiply(1.0 / float64(cfg.Width))
	c.pixelDeltaV = viewportV.Multiply(1.0 / float64(c.height))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	c.pixel00 = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := focusDistance * math.Tan(cfg.DefocusAngle/2*math.Pi/180)
	c.defocusDiskU = c.u.Multiply(defocusRadius)
	c.defocusDiskV = c.v.Multiply(defocusRadius)

	c.initialized = true
	return nil
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the image height in pixels (valid after Initialize)
func (c *Camera) Height() int {
	return c.height
}

// SamplesPerPixel returns the number of samples actually taken per pixel (sqrtSpp²)
func (c *Camera) SamplesPerPixel() int {
	return c.sqrtSpp * c.sqrtSpp
}

// GetRay returns a ray through a random point of stratum (si, sj) of pixel (i, j),
// leaving from the defocus disk and carrying a random time in [0, 1)
func (c *Camera) GetRay(i, j, si, sj int, sampler core.Sampler) core.Ray {
	offset := c.sampleSquareStratified(si, sj, sampler)
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

// sampleSquareStratified returns an offset in [-0.5, 0.5)² inside stratum (si, sj)
func (c *Camera) sampleSquareStratified(si, sj int, sampler core.Sampler) core.Vec2 {
	sample := sampler.Get2D()
	return core.NewVec2(
		(float64(si)+sample.X)*c.recipSqrtSpp-0.5,
		(float64(sj)+sample.Y)*c.recipSqrtSpp-0.5,
	)
}

// defocusDiskSample returns a random point on the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.SamplePointInUnitDisk(sampler.Get2D())
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// Render renders world and writes the image to w as PPM
func (c *Camera) Render(w io.Writer, world geometry.Hittable) error {
	buffer, _, err := c.RenderBuffer(world)
	if err != nil {
		return err
	}
	return buffer.WritePPM(w, c.config.Gamma)
}

// RenderBuffer renders world into a linear pixel buffer. A nil world renders as an empty scene.
func (c *Camera) RenderBuffer(world geometry.Hittable) (*PixelBuffer, *RenderStats, error) {
	if !c.initialized {
		if err := c.Initialize(); err != nil {
			return nil, nil, errors.Wrap(err, "initializing camera")
		}
	}
	if world == nil {
		world = geometry.NewHittableList()
	}

	rt := NewRaytracer(c, world)
	pool := NewWorkerPool(c.config.Workers, c.config.Seed)
	buffer := NewPixelBuffer(c.config.Width, c.height)

	stats, err := pool.Run(rt, buffer)
	if err != nil {
		return nil, stats, errors.Wrap(err, "rendering")
	}

	return buffer, stats, nil
}
