package renderer

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
)

// Raytracer renders contiguous row ranges of one image. It is shared read-only by all workers.
type Raytracer struct {
	camera     *Camera
	world      geometry.Hittable
	integrator integrator.Integrator
}

// NewRaytracer creates a raytracer for an initialized camera
func NewRaytracer(camera *Camera, world geometry.Hittable) *Raytracer {
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integrator.NewPathTracer(camera.config.Background, camera.Lights),
	}
}

// RenderRows renders every pixel of rows into buffer and returns the number of samples taken.
// Only rows inside the range are written.
func (rt *Raytracer) RenderRows(rows RowRange, buffer *PixelBuffer, sampler core.Sampler) int64 {
	camera := rt.camera
	maxDepth := camera.config.MaxDepth
	sampleScale := 1.0 / float64(camera.SamplesPerPixel())

	var samples int64
	for j := rows.Start; j < rows.End; j++ {
		for i := 0; i < buffer.Width; i++ {
			colorAccum := core.Vec3{}

			for sj := 0; sj < camera.sqrtSpp; sj++ {
				for si := 0; si < camera.sqrtSpp; si++ {
					ray := camera.GetRay(i, j, si, sj, sampler)
					colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.world, sampler, maxDepth))
				}
			}

			buffer.Set(i, j, colorAccum.Multiply(sampleScale))
			samples += int64(camera.sqrtSpp * camera.sqrtSpp)
		}
	}

	return samples
}
