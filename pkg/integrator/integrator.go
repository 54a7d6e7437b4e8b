package integrator

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance carried back along ray, following at most depth bounces
	RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler, depth int) core.Vec3
}
