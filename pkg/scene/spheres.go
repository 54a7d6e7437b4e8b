package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

// spheresLayoutSeed fixes the random layout so the preset is the same on every run
const spheresLayoutSeed = 42

// NewSpheresScene creates a field of small random spheres around three large ones
// on a checkered ground sphere. Diffuse spheres bounce during the shutter interval.
func NewSpheresScene() *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.Center = core.NewVec3(13, 2, 3)
	cameraConfig.LookAt = core.NewVec3(0, 0, 0)
	cameraConfig.VFov = 20
	cameraConfig.DefocusAngle = 0.6
	cameraConfig.FocusDistance = 10
	cameraConfig.Background = core.NewVec3(0.70, 0.80, 1.00)

	s := New("spheres", cameraConfig)

	ground := material.NewTexturedLambertian(
		material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground)

	random := rand.New(rand.NewSource(spheresLayoutSeed))
	glass := material.NewDielectric(1.5)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			// Keep clear of the large metal sphere
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				hue := math.Mod(math.Atan2(center.Z, center.X)*180/math.Pi+360, 360)
				albedo := oklchToRGB(0.7, 0.05+0.15*random.Float64(), hue)
				bounce := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
				s.AddMovingSphere(center, bounce, 0.2, material.NewLambertian(albedo))
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					0.5+0.5*random.Float64(),
					0.5+0.5*random.Float64(),
					0.5+0.5*random.Float64(),
				)
				s.AddSphere(center, 0.2, material.NewMetal(albedo, 0.5*random.Float64()))
			default:
				s.AddSphere(center, 0.2, glass)
			}
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, glass)
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	return s
}

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}
