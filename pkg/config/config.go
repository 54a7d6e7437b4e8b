package config

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

// Settings are the render options that can be kept in a YAML file.
// Zero-valued optional fields leave the scene preset's value in place.
type Settings struct {
	Scene           string    `yaml:"scene"`
	Width           int       `yaml:"width"`
	AspectRatio     float64   `yaml:"aspect_ratio"` // 0 = scene preset
	SamplesPerPixel int       `yaml:"samples_per_pixel"`
	MaxDepth        int       `yaml:"max_depth"`
	Workers         int       `yaml:"workers"` // 0 = one per CPU
	Seed            int64     `yaml:"seed"`    // 0 = seeded from the clock
	Gamma           float64   `yaml:"gamma"`
	Background      []float64 `yaml:"background"`      // empty = scene preset
	Output          string    `yaml:"output"`          // empty = timestamped file under output/<scene>/
	ThumbnailWidth  uint      `yaml:"thumbnail_width"` // 0 = no thumbnail
}

// Default returns the settings used when no file is given
func Default() Settings {
	return Settings{
		Scene:           "spheres",
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Gamma:           1,
	}
}

// Load reads a settings file on top of Default. Unknown keys are rejected.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, errors.Wrapf(err, "reading settings %s", path)
	}
	if err := yaml.UnmarshalStrict(data, &settings); err != nil {
		return settings, errors.Wrapf(err, "parsing settings %s", path)
	}
	if err := settings.Validate(); err != nil {
		return settings, errors.Wrapf(err, "invalid settings %s", path)
	}

	return settings, nil
}

// Validate rejects settings that cannot produce an image
func (s Settings) Validate() error {
	switch {
	case s.Scene == "":
		return errors.New("scene must be set")
	case s.Width <= 0:
		return errors.Errorf("width must be positive, got %d", s.Width)
	case s.SamplesPerPixel <= 0:
		return errors.Errorf("samples_per_pixel must be positive, got %d", s.SamplesPerPixel)
	case s.MaxDepth <= 0:
		return errors.Errorf("max_depth must be positive, got %d", s.MaxDepth)
	case s.AspectRatio < 0 || math.IsNaN(s.AspectRatio):
		return errors.Errorf("aspect_ratio must not be negative, got %f", s.AspectRatio)
	case s.Workers < 0:
		return errors.Errorf("workers must not be negative, got %d", s.Workers)
	case !(s.Gamma > 0):
		return errors.Errorf("gamma must be positive, got %f", s.Gamma)
	case len(s.Background) != 0 && len(s.Background) != 3:
		return errors.Errorf("background must have 3 components, got %d", len(s.Background))
	}
	return nil
}

// Apply overrides a scene's camera configuration with these settings
func (s Settings) Apply(camera renderer.CameraConfig) renderer.CameraConfig {
	camera.Width = s.Width
	camera.SamplesPerPixel = s.SamplesPerPixel
	camera.MaxDepth = s.MaxDepth
	camera.Workers = s.Workers
	camera.Seed = s.Seed
	camera.Gamma = s.Gamma

	if s.AspectRatio > 0 {
		camera.AspectRatio = s.AspectRatio
	}
	if len(s.Background) == 3 {
		camera.Background = core.NewVec3(s.Background[0], s.Background[1], s.Background[2])
	}

	return camera
}
