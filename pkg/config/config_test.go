package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "render.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Expected default settings to be valid, got %v", err)
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := writeSettings(t, `
scene: cornell
width: 200
aspect_ratio: 1.5
samples_per_pixel: 16
max_depth: 8
workers: 3
seed: 7
gamma: 2
background: [0.1, 0.2, 0.3]
output: out/cornell.ppm
thumbnail_width: 64
`)

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := Settings{
		Scene:           "cornell",
		Width:           200,
		AspectRatio:     1.5,
		SamplesPerPixel: 16,
		MaxDepth:        8,
		Workers:         3,
		Seed:            7,
		Gamma:           2,
		Background:      []float64{0.1, 0.2, 0.3},
		Output:          "out/cornell.ppm",
		ThumbnailWidth:  64,
	}
	if settings.Scene != expected.Scene || settings.Width != expected.Width ||
		settings.AspectRatio != expected.AspectRatio || settings.SamplesPerPixel != expected.SamplesPerPixel ||
		settings.MaxDepth != expected.MaxDepth || settings.Workers != expected.Workers ||
		settings.Seed != expected.Seed || settings.Gamma != expected.Gamma ||
		settings.Output != expected.Output || settings.ThumbnailWidth != expected.ThumbnailWidth {
		t.Errorf("Expected %+v, got %+v", expected, settings)
	}
	if len(settings.Background) != 3 || settings.Background[2] != 0.3 {
		t.Errorf("Expected background %v, got %v", expected.Background, settings.Background)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	settings, err := Load(writeSettings(t, "scene: shapes\nsamples_per_pixel: 4\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	defaults := Default()
	if settings.Scene != "shapes" || settings.SamplesPerPixel != 4 {
		t.Errorf("Expected file values to be applied, got %+v", settings)
	}
	if settings.Width != defaults.Width || settings.MaxDepth != defaults.MaxDepth ||
		settings.Gamma != defaults.Gamma || settings.Output != defaults.Output {
		t.Errorf("Expected unspecified fields to keep defaults, got %+v", settings)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "scene: cornell\nexposure: 2\n"},
		{"malformed yaml", "scene: [cornell\n"},
		{"zero width", "width: 0\n"},
		{"negative samples", "samples_per_pixel: -1\n"},
		{"zero depth", "max_depth: 0\n"},
		{"negative workers", "workers: -2\n"},
		{"negative aspect", "aspect_ratio: -1\n"},
		{"zero gamma", "gamma: 0\n"},
		{"short background", "background: [1, 1]\n"},
		{"empty scene", "scene: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeSettings(t, tt.content)); err == nil {
				t.Error("Expected an error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestSettings_Apply(t *testing.T) {
	preset := renderer.DefaultCameraConfig()
	preset.AspectRatio = 1
	preset.VFov = 40
	preset.Background = core.NewVec3(0.5, 0.5, 0.5)

	settings := Default()
	settings.Width = 64
	settings.Seed = 11

	camera := settings.Apply(preset)
	if camera.Width != 64 || camera.Seed != 11 || camera.SamplesPerPixel != settings.SamplesPerPixel {
		t.Errorf("Expected settings to override the preset, got %+v", camera)
	}
	if camera.AspectRatio != 1 || camera.Background != preset.Background || camera.VFov != 40 {
		t.Errorf("Expected unset optional fields to keep the preset, got %+v", camera)
	}

	settings.AspectRatio = 2
	settings.Background = []float64{0, 0, 0}
	camera = settings.Apply(preset)
	if camera.AspectRatio != 2 || camera.Background != (core.Vec3{}) {
		t.Errorf("Expected optional fields to override the preset, got %+v", camera)
	}
}
