package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/pkg/config"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// renderScene renders the selected preset and writes the requested images
func renderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	settings, err := loadSettings(ctx)
	if err != nil {
		return err
	}

	switch ctx.String("profile") {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(outputDir(settings.Scene)), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(outputDir(settings.Scene)), profile.Quiet).Stop()
	default:
		return errors.Errorf("unknown profile mode %q (want cpu or mem)", ctx.String("profile"))
	}

	s, err := scene.Create(settings.Scene)
	if err != nil {
		return err
	}
	s.CameraConfig = settings.Apply(s.CameraConfig)

	camera := s.Camera()
	if err := camera.Initialize(); err != nil {
		return errors.Wrap(err, "configuring camera")
	}
	logger.Noticef("rendering scene %s at %dx%d, %d samples per pixel, max depth %d",
		s.Name, camera.Width(), camera.Height(), camera.SamplesPerPixel(), s.CameraConfig.MaxDepth)

	buffer, stats, err := camera.RenderBuffer(s.Build())
	if err != nil {
		return err
	}

	output := settings.Output
	if output == "" {
		output = filepath.Join(outputDir(settings.Scene), fmt.Sprintf("render_%s.ppm", time.Now().Format("20060102_150405")))
	}
	if err := writeFile(output, func(w io.Writer) error {
		return buffer.WritePPM(w, s.CameraConfig.Gamma)
	}); err != nil {
		return err
	}
	logger.Noticef("render saved as %s", output)

	if pngPath := ctx.String("png"); pngPath != "" {
		if err := writePNG(pngPath, buffer.Image(s.CameraConfig.Gamma)); err != nil {
			return err
		}
		logger.Noticef("PNG saved as %s", pngPath)
	}

	if settings.ThumbnailWidth > 0 {
		thumbPath := strings.TrimSuffix(output, filepath.Ext(output)) + "_thumb.png"
		if err := writePNG(thumbPath, buffer.Thumbnail(settings.ThumbnailWidth, s.CameraConfig.Gamma)); err != nil {
			return err
		}
		logger.Noticef("thumbnail saved as %s", thumbPath)
	}

	stats.WriteTable(errWriter(ctx))
	return nil
}

// loadSettings layers the settings file and the explicitly set flags over the defaults
func loadSettings(ctx *cli.Context) (config.Settings, error) {
	settings := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if settings, err = config.Load(path); err != nil {
			return settings, err
		}
	}

	if ctx.IsSet("scene") || settings.Scene == "" {
		settings.Scene = ctx.String("scene")
	}
	if ctx.IsSet("width") {
		settings.Width = ctx.Int("width")
	}
	if ctx.IsSet("spp") {
		settings.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("depth") {
		settings.MaxDepth = ctx.Int("depth")
	}
	if ctx.IsSet("workers") {
		settings.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("seed") {
		settings.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("out") {
		settings.Output = ctx.String("out")
	}
	if ctx.IsSet("thumbnail") {
		settings.ThumbnailWidth = ctx.Uint("thumbnail")
	}

	return settings, errors.Wrap(settings.Validate(), "invalid settings")
}

// listScenes prints the preset scenes as a table
func listScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"Scene", "Name", "Description"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, info := range scene.List() {
		table.Append([]string{info.ID, info.DisplayName, info.Description})
	}
	table.Render()

	return nil
}

// outputDir returns the directory for a scene's default outputs
func outputDir(sceneName string) string {
	return filepath.Join("output", sceneName)
}

// writeFile creates path and its parent directories and fills it with write
func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}

	if err := write(file); err != nil {
		file.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.Wrapf(file.Close(), "closing %s", path)
}

func writePNG(path string, img image.Image) error {
	return writeFile(path, func(w io.Writer) error {
		return png.Encode(w, img)
	})
}

func errWriter(ctx *cli.Context) io.Writer {
	if ctx.App.ErrWriter != nil {
		return ctx.App.ErrWriter
	}
	return os.Stderr
}
