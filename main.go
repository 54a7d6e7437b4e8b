package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

var logger = log.New("pathtracer")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// Free -v for verbose logging
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-bvh-pathtracer"
	app.Usage = "render preset scenes with a parallel Monte Carlo path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to a PPM image",
			Description: `
Render one of the preset scenes. Settings come from the defaults, then the
optional YAML settings file, then any flags given on the command line.

The image is written as plain PPM. Use --png to also write a PNG and
--thumbnail to write a downscaled PNG preview next to the output.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "spheres",
					Usage: "preset scene to render (see list-scenes)",
				},
				cli.StringFlag{
					Name:  "config, c",
					Usage: "YAML settings file",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 400,
					Usage: "image width in pixels",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 100,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: 50,
					Usage: "maximum ray bounce depth",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "render goroutines (0 = one per CPU)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "base random seed for reproducible renders (0 = from the clock)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "PPM output file (default output/<scene>/render_<timestamp>.ppm)",
				},
				cli.StringFlag{
					Name:  "png",
					Usage: "also write the image as PNG to this file",
				},
				cli.UintFlag{
					Name:  "thumbnail",
					Usage: "also write a PNG thumbnail of this width",
				},
				cli.StringFlag{
					Name:  "profile",
					Usage: "write a cpu or mem profile to the output directory",
				},
			},
			Action: renderScene,
		},
		{
			Name:   "list-scenes",
			Usage:  "list the preset scenes",
			Action: listScenes,
		},
	}

	return app
}

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
