package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Set with -ldflags "-X main.version=..." at build time
var (
	version = "v0.3.0"
	commit  = "unknown"
	builtBy = "unknown"
)

func newApp() *cli.App {
	return &cli.App{
		Name:                   "themeify",
		Usage:                  "recolor images onto a fixed color palette.",
		Description:            "themeify replaces every pixel of an image with the closest color of a palette.\n\nPalettes are files with one #RRGGBB color per line, or one of the builtin\npalettes shown by `themeify list`.",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "in",
				Aliases: []string{"i"},
				Usage:   "input image path or glob, '-' for stdin",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file or existing directory, '-' for stdout",
			},
			&cli.StringFlag{
				Name:    "palette",
				Aliases: []string{"p"},
				Usage:   "builtin palette name or palette file path",
				EnvVars: []string{"THEMEIFY_PALETTE"},
			},
			&cli.StringFlag{
				Name:    "colors",
				Aliases: []string{"c"},
				Usage:   "inline palette like '#282828 235,219,178 navy', overrides --palette",
			},
			&cli.BoolFlag{
				Name:  "no-parallel",
				Usage: "quantize on a single thread",
			},
			&cli.UintFlag{
				Name:    "threads",
				Aliases: []string{"j"},
				Usage:   "number of worker threads, 0 uses all CPUs",
				EnvVars: []string{"THEMEIFY_THREADS"},
			},
			&cli.Float64Flag{
				Name:    "blur",
				Aliases: []string{"b"},
				Usage:   "Gaussian blur sigma applied after recoloring",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: png, jpeg, gif, tiff or bmp",
				Value:   "png",
			},
			&cli.UintFlag{
				Name:    "width",
				Aliases: []string{"x"},
				Usage:   "resize to this width before recoloring",
			},
			&cli.UintFlag{
				Name:    "height",
				Aliases: []string{"y"},
				Usage:   "resize to this height before recoloring",
			},
			&cli.BoolFlag{
				Name: "no-exif-rotation",
			},
			&cli.BoolFlag{
				Name:  "no-overwrite",
				Usage: "fail instead of replacing existing output files",
			},
			&cli.StringFlag{
				Name:  "compression",
				Usage: "PNG compression: default, no, speed or size",
				Value: "default",
			},
			&cli.IntFlag{
				Name:  "quality",
				Usage: "JPEG quality from 1 to 100",
				Value: 95,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log progress to stderr",
			},
			&cli.BoolFlag{
				Name:    "version",
				Aliases: []string{"v"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list the builtin palettes",
				Action: list,
			},
			{
				Name:   "show",
				Usage:  "print the selected palette, one color per line",
				Action: show,
			},
		},
		Before: preProcess,
		Action: recolor,
	}
}

func main() {
	// Handle version flag
	if len(os.Args) == 2 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println("themeify", version)
		fmt.Println("Commit:", commit)
		fmt.Println("Built by:", builtBy)
		return
	}

	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
