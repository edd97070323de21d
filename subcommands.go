package main

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/urfave/cli/v2"

	"github.com/scalychimp/themeify/palette"
	"github.com/scalychimp/themeify/quantize"
)

const (
	unsupportedFormat string = "'%s' is an unsupported format, only png, jpeg, gif, tiff or bmp are accepted"
)

var (
	// pal stores the palette colors. It's set after pre-processing and is
	// never empty.
	pal palette.Palette

	quantOpts quantize.Options

	// blurSigma is zero when no blur is applied
	blurSigma float64

	autoOrientation imaging.DecodeOption

	width  int
	height int

	// Set by prepareOutput, only for the recolor action

	inputImages []string
	outFormat   imaging.Format
	outIsDir    bool

	compLevel   png.CompressionLevel
	jpegQuality int
	noOverwrite bool
)

// preProcess is automatically called by the app before anything else.
// It's run in the global context.
func preProcess(c *cli.Context) error {
	setupLogging(c.Bool("verbose"), c.App.ErrWriter)

	var err error

	pal, err = parsePalette(c)
	if err != nil {
		return err
	}
	logf("Using palette with %d colors: %v", len(pal), pal)

	quantOpts = quantize.Options{
		Mode:    quantize.Parallel,
		Workers: int(c.Uint("threads")),
	}
	if c.Bool("no-parallel") {
		quantOpts.Mode = quantize.Sequential
	}

	blurSigma = c.Float64("blur")
	if blurSigma < 0 {
		return fmt.Errorf("blur sigma must be positive, got %v", blurSigma)
	}

	autoOrientation = imaging.AutoOrientation(!c.Bool("no-exif-rotation"))

	// Set here for convenience
	width = int(c.Uint("width"))
	height = int(c.Uint("height"))

	return nil
}

// prepareOutput validates the input and output flags of the recolor action.
func prepareOutput(c *cli.Context) error {
	inputImages = make([]string, 0)
	for _, path := range c.StringSlice("in") {
		if strings.Contains(path, "*") {
			// Parse as glob
			paths, err := filepath.Glob(path)
			if err != nil {
				return fmt.Errorf("bad glob pattern '%s': %w", path, err)
			}
			if len(paths) == 0 {
				return fmt.Errorf("glob pattern '%s' matched no files", path)
			}
			inputImages = append(inputImages, paths...)
		} else {
			inputImages = append(inputImages, path)
		}
	}
	if len(inputImages) == 0 {
		return errors.New("no input images, set them with --in")
	}

	outVal := c.String("out")
	if outVal == "" {
		return errors.New("no output path, set it with --out")
	}

	formatVal, err := imaging.FormatFromExtension(c.String("format"))
	if err != nil {
		return fmt.Errorf(unsupportedFormat, c.String("format"))
	}

	// Figure out output format

	outIsDir = false

	if outVal == "-" {
		// Outputting to stdout, so just use whatever the flag is
		outFormat = formatVal
	} else {
		outFI, err := os.Stat(outVal)

		if err == nil && outFI.IsDir() {
			// Exists and is a directory
			// Just use what the flag is
			outFormat = formatVal
			outIsDir = true

		} else if !c.IsSet("format") {
			// Format wasn't set, so ignore default value of "png"
			// Try to figure out format from output filename
			ext := filepath.Ext(outVal)
			if ext == "" {
				outFormat = imaging.PNG
			} else {
				outFormat, err = imaging.FormatFromExtension(ext)
				if err != nil {
					return fmt.Errorf(unsupportedFormat, strings.TrimPrefix(ext, "."))
				}
			}
		} else {
			// Format flag was set, so ignore what the file looks like
			outFormat = formatVal
		}
	}

	// Multiple input images are only valid if the output points to a directory.
	if len(inputImages) > 1 && !outIsDir {
		return errors.New("multiple input images are only allowed if the output is an existing directory")
	}

	if outFormat == imaging.GIF && len(pal) > 256 {
		return errors.New("the GIF format only supports 256 colors or less in the palette")
	}

	// Set PNG compression type

	switch c.String("compression") {
	case "default":
		compLevel = png.DefaultCompression
	case "no":
		compLevel = png.NoCompression
	case "speed":
		compLevel = png.BestSpeed
	case "size":
		compLevel = png.BestCompression
	default:
		return fmt.Errorf("invalid compression type '%s'", c.String("compression"))
	}

	jpegQuality = c.Int("quality")
	if jpegQuality < 1 || jpegQuality > 100 {
		return fmt.Errorf("JPEG quality must be between 1 and 100, got %d", jpegQuality)
	}

	noOverwrite = c.Bool("no-overwrite")

	return nil
}

// recolor is the default action: quantize every input image and write it.
func recolor(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unknown command '%s'", c.Args().First())
	}
	if err := prepareOutput(c); err != nil {
		return err
	}
	return processImages(c)
}

// list prints the builtin palette names.
func list(c *cli.Context) error {
	for _, name := range palette.Names() {
		if name == palette.DefaultName {
			fmt.Fprintf(c.App.Writer, "%s (default)\n", name)
		} else {
			fmt.Fprintln(c.App.Writer, name)
		}
	}
	return nil
}

// show prints the selected palette in the same format palette files use.
func show(c *cli.Context) error {
	for _, col := range pal {
		if _, err := fmt.Fprintln(c.App.Writer, col.Hex()); err != nil {
			return err
		}
	}
	return nil
}
