package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/webp"

	"github.com/scalychimp/themeify/palette"
	"github.com/scalychimp/themeify/quantize"
)

// logger writes progress messages. It discards everything unless --verbose
// is set.
var logger = log.New(io.Discard, "themeify: ", 0)

func setupLogging(verbose bool, w io.Writer) {
	if verbose {
		logger.SetOutput(w)
	} else {
		logger.SetOutput(io.Discard)
	}
}

func logf(format string, v ...interface{}) {
	logger.Printf(format, v...)
}

// parsePalette returns the palette selected by the --colors or --palette
// flags. An inline palette wins over a palette name or file.
func parsePalette(c *cli.Context) (palette.Palette, error) {
	if colors := c.String("colors"); colors != "" {
		p, err := palette.ParseList(colors)
		if err != nil {
			return nil, fmt.Errorf("colors: %w", err)
		}
		return p, nil
	}

	name := c.String("palette")
	p, err := palette.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	return p, nil
}

// getInputImage takes an input image arg and returns an image that has
// modifications applied.
func getInputImage(arg string, c *cli.Context) (image.Image, error) {
	var img image.Image
	var err error

	if arg == "-" {
		img, err = imaging.Decode(os.Stdin, autoOrientation)
	} else {
		img, err = imaging.Open(arg, autoOrientation)
	}
	if err != nil {
		return nil, err
	}

	if width != 0 || height != 0 {
		// Box sampling is quick and fast, and better then others at downscaling
		// https://pkg.go.dev/github.com/disintegration/imaging#ResampleFilter
		img = imaging.Resize(img, width, height, imaging.Box)
	}

	return img, nil
}

// postProcImage turns a quantized buffer into the image that gets encoded,
// applying the blur if requested.
//
// Without blur, GIF output gets an *image.Paletted so the encoder keeps the
// palette as is.
func postProcImage(buf *quantize.Buffer) image.Image {
	if blurSigma > 0 {
		return imaging.Blur(buf.Image(), blurSigma)
	}
	if outFormat == imaging.GIF {
		return buf.Paletted(pal)
	}
	return buf.Image()
}

// outputPath returns where the recolored version of inputPath is written.
func outputPath(inputPath, outPath string) string {
	if outPath == "-" || !outIsDir {
		return outPath
	}
	// Inside output directory
	// Same name as input file but potentially different extension
	base := filepath.Base(inputPath)
	if inputPath == "-" {
		base = "stdin"
	}
	return filepath.Join(
		outPath,
		strings.TrimSuffix(base, filepath.Ext(base))+"."+strings.ToLower(outFormat.String()),
	)
}

func encodeOptions() []imaging.EncodeOption {
	fq := &fakeQuantizer{p: pal}
	return []imaging.EncodeOption{
		imaging.PNGCompressionLevel(compLevel),
		imaging.JPEGQuality(jpegQuality),
		imaging.GIFNumColors(len(pal)),
		imaging.GIFQuantizer(fq),
		imaging.GIFDrawer(fq),
	}
}

// writeImage encodes img to path. Files are written to a temporary file
// next to the destination and renamed once encoding succeeded, so a failed
// run never leaves a partial image behind.
func writeImage(img image.Image, path string, c *cli.Context) (err error) {
	if path == "-" {
		if err := imaging.Encode(c.App.Writer, img, outFormat, encodeOptions()...); err != nil {
			return fmt.Errorf("error writing %s to stdout: %w", outFormat, err)
		}
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("'%s': %w", path, err)
	}
	canRename := false
	defer func() {
		if defErr := tmp.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary file for '%s': %w", path, defErr)
		}
		if canRename && err == nil {
			if defErr := os.Rename(tmp.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename temporary file to '%s': %w", path, defErr)
			}
		}
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err = imaging.Encode(tmp, img, outFormat, encodeOptions()...); err != nil {
		return fmt.Errorf("error writing %s to '%s': %w", outFormat, path, err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("'%s': %w", path, err)
	}

	canRename = true
	return nil
}

// checkOverwrite fails if path exists and --no-overwrite is set.
func checkOverwrite(path string) error {
	if !noOverwrite || path == "-" {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return fmt.Errorf("'%s': %w", path, fs.ErrExist)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("'%s': %w", path, err)
	}
	return nil
}

// logUsage logs how many pixels went to each palette color.
func logUsage(buf *quantize.Buffer) {
	total := len(buf.Pix)
	if total == 0 {
		return
	}
	for i, n := range quantize.Usage(buf, pal) {
		if n == 0 {
			continue
		}
		logf("  %s %6.2f%%", pal[i].Hex(), float64(n)*100/float64(total))
	}
}

// processImages recolors all the input images and writes them.
// It handles all image I/O.
func processImages(c *cli.Context) error {
	outPath := c.String("out")

	for _, inputPath := range inputImages {
		path := outputPath(inputPath, outPath)
		if err := checkOverwrite(path); err != nil {
			return err
		}

		img, err := getInputImage(inputPath, c)
		if err != nil {
			return fmt.Errorf("error loading '%s': %w", inputPath, err)
		}

		start := time.Now()
		buf, err := quantize.Quantize(quantize.FromImage(img), pal, quantOpts)
		if err != nil {
			return fmt.Errorf("error recoloring '%s': %w", inputPath, err)
		}
		logf("%s: recolored %dx%d image (%s) in %s",
			inputPath, buf.Width, buf.Height, quantOpts.Mode, time.Since(start).Round(time.Millisecond))
		logUsage(buf)

		if err := writeImage(postProcImage(buf), path, c); err != nil {
			return err
		}
		logf("%s: wrote %s", inputPath, path)
	}

	return nil
}
