// Package quantize recolors images onto a fixed palette. Every pixel is
// replaced by the palette color at the smallest L1 distance, with ties going
// to the earliest palette entry.
//
// Images can be processed sequentially or split across workers. Both modes
// produce identical output for the same input:
//
//	out, err := quantize.Quantize(quantize.FromImage(img), pal, quantize.Options{
//		Mode:    quantize.Parallel,
//		Workers: runtime.GOMAXPROCS(0),
//	})
package quantize

import (
	"fmt"
	"strings"

	"github.com/scalychimp/themeify/palette"
	"github.com/scalychimp/themeify/parallel"
)

// Mode selects how Quantize walks the pixels of an image.
type Mode int

const (
	// Sequential processes pixels in row-major order on the calling goroutine.
	Sequential Mode = iota
	// Parallel splits the pixels into contiguous chunks, one per worker.
	Parallel
)

func (m Mode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "sequential" or "parallel", ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "sequential":
		return Sequential, nil
	case "parallel":
		return Parallel, nil
	}
	return 0, fmt.Errorf("unknown quantization mode %q", s)
}

// Options configures Quantize. The zero value is sequential.
type Options struct {
	Mode Mode
	// Workers bounds the number of goroutines in Parallel mode.
	// Zero or less means runtime.GOMAXPROCS(0).
	Workers int
}

// Color returns the palette color nearest to c. It fails with
// palette.ErrEmpty if p has no colors.
func Color(c palette.Color, p palette.Palette) (palette.Color, error) {
	return p.Nearest(c)
}

// Quantize returns a new buffer the size of src where every pixel is the
// palette color nearest to the source pixel. src and p are only read.
//
// The palette is checked once before any pixel is processed; if it is empty
// Quantize returns palette.ErrEmpty and no buffer.
func Quantize(src *Buffer, p palette.Palette, opts Options) (*Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	dst := NewBuffer(src.Width, src.Height)

	switch opts.Mode {
	case Sequential:
		quantizeRange(dst.Pix, src.Pix, p)
	case Parallel:
		parallel.For(opts.Workers, len(src.Pix), func(start, end int) {
			quantizeRange(dst.Pix[start:end], src.Pix[start:end], p)
		})
	default:
		return nil, fmt.Errorf("unknown quantization mode %v", opts.Mode)
	}

	return dst, nil
}

// quantizeRange writes the nearest palette color of each src pixel to the
// same position in dst. p must not be empty.
func quantizeRange(dst, src []palette.Color, p palette.Palette) {
	for i, c := range src {
		dst[i] = p[p.Index(c)]
	}
}

// Usage counts how many pixels of b map to each palette entry. The result
// has one count per palette color, in palette order.
func Usage(b *Buffer, p palette.Palette) []int {
	counts := make([]int, len(p))
	if len(p) == 0 {
		return counts
	}
	for _, c := range b.Pix {
		counts[p.Index(c)]++
	}
	return counts
}
