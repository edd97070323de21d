// Package palette holds the fixed color palettes that images are recolored
// onto, the distance metric used to compare colors, and the nearest-color
// search over a palette.
package palette

import (
	"errors"
	"image/color"
	"strings"
)

var (
	// ErrEmpty is returned when a palette has no colors. Nearest-color search
	// is undefined on an empty palette.
	ErrEmpty = errors.New("palette has no colors")

	// ErrMalformedEntry is matched by every error describing a palette entry
	// that could not be decoded.
	ErrMalformedEntry = errors.New("malformed palette entry")

	// ErrUnavailable is returned when a palette source cannot be opened or read.
	ErrUnavailable = errors.New("palette source unavailable")
)

// Palette is an ordered list of colors. Order only matters for breaking ties
// between equally distant colors, where the earlier color wins.
type Palette []Color

// Validate reports ErrEmpty for a palette without colors.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return ErrEmpty
	}
	return nil
}

// Index returns the index of the palette color closest to c. When several
// colors are equally close, the lowest index is returned. Index returns -1
// for an empty palette.
func (p Palette) Index(c Color) int {
	ret, bestSum := -1, 0
	for i, v := range p {
		sum := Distance(c, v)
		if ret < 0 || sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

// Nearest returns the palette color closest to c, see Index.
func (p Palette) Nearest(c Color) (Color, error) {
	if err := p.Validate(); err != nil {
		return Color{}, err
	}
	return p[p.Index(c)], nil
}

// Contains reports whether c is exactly equal to one of the palette colors.
func (p Palette) Contains(c Color) bool {
	for _, v := range p {
		if v == c {
			return true
		}
	}
	return false
}

// ColorPalette returns the palette as a color.Palette, in the same order.
func (p Palette) ColorPalette() color.Palette {
	pal := make(color.Palette, len(p))
	for i, c := range p {
		pal[i] = c
	}
	return pal
}

func (p Palette) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.Hex())
	}
	sb.WriteByte(']')
	return sb.String()
}
