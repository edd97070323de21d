package quantize

import (
	"image"
	"image/color"

	"github.com/scalychimp/themeify/palette"
)

// Buffer is a row-major grid of opaque colors. len(Pix) is always
// Width*Height.
type Buffer struct {
	Width, Height int
	Pix           []palette.Color
}

// NewBuffer returns a black buffer of the given size. Negative dimensions
// are treated as zero.
func NewBuffer(width, height int) *Buffer {
	width, height = max(width, 0), max(height, 0)
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]palette.Color, width*height),
	}
}

// FromImage copies img into a new Buffer. The buffer's origin is the
// top-left corner of img's bounds. Alpha is dropped.
func FromImage(img image.Image) *Buffer {
	r := img.Bounds()
	b := NewBuffer(r.Dx(), r.Dy())

	// Fast paths for the types imaging and the standard decoders produce
	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < b.Height; y++ {
			row := src.Pix[src.PixOffset(r.Min.X, r.Min.Y+y):]
			for x := 0; x < b.Width; x++ {
				b.Pix[y*b.Width+x] = palette.Color{R: row[x*4], G: row[x*4+1], B: row[x*4+2]}
			}
		}
		return b
	case *image.RGBA:
		for y := 0; y < b.Height; y++ {
			row := src.Pix[src.PixOffset(r.Min.X, r.Min.Y+y):]
			for x := 0; x < b.Width; x++ {
				b.Pix[y*b.Width+x] = palette.FromColor(color.RGBA{row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]})
			}
		}
		return b
	}

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			b.Pix[y*b.Width+x] = palette.FromColor(img.At(r.Min.X+x, r.Min.Y+y))
		}
	}
	return b
}

// At returns the color at (x, y). It panics if the point is out of range.
func (b *Buffer) At(x, y int) palette.Color {
	return b.Pix[b.offset(x, y)]
}

// Set sets the color at (x, y). It panics if the point is out of range.
func (b *Buffer) Set(x, y int, c palette.Color) {
	b.Pix[b.offset(x, y)] = c
}

func (b *Buffer) offset(x, y int) int {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		panic("quantize: point out of range")
	}
	return y*b.Width + x
}

// Equal reports whether both buffers have the same size and pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.Width != other.Width || b.Height != other.Height || len(b.Pix) != len(other.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// Image returns the buffer as a fully opaque *image.NRGBA anchored at (0, 0).
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, c := range b.Pix {
		img.Pix[i*4] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = 0xff
	}
	return img
}

// Paletted returns the buffer as an *image.Paletted using p as its palette,
// which must have at most 256 colors. Every pixel should already be a member
// of p, as it is after Quantize; any other color is stored as its nearest
// palette entry.
func (b *Buffer) Paletted(p palette.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, b.Width, b.Height), p.ColorPalette())
	if len(p) == 0 {
		return img
	}

	// Quantized buffers hold few distinct colors
	indices := make(map[palette.Color]uint8, len(p))
	for i, c := range b.Pix {
		idx, ok := indices[c]
		if !ok {
			idx = uint8(p.Index(c))
			indices[c] = idx
		}
		img.Pix[i] = idx
	}
	return img
}
