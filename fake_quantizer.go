package main

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/scalychimp/themeify/palette"
)

// fakeQuantizer implements draw.Quantizer and draw.Drawer. It ignores the
// provided image and just returns the recolor palette each time. This is
// useful for places that only allow you to set the palette through a
// draw.Quantizer, like the image/gif package.
//
// As a draw.Drawer it maps every source pixel to its nearest palette color
// the same way quantize does, without dithering. The GIF encoder uses it when
// the image it gets isn't already paletted, for example after a blur.
type fakeQuantizer struct {
	p palette.Palette
}

func (fq *fakeQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	return append(p, fq.p.ColorPalette()...)
}

func (fq *fakeQuantizer) Draw(dst draw.Image, r image.Rectangle, src image.Image, sp image.Point) {
	if len(fq.p) == 0 {
		return
	}

	// Fast path: the GIF encoder always draws into a paletted image whose
	// palette came from Quantize
	pm, paletted := dst.(*image.Paletted)

	// Offset from destination to source coordinates
	dx, dy := sp.X-r.Min.X, sp.Y-r.Min.Y

	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := palette.FromColor(src.At(x+dx, y+dy))
			i := fq.p.Index(c)
			if paletted && len(pm.Palette) == len(fq.p) {
				pm.SetColorIndex(x, y, uint8(i))
			} else {
				dst.Set(x, y, fq.p[i])
			}
		}
	}
}
