package palette

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 8-bit-per-channel RGB color.
//
// It implements color.Color so palettes can be handed straight to the
// image and image/gif packages.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color. The alpha channel is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// FromColor converts any color.Color to a Color. Alpha is discarded after
// un-premultiplying.
func FromColor(c color.Color) Color {
	if pc, ok := c.(Color); ok {
		return pc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B}
}

// Distance returns the sum of the absolute per-channel differences between
// a and b. The result is in the range [0, 765].
func Distance(a, b Color) int {
	return absDiff(a.R, b.R) + absDiff(a.G, b.G) + absDiff(a.B, b.B)
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

// ParseHex parses a color in the form "#RRGGBB". Hex digits may be upper or
// lower case. Shorthand forms like "#RGB" are rejected.
func ParseHex(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("%q is not in #RRGGBB form", s)
	}
	for i := 1; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return Color{}, fmt.Errorf("%q contains non-hex digit %q", s, s[i])
		}
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	r, g, b := c.RGB255()
	return Color{r, g, b}, nil
}

func isHexDigit(b byte) bool {
	switch {
	case '0' <= b && b <= '9':
		return true
	case 'a' <= b && b <= 'f':
		return true
	case 'A' <= b && b <= 'F':
		return true
	}
	return false
}
