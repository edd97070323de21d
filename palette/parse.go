package palette

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// EntryError describes a palette entry that could not be decoded.
// It matches ErrMalformedEntry with errors.Is.
type EntryError struct {
	Line int    // 1-based line number, 0 for inline palettes
	Text string // the offending entry
	Err  error
}

func (e *EntryError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v on line %d: %v", ErrMalformedEntry, e.Line, e.Err)
	}
	return fmt.Sprintf("%v %q: %v", ErrMalformedEntry, e.Text, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

func (e *EntryError) Is(target error) bool {
	return target == ErrMalformedEntry
}

// Parse reads a palette with one "#RRGGBB" color per line. Line order is
// preserved. Whitespace around an entry is ignored and blank lines are
// skipped. The first malformed line aborts parsing with an *EntryError.
func Parse(r io.Reader) (Palette, error) {
	var p Palette

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		c, err := ParseHex(text)
		if err != nil {
			return nil, &EntryError{Line: line, Text: text, Err: err}
		}
		p = append(p, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads a palette file, see Parse.
func Load(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseList parses an inline, space-separated palette. Each entry may be an
// RGB tuple like "25,200,150", a hex code like "#19c896", a gray level from
// 0 to 255, or an SVG color name like "rebeccapurple".
func ParseList(s string) (Palette, error) {
	fields := strings.Fields(s)
	p := make(Palette, 0, len(fields))

	for _, arg := range fields {
		c, err := parseListEntry(arg)
		if err != nil {
			return nil, &EntryError{Text: arg, Err: err}
		}
		p = append(p, c)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseListEntry(arg string) (Color, error) {
	// Try to parse as RGB numbers, then hex, then grayscale, then SVG colors

	if strings.Count(arg, ",") == 2 {
		var r, g, b uint8
		n, err := fmt.Sscanf(arg, "%d,%d,%d", &r, &g, &b)
		if err != nil || n != 3 {
			return Color{}, errors.New("not a valid RGB tuple, example: 25,200,150")
		}
		return Color{r, g, b}, nil
	}

	if strings.HasPrefix(arg, "#") {
		return ParseHex(arg)
	}

	if n, err := strconv.Atoi(arg); err == nil {
		if n > 255 || n < 0 {
			return Color{}, fmt.Errorf("single numbers like %d must be in the range 0-255", n)
		}
		return Color{uint8(n), uint8(n), uint8(n)}, nil
	}

	if named, ok := colornames.Map[strings.ToLower(arg)]; ok {
		return FromColor(named), nil
	}

	return Color{}, errors.New("not recognized as an RGB tuple, hex code, number 0-255, or SVG color name")
}
