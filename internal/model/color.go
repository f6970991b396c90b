package model

import (
	"fmt"
	"regexp"
	"strconv"
)

// Color is an RGB triple used for the pass background and the tinted
// strip tiers.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// DefaultColor is the sky blue used whenever a request carries no
// background color or one that does not parse.
var DefaultColor = Color{R: 135, G: 206, B: 235}

var rgbPattern = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)

// ParseColor resolves an "rgb(r, g, b)" string to a Color. Anything
// that does not match the pattern, including components above 255,
// resolves to DefaultColor rather than an error.
func ParseColor(s string) Color {
	m := rgbPattern.FindStringSubmatch(s)
	if m == nil {
		return DefaultColor
	}

	var c [3]uint8
	for i, part := range m[1:] {
		n, err := strconv.Atoi(part)
		if err != nil || n > 255 {
			return DefaultColor
		}
		c[i] = uint8(n)
	}
	return Color{R: c[0], G: c[1], B: c[2]}
}

// String renders the color in the pass.json "rgb(r, g, b)" form.
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
