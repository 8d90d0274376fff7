package sankey

import (
	"fmt"
	"strconv"
)

// colorPalette is a Tableau-style cycle assigned to top-level categories.
var colorPalette = []string{
	"4E79A7", // blue
	"F28E2B", // orange
	"E15759", // red
	"76B7B2", // teal
	"59A14F", // green
	"EDC948", // yellow
	"B07AA1", // purple
	"FF9DA7", // pink
	"9C755F", // brown
	"BAB0AC", // gray
	"8CD17D", // lime green
	"FF9F80", // salmon
	"A0CBE8", // light blue
	"C9C9C9", // light gray
	"D37295", // rose
}

// Palette hands out colors round-robin. The zero value is ready to use.
type Palette struct {
	index int
}

// Pick returns the next palette color as a bare hex string.
func (p *Palette) Pick() string {
	color := colorPalette[p.index]
	p.index = (p.index + 1) % len(colorPalette)
	return color
}

// RGBA converts a bare hex color to a CSS rgba() string with the given
// alpha. Unparseable input falls back to gray.
func RGBA(hex string, alpha float64) string {
	if len(hex) != 6 {
		return fmt.Sprintf("rgba(128,128,128,%g)", alpha)
	}
	var rgb [3]uint64
	for i := range rgb {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Sprintf("rgba(128,128,128,%g)", alpha)
		}
		rgb[i] = v
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", rgb[0], rgb[1], rgb[2], alpha)
}
