// Package draw renders scenes to ANSI terminals.
package draw

import "image/color"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is an ANSI SGR foreground code; ColorNone marks an unset pixel.
type Color uint8

const (
	ColorNone    Color = 0
	ColorRed     Color = 31
	ColorGreen   Color = 32
	ColorYellow  Color = 33
	ColorBlue    Color = 34
	ColorMagenta Color = 35
	ColorCyan    Color = 36
	ColorWhite   Color = 37
)

var palette = []struct {
	code    Color
	r, g, b int
}{
	{ColorRed, 255, 0, 0},
	{ColorGreen, 0, 255, 0},
	{ColorYellow, 255, 255, 0},
	{ColorBlue, 0, 0, 255},
	{ColorMagenta, 255, 0, 255},
	{ColorCyan, 0, 255, 255},
	{ColorWhite, 255, 255, 255},
}

// ColorOf maps an RGBA tint to the nearest basic ANSI colour.
// Fully transparent or black tints map to white.
func ColorOf(c color.RGBA) Color {
	if c.A == 0 || (c.R == 0 && c.G == 0 && c.B == 0) {
		return ColorWhite
	}
	best, bestDist := ColorWhite, -1
	for _, p := range palette {
		dr, dg, db := int(c.R)-p.r, int(c.G)-p.g, int(c.B)-p.b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = p.code, d
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
