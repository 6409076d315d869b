// Package draw provides terminal output primitives: cursor control, a chunked
// frame writer, shade ramps and bars.
package draw

import (
	"math"
	"strings"
)

// Shade characters from lightest to darkest.
// Use these to render different intensities in the terminal.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	return Shades[idx]
}

// Block characters for drawing.
const (
	BlockFull  = '█'
	BlockLight = '░'
)

// Bar renders a horizontal progress bar of width cells filled to ratio.
// The boundary cell uses a partial shade so the bar shrinks smoothly.
func Bar(width int, ratio float64) string {
	if width <= 0 {
		return ""
	}
	ratio = math.Max(0, math.Min(1, ratio))

	exact := ratio * float64(width)
	full := int(exact)
	var b strings.Builder
	b.Grow(width * 3)
	for i := 0; i < width; i++ {
		switch {
		case i < full:
			b.WriteRune(BlockFull)
		case i == full && exact > float64(full):
			b.WriteRune(ShadeLevel(exact - float64(full)))
		default:
			b.WriteRune(BlockLight)
		}
	}
	return b.String()
}

// CenterCol returns the 1-based column at which text of the given width is
// centred within a span of total columns.
func CenterCol(total, width int) int {
	return max((total-width)/2+1, 1)
}
