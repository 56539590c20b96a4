package color

import (
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ============================================================
// AutoCAD Color Index
// ============================================================

// Color is an AutoCAD Color Index (ACI) value. Negative values turn a layer off.
type Color int

const (
	ByBlock   Color = 0
	Red       Color = 1
	Yellow    Color = 2
	Green     Color = 3
	Cyan      Color = 4
	Blue      Color = 5
	Magenta   Color = 6
	Black     Color = 7 // white on dark backgrounds
	Gray      Color = 8
	LightGray Color = 9
	ByLayer   Color = 256
)

// Default is the color given to layers created without an explicit color.
const Default = Gray

// Hidden returns the code of a layer that is switched off.
func Hidden(c Color) Color {
	if c > 0 {
		return -c
	}
	return c
}

// Visible reports whether a layer with this color is switched on.
func (c Color) Visible() bool {
	return c >= 0
}

// ============================================================
// RGB → ACI
// ============================================================

var (
	paletteOnce sync.Once
	palette     [256]colorful.Color
)

// shade values of the 24 hue columns (indices 10..249), two entries per shade
var shades = [5]float64{1.0, 0.8, 0.6, 0.5, 0.3}

// grays 250..255
var grays = [6]float64{0.2, 0.314, 0.412, 0.51, 0.745, 1.0}

func buildPalette() {
	palette[1] = colorful.Color{R: 1, G: 0, B: 0}
	palette[2] = colorful.Color{R: 1, G: 1, B: 0}
	palette[3] = colorful.Color{R: 0, G: 1, B: 0}
	palette[4] = colorful.Color{R: 0, G: 1, B: 1}
	palette[5] = colorful.Color{R: 0, G: 0, B: 1}
	palette[6] = colorful.Color{R: 1, G: 0, B: 1}
	palette[7] = colorful.Color{R: 1, G: 1, B: 1}
	palette[8] = colorful.Color{R: 0.502, G: 0.502, B: 0.502}
	palette[9] = colorful.Color{R: 0.753, G: 0.753, B: 0.753}

	for i := 10; i < 250; i++ {
		hue := float64((i-10)/10) * 15
		step := i % 10
		sat := 1.0
		if step%2 == 1 {
			sat = 0.5
		}
		palette[i] = colorful.Hsv(hue, sat, shades[step/2])
	}

	for i, g := range grays {
		palette[250+i] = colorful.Color{R: g, G: g, B: g}
	}
}

// RGB returns the ACI index closest to the given 8-bit color. Distance is
// measured in CIE L*a*b*; ties go to the lower index.
func RGB(r, g, b uint8) Color {
	paletteOnce.Do(buildPalette)

	target := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	best := Color(1)
	bestDist := target.DistanceLab(palette[1])
	for i := 2; i < len(palette); i++ {
		if d := target.DistanceLab(palette[i]); d < bestDist {
			best = Color(i)
			bestDist = d
		}
	}
	return best
}

// Hex parses "#rrggbb" (or "#rgb") and returns the closest ACI index.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(expandShortHex(s))
	if err != nil {
		return Default, err
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

func expandShortHex(s string) string {
	if len(s) != 4 || s[0] != '#' {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}
