package model

import colorful "github.com/lucasb-eyer/go-colorful"

// Color is an sRGB fill color.
type Color = colorful.Color

// Black is the default text color
var Black = colorful.Color{R: 0, G: 0, B: 0}

// ColorFromSRGB decodes a packed 0xRRGGBB integer
func ColorFromSRGB(v uint32) Color {
	return colorful.Color{
		R: float64((v>>16)&0xFF) / 255.0,
		G: float64((v>>8)&0xFF) / 255.0,
		B: float64(v&0xFF) / 255.0,
	}
}

// ColorFromComponents builds a color from 0..1 gray, RGB or CMYK components.
// Unknown component counts yield black.
func ColorFromComponents(c []float64) Color {
	switch len(c) {
	case 1:
		return colorful.Color{R: c[0], G: c[0], B: c[0]}.Clamped()
	case 3:
		return colorful.Color{R: c[0], G: c[1], B: c[2]}.Clamped()
	case 4:
		k := 1 - c[3]
		return colorful.Color{
			R: (1 - c[0]) * k,
			G: (1 - c[1]) * k,
			B: (1 - c[2]) * k,
		}.Clamped()
	default:
		return Black
	}
}
