package study

import "image/color"

// Color is a ROOT colour index. It implements color.Color so it can be
// handed to the plotting backend directly.
type Color int

// Base colours of the ROOT colour wheel. Offsets such as Blue+3 select
// darker (positive) or lighter (negative) shades.
const (
	White   Color = 0
	Black   Color = 1
	Yellow  Color = 400
	Green   Color = 416
	Cyan    Color = 432
	Blue    Color = 600
	Magenta Color = 616
	Red     Color = 632
	Orange  Color = 800
	Gray    Color = 920
)

// basic holds the fixed palette entries 0..19 as fractions.
var basic = [20][3]float64{
	{1, 1, 1}, {0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	{1, 1, 0}, {1, 0, 1}, {0, 1, 1}, {0.35, 0.83, 0.33}, {0.35, 0.33, 0.85},
	{0.999, 0.999, 0.999}, {0.754, 0.715, 0.676}, {0.3, 0.3, 0.3}, {0.4, 0.4, 0.4}, {0.5, 0.5, 0.5},
	{0.6, 0.6, 0.6}, {0.7, 0.7, 0.7}, {0.8, 0.8, 0.8}, {0.9, 0.9, 0.9}, {0.95, 0.95, 0.95},
}

var wheel = map[Color][3]float64{
	Yellow:  {1, 1, 0},
	Green:   {0, 1, 0},
	Cyan:    {0, 1, 1},
	Blue:    {0, 0, 1},
	Magenta: {1, 0, 1},
	Red:     {1, 0, 0},
	Orange:  {1, 0.8, 0},
	Gray:    {0.8, 0.8, 0.8},
}

// RGB returns the colour as fractions in [0, 1]. Unknown indices are black.
func (c Color) RGB() (float64, float64, float64) {
	if c >= 0 && int(c) < len(basic) {
		v := basic[c]
		return v[0], v[1], v[2]
	}
	for base, v := range wheel {
		off := int(c - base)
		if off < -10 || off > 4 {
			continue
		}
		switch {
		case off > 0:
			f := 1 - 0.2*float64(off)
			return v[0] * f, v[1] * f, v[2] * f
		case off < 0:
			f := -0.1 * float64(off)
			return v[0] + (1-v[0])*f, v[1] + (1-v[1])*f, v[2] + (1-v[2])*f
		default:
			return v[0], v[1], v[2]
		}
	}
	return 0, 0, 0
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	fr, fg, fb := c.RGB()
	return color.NRGBA{
		R: uint8(fr*255 + 0.5),
		G: uint8(fg*255 + 0.5),
		B: uint8(fb*255 + 0.5),
		A: 255,
	}.RGBA()
}
