package render

import (
	"image/color"
	"strings"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var latexReplacer = strings.NewReplacer("_{", "_", "^{", "^", "}", "", "#", "")

// rootText flattens ROOT TLatex markup such as "p_{T}" into plain text.
func rootText(s string) string { return latexReplacer.Replace(s) }

// rootFont maps a ROOT font code (family*10 + precision) onto the
// Liberation fonts bundled with the plotting library.
func rootFont(code int, size vg.Length) font.Font {
	f := font.Font{Typeface: "Liberation", Variant: "Sans", Size: size}
	switch code / 10 {
	case 1:
		f.Variant, f.Style = "Serif", xfont.StyleItalic
	case 2:
		f.Variant, f.Weight = "Serif", xfont.WeightBold
	case 3:
		f.Variant, f.Style, f.Weight = "Serif", xfont.StyleItalic, xfont.WeightBold
	case 5:
		f.Style = xfont.StyleItalic
	case 6:
		f.Weight = xfont.WeightBold
	case 7:
		f.Style, f.Weight = xfont.StyleItalic, xfont.WeightBold
	case 8:
		f.Variant = "Mono"
	case 13:
		f.Variant = "Serif"
	}
	return f
}

// textStyle returns a style for a ROOT font code and text align code
// (horizontal*10 + vertical).
func textStyle(code int, size vg.Length, align int) draw.TextStyle {
	sty := draw.TextStyle{
		Color:   color.Black,
		Font:    rootFont(code, size),
		Handler: plot.DefaultTextHandler,
	}
	switch align / 10 {
	case 2:
		sty.XAlign = text.XCenter
	case 3:
		sty.XAlign = text.XRight
	default:
		sty.XAlign = text.XLeft
	}
	switch align % 10 {
	case 2:
		sty.YAlign = text.YCenter
	case 3:
		sty.YAlign = text.YTop
	default:
		sty.YAlign = text.YBottom
	}
	return sty
}
