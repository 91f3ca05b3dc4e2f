package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Decorator changes a canvas after its wrappers are drawn. Decorators are
// applied in order.
type Decorator func(c *Canvas)

// LegendOptions places a legend in normalised canvas coordinates. The
// legend is centred on (XPos, YPos), LabelWidth wide and LabelHeight tall
// per entry. TextSize is a fraction of the canvas height.
type LegendOptions struct {
	XPos, YPos  float64
	LabelWidth  float64
	LabelHeight float64
	TextSize    float64
	TextFont    int
}

// Legend draws the entries collected by Canvas.Draw, one row each, with
// the thumbnail in the left quarter.
func Legend(opts LegendOptions) Decorator {
	return func(c *Canvas) {
		entries := c.Entries()
		if len(entries) == 0 {
			return
		}
		c.Overlay(func(dc draw.Canvas) {
			h := dc.Max.Y - dc.Min.Y
			sty := textStyle(opts.TextFont, vg.Length(opts.TextSize)*h, 12)
			height := opts.LabelHeight * float64(len(entries))
			x0 := opts.XPos - opts.LabelWidth/2
			top := opts.YPos + height/2
			for i, e := range entries {
				y1 := top - float64(i)*opts.LabelHeight
				y0 := y1 - opts.LabelHeight
				lo := NDC(dc, x0, y0)
				hi := NDC(dc, x0+opts.LabelWidth/4, y1)
				thumb := draw.Canvas{Canvas: dc.Canvas, Rectangle: vg.Rectangle{Min: lo, Max: hi}}
				thumb = draw.Crop(thumb, 0, -vg.Points(2), vg.Points(1), -vg.Points(1))
				e.Thumb.Thumbnail(&thumb)

				at := NDC(dc, x0+opts.LabelWidth/4, (y0+y1)/2)
				at.X += vg.Points(4)
				dc.FillText(sty, at, e.Label)
			}
		})
	}
}

// TextBoxOptions describes a text in normalised canvas coordinates. Font
// and Align are ROOT codes; Size is a fraction of the canvas height.
type TextBoxOptions struct {
	X, Y  float64
	Text  string
	Font  int
	Size  float64
	Align int
}

// TextBox draws a fixed text on the canvas.
func TextBox(opts TextBoxOptions) Decorator {
	return func(c *Canvas) {
		c.Overlay(func(dc draw.Canvas) {
			h := dc.Max.Y - dc.Min.Y
			align := opts.Align
			if align == 0 {
				align = 11
			}
			sty := textStyle(opts.Font, vg.Length(opts.Size)*h, align)
			dc.FillText(sty, NDC(dc, opts.X, opts.Y), rootText(opts.Text))
		})
	}
}

// AxisOptions styles both axes. Sizes are fractions of the canvas height;
// title offsets scale the distance between axis and title.
type AxisOptions struct {
	LabelFont    int
	LabelSize    float64
	TitleFont    int
	TitleSize    float64
	XTitleOffset float64
	YTitleOffset float64
}

// AxisStyle applies opts to the axes of the plot.
func AxisStyle(opts AxisOptions) Decorator {
	return func(c *Canvas) {
		label := vg.Length(opts.LabelSize) * c.Height
		title := vg.Length(opts.TitleSize) * c.Height
		for _, a := range []struct {
			axis   *plot.Axis
			offset float64
		}{
			{&c.Plot.X, opts.XTitleOffset},
			{&c.Plot.Y, opts.YTitleOffset},
		} {
			a.axis.Tick.Label.Font = rootFont(opts.LabelFont, label)
			a.axis.Tick.Label.Color = color.Black
			a.axis.Label.TextStyle.Font = rootFont(opts.TitleFont, title)
			a.axis.Label.Padding = vg.Length(a.offset) * title / 2
		}
	}
}
