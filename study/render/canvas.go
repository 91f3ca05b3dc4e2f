// Package render draws wrapper groups onto canvases and saves them as
// images.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vlqtrig/trigstudy/study"
	"github.com/vlqtrig/trigstudy/study/hist"
)

// DPI converts the pixel sizes of the settings into canvas lengths.
const DPI = 96

// Pixels returns n pixels as a canvas length.
func Pixels(n int) vg.Length { return vg.Length(n) * vg.Inch / DPI }

// Canvas is one rendered group: a plot whose data frame sits inside the
// pad margins, plus overlays drawn in normalised canvas coordinates.
type Canvas struct {
	Name          string
	Width, Height vg.Length
	Margins       study.Margins
	Plot          *hplot.Plot
	Wrappers      []*study.Wrapper

	entries  []LegendEntry
	overlays []func(dc draw.Canvas)
}

// LegendEntry is a label with the thumbnail of the drawn object.
type LegendEntry struct {
	Label string
	Thumb plot.Thumbnailer
}

// NewCanvas creates an empty canvas sized from cs.
func NewCanvas(name string, cs study.CanvasSettings) *Canvas {
	return &Canvas{
		Name:    name,
		Width:   Pixels(cs.Width),
		Height:  Pixels(cs.Height),
		Margins: cs.Margins,
		Plot:    hplot.New(),
	}
}

// Entries returns the legend entries collected by Draw.
func (c *Canvas) Entries() []LegendEntry { return c.entries }

// Overlay registers fn to be drawn on the full canvas after the plot.
func (c *Canvas) Overlay(fn func(dc draw.Canvas)) { c.overlays = append(c.overlays, fn) }

// Draw adds the wrappers to the plot in order. The first wrapper fixes
// the axis titles and ranges; its ValYMax caps the y axis.
func (c *Canvas) Draw(ws []*study.Wrapper) error {
	if len(ws) == 0 {
		return fmt.Errorf("canvas %s: nothing to draw", c.Name)
	}
	c.Wrappers = ws
	ymax := 0.0
	for _, w := range ws {
		var thumb plot.Thumbnailer
		switch {
		case w.Graph != nil:
			thumb = c.drawGraph(w)
		case w.Hist != nil:
			thumb = c.drawHist(w)
		default:
			return fmt.Errorf("canvas %s: wrapper %s has no payload", c.Name, w.Name)
		}
		ymax = max(ymax, w.Max())
		if !w.NoLegend {
			if w.DrawOptionLegend == "L" {
				thumb = lineThumb{lineStyle(w)}
			}
			c.entries = append(c.entries, LegendEntry{Label: rootText(w.Legend), Thumb: thumb})
		}
	}

	first := ws[0]
	c.Plot.X.Label.Text = rootText(first.XTitle())
	c.Plot.Y.Label.Text = rootText(first.YTitle())
	c.Plot.X.Min, c.Plot.X.Max = first.XRange()
	c.Plot.Y.Min = 0
	if first.ValYMax > 0 {
		c.Plot.Y.Max = first.ValYMax
	} else {
		c.Plot.Y.Max = 1.1 * ymax
	}
	return nil
}

func (c *Canvas) drawHist(w *study.Wrapper) plot.Thumbnailer {
	h := hplot.NewH1D(hist.ToHbook(w.Hist))
	h.LineStyle = lineStyle(w)
	if w.Style.HasFill {
		h.FillColor = w.Style.FillColor
	}
	c.Plot.Add(h)
	return h
}

// drawGraph draws markers with error bars and no end caps.
func (c *Canvas) drawGraph(w *study.Wrapper) plot.Thumbnailer {
	s := hplot.NewS2D(w.Graph, hplot.WithXErrBars(true), hplot.WithYErrBars(true))
	ls := lineStyle(w)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(1)
	s.GlyphStyle.Color = color.Black
	if w.Style.HasMarker {
		s.GlyphStyle.Color = w.Style.MarkerColor
	}
	s.XErrs.LineStyle = ls
	s.XErrs.CapWidth = 0
	s.YErrs.LineStyle = ls
	s.YErrs.CapWidth = 0
	c.Plot.Add(s)
	return s
}

func lineStyle(w *study.Wrapper) draw.LineStyle {
	ls := draw.LineStyle{Color: color.Black, Width: vg.Points(1)}
	if w.Style.HasLine {
		ls.Color = w.Style.LineColor
	}
	if w.Style.LineWidth > 0 {
		ls.Width = vg.Points(w.Style.LineWidth)
	}
	return ls
}

type lineThumb struct{ draw.LineStyle }

func (t lineThumb) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(t.LineStyle, c.Min.X, y, c.Max.X, y)
}

// Render draws the canvas onto dc. The plot is placed so that its data
// frame starts at the left and bottom margins, with the axes inside the
// margins.
func (c *Canvas) Render(dc draw.Canvas) {
	w, h := dc.Max.X-dc.Min.X, dc.Max.Y-dc.Min.Y
	m := c.Margins
	frame := draw.Crop(dc,
		vg.Length(m.Left)*w, -vg.Length(m.Right)*w,
		vg.Length(m.Bottom)*h, -vg.Length(m.Top)*h)
	data := c.Plot.DataCanvas(frame)
	c.Plot.Draw(draw.Crop(frame,
		-(data.Min.X - frame.Min.X), 0,
		-(data.Min.Y - frame.Min.Y), 0))

	for _, fn := range c.overlays {
		fn(dc)
	}
}

// Save writes the canvas to path. The extension selects the format.
func (c *Canvas) Save(path string) (err error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	cw, err := draw.NewFormattedCanvas(c.Width, c.Height, format)
	if err != nil {
		return fmt.Errorf("canvas %s: %w", c.Name, err)
	}
	c.Render(draw.New(cw))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("canvas %s: %w", c.Name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("canvas %s: %w", c.Name, cerr)
		}
	}()
	if _, err := cw.WriteTo(f); err != nil {
		return fmt.Errorf("canvas %s: writing %s: %w", c.Name, path, err)
	}
	return nil
}

// NDC converts normalised canvas coordinates into a point on dc.
func NDC(dc draw.Canvas, x, y float64) vg.Point {
	return vg.Point{
		X: dc.Min.X + vg.Length(x)*(dc.Max.X-dc.Min.X),
		Y: dc.Min.Y + vg.Length(y)*(dc.Max.Y-dc.Min.Y),
	}
}
