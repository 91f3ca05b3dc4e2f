package study

import (
	"path"
	"strings"

	"github.com/vlqtrig/trigstudy/study/hist"
)

// Kind distinguishes the payload of a Wrapper.
type Kind int

const (
	KindHist Kind = iota
	KindGraph
)

// String returns the ROOT class name the payload is stored as.
func (k Kind) String() string {
	if k == KindGraph {
		return "TGraphAsymmErrors"
	}
	return "TH1D"
}

// Style holds the drawing attributes of a wrapper. A zero colour index is
// white in ROOT, so unset colours are tracked with the Has* flags.
type Style struct {
	MarkerColor Color
	LineColor   Color
	FillColor   Color
	HasMarker   bool
	HasLine     bool
	HasFill     bool
	LineWidth   float64
	MarkerStyle int
}

// Wrapper is a named histogram or graph plus its display attributes.
// Stages mutate wrappers in place; only rebinning, normalisation and
// efficiency derivation produce new payloads.
type Wrapper struct {
	Name string
	// InFilePath is the slash separated path of the object inside its
	// ROOT file, e.g. "MuTrigStudy/1leptonPtDenom".
	InFilePath string
	// FilePath is the ROOT file the object was loaded from.
	FilePath string

	Legend           string
	DrawOption       string
	DrawOptionLegend string
	// NoLegend suppresses the legend entry.
	NoLegend bool
	// ValYMax caps the y range, 0 means unset.
	ValYMax float64
	Style   Style

	Hist  *hist.H1
	Graph *hist.Graph
}

// NewHistWrapper wraps h. The wrapper name is taken from h.Name.
func NewHistWrapper(inFilePath, filePath string, h *hist.H1) *Wrapper {
	return &Wrapper{
		Name:       h.Name,
		InFilePath: inFilePath,
		FilePath:   filePath,
		Hist:       h,
	}
}

// NewGraphWrapper wraps g. The wrapper name is taken from g.Name.
func NewGraphWrapper(inFilePath, filePath string, g *hist.Graph) *Wrapper {
	return &Wrapper{
		Name:       g.Name,
		InFilePath: inFilePath,
		FilePath:   filePath,
		Graph:      g,
	}
}

// Kind reports whether the wrapper carries a graph or a histogram.
func (w *Wrapper) Kind() Kind {
	if w.Graph != nil {
		return KindGraph
	}
	return KindHist
}

// Type returns the ROOT class name of the payload.
func (w *Wrapper) Type() string { return w.Kind().String() }

// Dir returns the directory part of InFilePath, "" at top level.
func (w *Wrapper) Dir() string {
	d := path.Dir(w.InFilePath)
	if d == "." {
		return ""
	}
	return d
}

// TopDir returns the first segment of InFilePath.
func (w *Wrapper) TopDir() string {
	top, _, _ := strings.Cut(w.InFilePath, "/")
	return top
}

// XTitle returns the x-axis title of the payload.
func (w *Wrapper) XTitle() string {
	if w.Graph != nil {
		return w.Graph.XTitle
	}
	if w.Hist != nil {
		return w.Hist.XTitle
	}
	return ""
}

// YTitle returns the y-axis title of the payload.
func (w *Wrapper) YTitle() string {
	if w.Graph != nil {
		return w.Graph.YTitle
	}
	if w.Hist != nil {
		return w.Hist.YTitle
	}
	return ""
}

// SetYTitle sets the y-axis title of the payload.
func (w *Wrapper) SetYTitle(t string) {
	if w.Graph != nil {
		w.Graph.YTitle = t
	}
	if w.Hist != nil {
		w.Hist.YTitle = t
	}
}

// Max returns the largest value the payload reaches including errors.
func (w *Wrapper) Max() float64 {
	if w.Graph != nil {
		return w.Graph.Max()
	}
	if w.Hist != nil {
		return w.Hist.Max()
	}
	return 0
}

// XRange returns the x extent of the payload.
func (w *Wrapper) XRange() (float64, float64) {
	if w.Hist != nil {
		return w.Hist.BinLow(0), w.Hist.BinHigh(w.Hist.Len() - 1)
	}
	if w.Graph == nil || w.Graph.Len() == 0 {
		return 0, 1
	}
	first := w.Graph.Points[0]
	lo, hi := first.X-first.XLow, first.X+first.XHigh
	for _, p := range w.Graph.Points {
		lo = min(lo, p.X-p.XLow)
		hi = max(hi, p.X+p.XHigh)
	}
	return lo, hi
}
