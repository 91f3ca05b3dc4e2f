// Package hist provides the one-dimensional histogram and graph types the
// plot pipeline operates on, plus the rebinning, normalisation and
// efficiency operations applied to them.
// It does not import the rest of study/.
package hist

import (
	"errors"
	"math"
	"slices"
	"sort"
)

var (
	// ErrEmptyEdges is returned when fewer than two bin edges are given.
	ErrEmptyEdges = errors.New("hist: need at least two bin edges")
	// ErrUnsortedEdges is returned when bin edges are not strictly increasing.
	ErrUnsortedEdges = errors.New("hist: bin edges must be strictly increasing")
	// ErrBinningMismatch is returned when two histograms do not share bin edges.
	ErrBinningMismatch = errors.New("hist: binning mismatch")
)

// Underflow and Overflow are the indices FindBin returns for values
// outside the axis range.
const (
	Underflow = -1
	Overflow  = -2
)

// H1 is a one-dimensional histogram with variable-width bins.
//
// Bin i covers [edges[i], edges[i+1]). Values below the first edge go to
// the underflow, values at or above the last edge go to the overflow.
// Integral and Scale operate on the in-range bins (and the flows for Scale).
type H1 struct {
	Name   string
	Title  string
	XTitle string
	YTitle string

	edges   []float64
	sumw    []float64
	sumw2   []float64
	entries int64

	// flows holds [underflow, overflow] sum of weights and squared weights.
	flows  [2]float64
	flows2 [2]float64
}

// NewH1 creates an empty histogram with the given bin edges.
// The edges slice is copied.
func NewH1(edges []float64) (*H1, error) {
	if err := checkEdges(edges); err != nil {
		return nil, err
	}
	n := len(edges) - 1
	return &H1{
		edges: slices.Clone(edges),
		sumw:  make([]float64, n),
		sumw2: make([]float64, n),
	}, nil
}

// NewH1Uniform creates an empty histogram with n equal-width bins in [lo, hi).
// Panics if n < 1 or hi <= lo.
func NewH1Uniform(n int, lo, hi float64) *H1 {
	if n < 1 || hi <= lo {
		panic("hist: invalid uniform binning")
	}
	edges := make([]float64, n+1)
	width := (hi - lo) / float64(n)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[n] = hi
	h, err := NewH1(edges)
	if err != nil {
		panic(err)
	}
	return h
}

func checkEdges(edges []float64) error {
	if len(edges) < 2 {
		return ErrEmptyEdges
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return ErrUnsortedEdges
		}
	}
	return nil
}

// Len returns the number of in-range bins.
func (h *H1) Len() int { return len(h.sumw) }

// Edges returns a copy of the bin edges (Len()+1 values).
func (h *H1) Edges() []float64 { return slices.Clone(h.edges) }

// Entries returns the number of Fill calls (or the carried-over count after Rebin).
func (h *H1) Entries() int64 { return h.entries }

// FindBin returns the bin index containing x, or Underflow/Overflow.
func (h *H1) FindBin(x float64) int {
	n := len(h.edges)
	if x < h.edges[0] {
		return Underflow
	}
	if x >= h.edges[n-1] {
		return Overflow
	}
	return sort.Search(n, func(i int) bool { return h.edges[i] > x }) - 1
}

// Fill adds weight w at x.
func (h *H1) Fill(x, w float64) {
	h.entries++
	h.add(h.FindBin(x), w, w*w)
}

func (h *H1) add(i int, w, w2 float64) {
	switch i {
	case Underflow:
		h.flows[0] += w
		h.flows2[0] += w2
	case Overflow:
		h.flows[1] += w
		h.flows2[1] += w2
	default:
		h.sumw[i] += w
		h.sumw2[i] += w2
	}
}

// SetBin overwrites the sum of weights and squared weights of bin i.
func (h *H1) SetBin(i int, sumw, sumw2 float64) {
	h.sumw[i] = sumw
	h.sumw2[i] = sumw2
}

// SetEntries overwrites the entry count.
func (h *H1) SetEntries(n int64) { h.entries = n }

// Content returns the sum of weights in bin i.
func (h *H1) Content(i int) float64 { return h.sumw[i] }

// SumW2 returns the sum of squared weights in bin i.
func (h *H1) SumW2(i int) float64 { return h.sumw2[i] }

// Error returns the statistical error of bin i.
func (h *H1) Error(i int) float64 { return math.Sqrt(h.sumw2[i]) }

// Contents returns a copy of the in-range bin contents.
func (h *H1) Contents() []float64 { return slices.Clone(h.sumw) }

// UnderflowW returns the underflow sum of weights.
func (h *H1) UnderflowW() float64 { return h.flows[0] }

// OverflowW returns the overflow sum of weights.
func (h *H1) OverflowW() float64 { return h.flows[1] }

// BinLow, BinHigh, BinCenter and BinWidth describe bin i.
func (h *H1) BinLow(i int) float64    { return h.edges[i] }
func (h *H1) BinHigh(i int) float64   { return h.edges[i+1] }
func (h *H1) BinCenter(i int) float64 { return 0.5 * (h.edges[i] + h.edges[i+1]) }
func (h *H1) BinWidth(i int) float64  { return h.edges[i+1] - h.edges[i] }

// Integral returns the sum of in-range bin contents.
func (h *H1) Integral() float64 {
	sum := 0.0
	for _, w := range h.sumw {
		sum += w
	}
	return sum
}

// Max returns the largest bin content plus its error, 0 for an empty histogram.
func (h *H1) Max() float64 {
	max := 0.0
	for i := range h.sumw {
		if v := h.sumw[i] + h.Error(i); v > max {
			max = v
		}
	}
	return max
}

// Scale multiplies all contents, including the flows, by f.
func (h *H1) Scale(f float64) {
	f2 := f * f
	for i := range h.sumw {
		h.sumw[i] *= f
		h.sumw2[i] *= f2
	}
	for i := range h.flows {
		h.flows[i] *= f
		h.flows2[i] *= f2
	}
}

// Clone returns a deep copy.
func (h *H1) Clone() *H1 {
	c := *h
	c.edges = slices.Clone(h.edges)
	c.sumw = slices.Clone(h.sumw)
	c.sumw2 = slices.Clone(h.sumw2)
	return &c
}

// SameBinning reports whether h and o have identical bin edges.
func (h *H1) SameBinning(o *H1) bool {
	return slices.Equal(h.edges, o.edges)
}
