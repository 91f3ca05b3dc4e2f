package hist

import (
	"go-hep.org/x/hep/hbook"
)

// FromHbook converts an hbook histogram. Flows are not carried over.
func FromHbook(h *hbook.H1D) (*H1, error) {
	bins := h.Binning.Bins
	if len(bins) == 0 {
		return nil, ErrEmptyEdges
	}
	edges := make([]float64, len(bins)+1)
	for i := range bins {
		edges[i] = bins[i].XMin()
	}
	edges[len(bins)] = bins[len(bins)-1].XMax()

	out, err := NewH1(edges)
	if err != nil {
		return nil, err
	}
	for i := range bins {
		out.sumw[i] = bins[i].SumW()
		out.sumw2[i] = bins[i].SumW2()
	}
	out.entries = h.Entries()
	out.Name = h.Name()
	if title, ok := h.Annotation()["title"].(string); ok {
		out.Title = title
	}
	return out, nil
}

// ToHbook converts h into an hbook histogram with the same edges, contents
// and squared weights.
func ToHbook(h *H1) *hbook.H1D {
	hh := hbook.NewH1DFromEdges(h.edges)
	for i, w := range h.sumw {
		if w != 0 {
			hh.Fill(h.BinCenter(i), w)
		}
	}
	for i := range hh.Binning.Bins {
		hh.Binning.Bins[i].Dist.Dist.SumW2 = h.sumw2[i]
	}
	hh.Annotation()["name"] = h.Name
	hh.Annotation()["title"] = h.Title
	return hh
}

// ToS2D converts g into an hbook scatter with asymmetric errors.
func ToS2D(g *Graph) *hbook.S2D {
	pts := make([]hbook.Point2D, len(g.Points))
	for i, p := range g.Points {
		pts[i] = hbook.Point2D{
			X:    p.X,
			Y:    p.Y,
			ErrX: hbook.Range{Min: p.XLow, Max: p.XHigh},
			ErrY: hbook.Range{Min: p.YLow, Max: p.YHigh},
		}
	}
	s := hbook.NewS2D(pts...)
	s.Annotation()["name"] = g.Name
	s.Annotation()["title"] = g.Title
	return s
}

// FromS2D converts an hbook scatter into a graph.
func FromS2D(s *hbook.S2D) *Graph {
	g := &Graph{Points: make([]Point, s.Len())}
	for i := range g.Points {
		p := s.Point(i)
		g.Points[i] = Point{
			X:     p.X,
			Y:     p.Y,
			XLow:  p.ErrX.Min,
			XHigh: p.ErrX.Max,
			YLow:  p.ErrY.Min,
			YHigh: p.ErrY.Max,
		}
	}
	if name, ok := s.Annotation()["name"].(string); ok {
		g.Name = name
	}
	if title, ok := s.Annotation()["title"].(string); ok {
		g.Title = title
	}
	return g
}
