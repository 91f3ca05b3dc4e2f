package hist

import "fmt"

// Rebin returns a new histogram with the given edges. The content of every
// source bin moves to the target bin containing the source bin centre;
// centres outside the new range go to the underflow/overflow, and the source
// flows stay in the flows.
//
// With normByWidth, each target bin content and error is divided by the
// ratio of its width to the width of the first source bin, so that a flat
// distribution stays flat.
func Rebin(h *H1, edges []float64, normByWidth bool) (*H1, error) {
	out, err := NewH1(edges)
	if err != nil {
		return nil, fmt.Errorf("rebinning %s: %w", h.Name, err)
	}
	out.Name, out.Title, out.XTitle, out.YTitle = h.Name, h.Title, h.XTitle, h.YTitle
	out.entries = h.entries

	for i := range h.sumw {
		out.add(out.FindBin(h.BinCenter(i)), h.sumw[i], h.sumw2[i])
	}
	out.flows[0] += h.flows[0]
	out.flows2[0] += h.flows2[0]
	out.flows[1] += h.flows[1]
	out.flows2[1] += h.flows2[1]

	if normByWidth {
		origWidth := h.BinWidth(0)
		for i := range out.sumw {
			factor := out.BinWidth(i) / origWidth
			out.sumw[i] /= factor
			out.sumw2[i] /= factor * factor
		}
	}
	return out, nil
}

// Normalize scales h in place so that its Integral is 1.
// A histogram with zero integral is left unchanged.
func Normalize(h *H1) {
	integral := h.Integral()
	if integral == 0 {
		return
	}
	h.Scale(1 / integral)
}
