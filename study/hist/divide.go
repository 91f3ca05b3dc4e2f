package hist

import (
	"fmt"
	"math"
)

// Divide returns num/den bin by bin with uncorrelated error propagation.
// Bins with a zero denominator get zero content and error.
func Divide(num, den *H1) (*H1, error) {
	if !num.SameBinning(den) {
		return nil, fmt.Errorf("dividing %s by %s: %w", num.Name, den.Name, ErrBinningMismatch)
	}
	out := num.Clone()
	out.flows = [2]float64{}
	out.flows2 = [2]float64{}
	for i := range out.sumw {
		p, d := num.sumw[i], den.sumw[i]
		if d == 0 {
			out.sumw[i], out.sumw2[i] = 0, 0
			continue
		}
		e1, e2 := num.sumw2[i], den.sumw2[i]
		out.sumw[i] = p / d
		out.sumw2[i] = (e1*d*d + e2*p*p) / math.Pow(d, 4)
	}
	return out, nil
}
