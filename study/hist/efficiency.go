package hist

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// BayesOptions configures BayesEfficiency.
type BayesOptions struct {
	// CL is the confidence level of the interval, in (0, 1).
	CL float64
	// Alpha and Beta are the parameters of the Beta prior.
	Alpha, Beta float64
	// Mode uses the posterior mode as point estimate instead of the mean.
	Mode bool
	// Central uses the central interval instead of the shortest one.
	Central bool
}

// DefaultBayesOptions returns a uniform prior at one-sigma confidence.
func DefaultBayesOptions() BayesOptions {
	return BayesOptions{CL: 0.683, Alpha: 1, Beta: 1}
}

// ParseBayesOptions parses an option string such as "cl=0.683 b(1,1) mode".
// Recognised tokens: cl=<float>, b(<alpha>,<beta>), mode, central, shortest.
// Missing tokens keep their DefaultBayesOptions value.
func ParseBayesOptions(s string) (BayesOptions, error) {
	opts := DefaultBayesOptions()
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		switch {
		case strings.HasPrefix(tok, "cl="):
			cl, err := strconv.ParseFloat(strings.TrimPrefix(tok, "cl="), 64)
			if err != nil || cl <= 0 || cl >= 1 {
				return opts, fmt.Errorf("invalid confidence level %q", tok)
			}
			opts.CL = cl
		case strings.HasPrefix(tok, "b("):
			var a, b float64
			if _, err := fmt.Sscanf(tok, "b(%g,%g)", &a, &b); err != nil || a <= 0 || b <= 0 {
				return opts, fmt.Errorf("invalid beta prior %q", tok)
			}
			opts.Alpha, opts.Beta = a, b
		case tok == "mode":
			opts.Mode = true
		case tok == "central":
			opts.Central = true
		case tok == "shortest":
			opts.Central = false
		default:
			return opts, fmt.Errorf("unknown efficiency option %q", tok)
		}
	}
	return opts, nil
}

// BayesEfficiency builds an efficiency graph from passing and total counts.
//
// For each bin with a positive total, the posterior Beta(k+alpha, n-k+beta)
// gives the point estimate and the confidence interval. Passing counts are
// clamped to [0, total] so every point lies in [0, 1]. Bins with an empty
// total produce no point.
func BayesEfficiency(pass, total *H1, opts BayesOptions) (*Graph, error) {
	if !pass.SameBinning(total) {
		return nil, fmt.Errorf("efficiency of %s over %s: %w", pass.Name, total.Name, ErrBinningMismatch)
	}
	g := &Graph{
		Name:   pass.Name,
		Title:  pass.Title,
		XTitle: pass.XTitle,
		YTitle: pass.YTitle,
	}
	for i := range total.sumw {
		n := total.sumw[i]
		if n <= 0 {
			continue
		}
		k := math.Min(math.Max(pass.sumw[i], 0), n)
		post := distuv.Beta{Alpha: k + opts.Alpha, Beta: n - k + opts.Beta}

		var eff float64
		if opts.Mode {
			eff = betaMode(post.Alpha, post.Beta)
		} else {
			eff = post.Mean()
		}

		var lo, hi float64
		if opts.Central {
			lo = post.Quantile((1 - opts.CL) / 2)
			hi = post.Quantile((1 + opts.CL) / 2)
		} else {
			lo, hi = shortestInterval(post, opts.CL)
		}

		half := 0.5 * total.BinWidth(i)
		g.Points = append(g.Points, Point{
			X:     total.BinCenter(i),
			Y:     eff,
			XLow:  half,
			XHigh: half,
			YLow:  math.Max(eff-lo, 0),
			YHigh: math.Max(hi-eff, 0),
		})
	}
	return g, nil
}

func betaMode(a, b float64) float64 {
	switch {
	case a > 1 && b > 1:
		return (a - 1) / (a + b - 2)
	case a <= 1 && b > 1:
		return 0
	case a > 1 && b <= 1:
		return 1
	default:
		return 0.5
	}
}

// shortestInterval returns the narrowest interval holding cl of the
// posterior probability. Monotonic densities are pinned to 0 or 1.
func shortestInterval(d distuv.Beta, cl float64) (float64, float64) {
	if d.Alpha <= 1 {
		return 0, d.Quantile(cl)
	}
	if d.Beta <= 1 {
		return d.Quantile(1 - cl), 1
	}
	width := func(p float64) float64 {
		return d.Quantile(math.Min(p+cl, 1)) - d.Quantile(p)
	}

	// golden-section search over the lower tail probability
	const invPhi = 0.6180339887498949
	a, b := 0.0, 1-cl
	c, e := b-invPhi*(b-a), a+invPhi*(b-a)
	for i := 0; i < 200 && b-a > 1e-9; i++ {
		if width(c) < width(e) {
			b = e
		} else {
			a = c
		}
		c, e = b-invPhi*(b-a), a+invPhi*(b-a)
	}
	p := 0.5 * (a + b)
	return d.Quantile(p), d.Quantile(math.Min(p+cl, 1))
}
