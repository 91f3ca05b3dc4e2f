package study

import (
	"fmt"
	"iter"
	"path"
	"strings"

	"github.com/vlqtrig/trigstudy/study/hist"
	"github.com/vlqtrig/trigstudy/study/trace"
)

// EffSuffix ends the name of every derived efficiency wrapper.
const EffSuffix = "Eff"

// EffFunc combines a passing and a denominator wrapper into an efficiency
// wrapper called name.
type EffFunc func(pass, denom *Wrapper, name string) (*Wrapper, error)

// BayesEff returns an EffFunc producing a graph with Bayesian confidence
// intervals.
func BayesEff(opts hist.BayesOptions) EffFunc {
	return func(pass, denom *Wrapper, name string) (*Wrapper, error) {
		g, err := hist.BayesEfficiency(pass.Hist, denom.Hist, opts)
		if err != nil {
			return nil, err
		}
		g.Name = name
		return &Wrapper{Name: name, Graph: g}, nil
	}
}

// DivEff divides the passing by the denominator histogram bin by bin.
func DivEff(pass, denom *Wrapper, name string) (*Wrapper, error) {
	h, err := hist.Divide(pass.Hist, denom.Hist)
	if err != nil {
		return nil, err
	}
	h.Name = name
	return &Wrapper{Name: name, Hist: h}, nil
}

// EffOptions configures MakeEffGraphs.
type EffOptions struct {
	PassingSuffix string
	DenomSuffix   string
	// YieldEverything re-emits every input. Otherwise paired inputs are
	// consumed and unpaired ones are emitted after the input is exhausted.
	YieldEverything bool
	Func            EffFunc
}

type effRole int

const (
	rolePassing effRole = iota
	roleDenom
)

// split classifies w by its name suffix. The stem is the name without the
// suffix and one trailing underscore.
func (o EffOptions) split(w *Wrapper) (effRole, string, bool) {
	if w.Hist == nil {
		return 0, "", false
	}
	var role effRole
	var stem string
	switch {
	case strings.HasSuffix(w.Name, o.PassingSuffix):
		role, stem = rolePassing, strings.TrimSuffix(w.Name, o.PassingSuffix)
	case strings.HasSuffix(w.Name, o.DenomSuffix):
		role, stem = roleDenom, strings.TrimSuffix(w.Name, o.DenomSuffix)
	default:
		return 0, "", false
	}
	return role, strings.TrimSuffix(stem, "_"), true
}

// MakeEffGraphs pairs passing and denominator histograms that share a
// directory and a stem, and emits stem+EffSuffix right after the second
// member of a pair is seen. Wrappers that are neither passing nor
// denominator pass through.
func (p *Pipeline) MakeEffGraphs(seq iter.Seq[*Wrapper], opts EffOptions) iter.Seq[*Wrapper] {
	return func(yield func(*Wrapper) bool) {
		pending := [2]map[string]*Wrapper{{}, {}}
		var order []string

		emitUnpaired := func(w *Wrapper) bool {
			p.record("efficiency", w, trace.ActionUnpaired, "")
			return opts.YieldEverything || yield(w)
		}

		for w := range seq {
			if opts.YieldEverything && !yield(w) {
				return
			}
			role, stem, ok := opts.split(w)
			if !ok {
				if !opts.YieldEverything && !yield(w) {
					return
				}
				continue
			}

			key := w.Dir() + "\x00" + stem
			mine, other := pending[role], pending[1-role]
			partner, found := other[key]
			if !found {
				if prev, dup := mine[key]; dup {
					if !emitUnpaired(prev) {
						return
					}
				} else {
					order = append(order, key)
				}
				mine[key] = w
				continue
			}
			delete(other, key)

			pass, denom := w, partner
			if role == roleDenom {
				pass, denom = partner, w
			}
			eff, err := opts.Func(pass, denom, stem+EffSuffix)
			if err != nil {
				p.fail(fmt.Errorf("efficiency of %s: %w", path.Join(w.Dir(), stem), err))
				return
			}
			eff.InFilePath = path.Join(w.Dir(), eff.Name)
			eff.FilePath = w.FilePath
			p.record("efficiency", eff, trace.ActionPaired, pass.Name+"/"+denom.Name)
			if !yield(eff) {
				return
			}
		}

		for _, key := range order {
			for _, m := range pending {
				w, ok := m[key]
				if !ok {
					continue
				}
				delete(m, key)
				if !emitUnpaired(w) {
					return
				}
			}
		}
	}
}
