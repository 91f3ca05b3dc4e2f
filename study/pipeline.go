package study

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vlqtrig/trigstudy/study/hist"
	"github.com/vlqtrig/trigstudy/study/trace"
)

// Pipeline runs the plot stages over a sequence of wrappers.
//
// Stages are lazy: they only describe the transformation, and the work is
// done while the final sequence is consumed. A stage that fails records the
// error, stops yielding and Err reports it. Only the first error is kept.
type Pipeline struct {
	settings *Settings
	trace    *trace.PipelineTrace
	err      error
}

// NewPipeline creates a pipeline. tr may be nil.
func NewPipeline(s *Settings, tr *trace.PipelineTrace) *Pipeline {
	return &Pipeline{settings: s, trace: tr}
}

// Err returns the first error raised by a stage, if any.
func (p *Pipeline) Err() error { return p.err }

func (p *Pipeline) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Pipeline) record(stage string, w *Wrapper, action trace.Action, detail string) {
	p.trace.Record(trace.StageRecord{
		Stage:      stage,
		Wrapper:    w.Name,
		InFilePath: w.InFilePath,
		Action:     action,
		Detail:     detail,
	})
}

// Make chains the plot stages in their fixed order: rebinning, Bayesian
// efficiencies (keeping the inputs), division efficiencies (consuming the
// inputs), normalisation, y axis, legend, colours and style.
func (p *Pipeline) Make(seq iter.Seq[*Wrapper]) iter.Seq[*Wrapper] {
	eff := p.settings.Efficiency
	seq = p.RebinPlots(seq)
	seq = p.MakeEffGraphs(seq, EffOptions{
		PassingSuffix:   eff.PassingSuffix,
		DenomSuffix:     eff.DenomSuffix,
		YieldEverything: true,
		Func:            BayesEff(p.settings.BayesOptions()),
	})
	seq = p.MakeEffGraphs(seq, EffOptions{
		PassingSuffix: eff.PassingSuffix,
		DenomSuffix:   eff.DenomSuffix,
		Func:          DivEff,
	})
	seq = p.NormToIntegral(seq)
	seq = FormatYAxis(seq)
	seq = p.SetLegendName(seq)
	seq = SetColors(seq)
	return SetPlotStyle(seq)
}

// Run evaluates Make over ws and groups the result for rendering.
func (p *Pipeline) Run(ws []*Wrapper) ([][]*Wrapper, error) {
	out := slices.Collect(p.Make(slices.Values(ws)))
	if p.err != nil {
		return nil, p.err
	}
	logrus.Debugf("pipeline: %d inputs, %d outputs", len(ws), len(out))
	return GroupPlots(out), nil
}

// RebinPlots replaces every histogram whose in-file path contains the
// Match of a rebin rule with a rebinned copy. The first matching rule
// wins; other wrappers pass through unchanged.
func (p *Pipeline) RebinPlots(seq iter.Seq[*Wrapper]) iter.Seq[*Wrapper] {
	return func(yield func(*Wrapper) bool) {
		for w := range seq {
			if rule, ok := p.rebinRule(w); ok {
				h, err := hist.Rebin(w.Hist, rule.Edges(), rule.NormByWidth)
				if err != nil {
					p.fail(fmt.Errorf("rebinning %s: %w", w.InFilePath, err))
					return
				}
				c := *w
				c.Hist = h
				w = &c
				p.record("rebin", w, trace.ActionRebinned, rule.Match)
			}
			if !yield(w) {
				return
			}
		}
	}
}

func (p *Pipeline) rebinRule(w *Wrapper) (RebinRule, bool) {
	if w.Hist == nil {
		return RebinRule{}, false
	}
	for _, r := range p.settings.Rebin {
		if strings.Contains(w.InFilePath, r.Match) {
			return r, true
		}
	}
	return RebinRule{}, false
}

// ImapConditional applies fn to the elements of seq for which pred holds
// and passes the others through.
func ImapConditional[T any](seq iter.Seq[T], pred func(T) bool, fn func(T) T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if pred(v) {
				v = fn(v)
			}
			if !yield(v) {
				return
			}
		}
	}
}

// NormToIntegral scales every histogram whose name does not contain
// EffSuffix to unit integral. The scaled histogram is a copy.
func (p *Pipeline) NormToIntegral(seq iter.Seq[*Wrapper]) iter.Seq[*Wrapper] {
	return ImapConditional(seq,
		func(w *Wrapper) bool { return w.Hist != nil && !strings.Contains(w.Name, EffSuffix) },
		func(w *Wrapper) *Wrapper {
			c := *w
			c.Hist = w.Hist.Clone()
			hist.Normalize(c.Hist)
			p.record("normalize", &c, trace.ActionNormalized, "")
			return &c
		})
}

// FormatYAxis titles every y axis "Efficiency" and caps it at 1.
func FormatYAxis(seq iter.Seq[*Wrapper]) iter.Seq[*Wrapper] {
	return func(yield func(*Wrapper) bool) {
		for w := range seq {
			w.SetYTitle("Efficiency")
			w.ValYMax = 1.0
			if !yield(w) {
				return
			}
		}
	}
}
