package study

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlqtrig/trigstudy/study/hist"
	"github.com/vlqtrig/trigstudy/study/trace"
)

// newHist returns a wrapper around unit-width bins starting at 0.
func newHist(name, inFilePath string, contents ...float64) *Wrapper {
	h := hist.NewH1Uniform(len(contents), 0, float64(len(contents)))
	h.Name = name
	for i, c := range contents {
		h.SetBin(i, c, c)
	}
	return NewHistWrapper(inFilePath, "test.root", h)
}

// leptonHist books like the analyzer: 250 bins up to 500 GeV, one entry
// per bin centre below max.
func leptonHist(name, inFilePath string, max float64, w float64) *Wrapper {
	h := hist.NewH1Uniform(250, 0, 500)
	h.Name = name
	for i := 0; i < h.Len(); i++ {
		if h.BinCenter(i) < max {
			h.Fill(h.BinCenter(i), w)
		}
	}
	return NewHistWrapper(inFilePath, "test.root", h)
}

func run(t *testing.T, p *Pipeline, ws ...*Wrapper) []*Wrapper {
	t.Helper()
	out := slices.Collect(p.Make(slices.Values(ws)))
	require.NoError(t, p.Err())
	return out
}

func byName(ws []*Wrapper, name string) []*Wrapper {
	var out []*Wrapper
	for _, w := range ws {
		if w.Name == name {
			out = append(out, w)
		}
	}
	return out
}

func TestRebinPlots_LeptonPtGetsFixedEdges(t *testing.T) {
	// GIVEN a lepton pT histogram with the analyzer's booking
	p := NewPipeline(DefaultSettings(), nil)
	w := leptonHist("1leptonPtDenom", "MuTrigStudy/1leptonPtDenom", 500, 1)

	// WHEN rebinned
	out := slices.Collect(p.RebinPlots(slices.Values([]*Wrapper{w})))
	require.NoError(t, p.Err())

	// THEN the edges are exactly the lepton pT scheme
	want, err := hist.LeptonPtScheme.Edges()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, want, out[0].Hist.Edges())
	assert.Equal(t, 250, w.Hist.Len(), "input wrapper is not modified")
}

func TestRebinPlots_FirstMatchingRuleWins(t *testing.T) {
	p := NewPipeline(DefaultSettings(), nil)
	w := leptonHist("x", "Mu/1leptonPt/2leadJetPt", 500, 1)

	out := slices.Collect(p.RebinPlots(slices.Values([]*Wrapper{w})))

	want, _ := hist.LeptonPtScheme.Edges()
	assert.Equal(t, want, out[0].Hist.Edges())
}

func TestRebinPlots_UnmatchedPassThrough(t *testing.T) {
	p := NewPipeline(DefaultSettings(), nil)
	w := newHist("other", "MuTrigStudy/other", 1, 2, 3)

	out := slices.Collect(p.RebinPlots(slices.Values([]*Wrapper{w})))

	require.Len(t, out, 1)
	assert.Same(t, w, out[0])
}

func TestRebinPlots_IncompatibleSchemeFails(t *testing.T) {
	s := DefaultSettings()
	// a rule that never went through Validate has no edges
	s.Rebin = []RebinRule{{Match: "x"}}
	p := NewPipeline(s, nil)

	out := slices.Collect(p.RebinPlots(slices.Values([]*Wrapper{newHist("x", "d/x", 1)})))

	assert.Empty(t, out)
	assert.ErrorIs(t, p.Err(), hist.ErrEmptyEdges)
}

func TestMakeEffGraphs_PairEmitsBayesAndDivision(t *testing.T) {
	// GIVEN a passing/denominator pair with non-negative counts
	p := NewPipeline(DefaultSettings(), nil)
	pass := newHist("XPassing", "MuTrigStudy/XPassing", 1, 2, 3, 0)
	denom := newHist("XDenom", "MuTrigStudy/XDenom", 2, 2, 6, 0)

	// WHEN the full stage chain runs
	out := run(t, p, pass, denom)

	// THEN exactly one graph and one histogram named XEff come out
	effs := byName(out, "XEff")
	require.Len(t, effs, 2)
	require.Len(t, out, 2, "paired inputs are consumed")
	var graph, div *Wrapper
	for _, w := range effs {
		if w.Kind() == KindGraph {
			graph = w
		} else {
			div = w
		}
	}
	require.NotNil(t, graph)
	require.NotNil(t, div)

	assert.Len(t, graph.Graph.Points, 3, "empty denominator bin has no point")
	for _, pt := range graph.Graph.Points {
		assert.GreaterOrEqual(t, pt.Y, 0.0)
		assert.LessOrEqual(t, pt.Y, 1.0)
	}
	assert.Equal(t, []float64{0.5, 1, 0.5, 0}, div.Hist.Contents())
	assert.Equal(t, "MuTrigStudy/XEff", graph.InFilePath)
}

func TestMakeEffGraphs_YieldEverythingKeepsInputs(t *testing.T) {
	p := NewPipeline(DefaultSettings(), nil)
	pass := newHist("XPassing", "d/XPassing", 1)
	denom := newHist("XDenom", "d/XDenom", 2)
	other := newHist("Y", "d/Y", 3)

	out := slices.Collect(p.MakeEffGraphs(slices.Values([]*Wrapper{pass, other, denom}), EffOptions{
		PassingSuffix:   "Passing",
		DenomSuffix:     "Denom",
		YieldEverything: true,
		Func:            DivEff,
	}))

	require.Len(t, out, 4)
	assert.Equal(t, []string{"XPassing", "Y", "XDenom", "XEff"},
		[]string{out[0].Name, out[1].Name, out[2].Name, out[3].Name})
}

func TestMakeEffGraphs_UnpairedPassThroughAtEnd(t *testing.T) {
	p := NewPipeline(DefaultSettings(), nil)
	lonely := newHist("APassing", "d/APassing", 1)
	pass := newHist("BPassing", "d/BPassing", 1)
	other := newHist("C", "d/C", 1)
	denom := newHist("BDenom", "d/BDenom", 2)

	out := slices.Collect(p.MakeEffGraphs(slices.Values([]*Wrapper{lonely, pass, other, denom}), EffOptions{
		PassingSuffix: "Passing",
		DenomSuffix:   "Denom",
		Func:          DivEff,
	}))

	var names []string
	for _, w := range out {
		names = append(names, w.Name)
	}
	assert.Equal(t, []string{"C", "BEff", "APassing"}, names)
}

func TestMakeEffGraphs_PairsOnlyWithinDirectory(t *testing.T) {
	p := NewPipeline(DefaultSettings(), nil)
	pass := newHist("XPassing", "ElTrigStudy/XPassing", 1)
	denom := newHist("XDenom", "MuTrigStudy/XDenom", 2)

	out := slices.Collect(p.MakeEffGraphs(slices.Values([]*Wrapper{pass, denom}), EffOptions{
		PassingSuffix: "Passing",
		DenomSuffix:   "Denom",
		Func:          DivEff,
	}))

	require.Len(t, out, 2)
	assert.Empty(t, byName(out, "XEff"))
}

func TestMakeEffGraphs_BinningMismatchFails(t *testing.T) {
	p := NewPipeline(DefaultSettings(), nil)
	pass := newHist("XPassing", "d/XPassing", 1, 2)
	denom := newHist("XDenom", "d/XDenom", 1, 2, 3)

	_ = slices.Collect(p.MakeEffGraphs(slices.Values([]*Wrapper{pass, denom}), EffOptions{
		PassingSuffix: "Passing",
		DenomSuffix:   "Denom",
		Func:          DivEff,
	}))

	assert.ErrorIs(t, p.Err(), hist.ErrBinningMismatch)
}

func TestNormToIntegral_NonEffHaveUnitIntegral(t *testing.T) {
	// GIVEN a raw muon distribution and an empty one
	p := NewPipeline(DefaultSettings(), nil)
	raw := leptonHist("1leptonPt", "MuTrigStudy/1leptonPt", 300, 3)
	empty := newHist("empty", "MuTrigStudy/empty", 0, 0)

	// WHEN the full stage chain runs
	out := run(t, p, raw, empty)

	// THEN the filled one integrates to one and the empty one stays zero
	require.Len(t, out, 2)
	assert.InDelta(t, 1.0, byName(out, "1leptonPt")[0].Hist.Integral(), 1e-9)
	assert.Equal(t, 0.0, byName(out, "empty")[0].Hist.Integral())
}

func TestNormToIntegral_EffUntouched(t *testing.T) {
	p := NewPipeline(DefaultSettings(), nil)
	w := newHist("XEff", "d/XEff", 0.5, 0.5)

	out := slices.Collect(p.NormToIntegral(slices.Values([]*Wrapper{w})))

	assert.Same(t, w, out[0])
	assert.Equal(t, 1.0, w.Hist.Integral())
}

func TestImapConditional(t *testing.T) {
	seq := ImapConditional(slices.Values([]int{1, 2, 3, 4}),
		func(v int) bool { return v%2 == 0 },
		func(v int) int { return v * 10 })

	assert.Equal(t, []int{1, 20, 3, 40}, slices.Collect(seq))
}

func TestFormatYAxis(t *testing.T) {
	w := newHist("a", "d/a", 1)

	out := slices.Collect(FormatYAxis(slices.Values([]*Wrapper{w})))

	assert.Equal(t, "Efficiency", out[0].YTitle())
	assert.Equal(t, 1.0, out[0].ValYMax)
}

func TestMake_ElectronTriggerScenario(t *testing.T) {
	// GIVEN an electron trigger pair in a lepton pT directory
	p := NewPipeline(DefaultSettings(), nil)
	pass := leptonHist("ElHLT_Foo_Passing", "El1leptonPt/x", 300, 1)
	denom := leptonHist("ElHLT_Foo_Denom", "El1leptonPt/x", 400, 2)

	// WHEN the full stage chain runs
	out := run(t, p, pass, denom)

	// THEN the efficiency graph carries the electron trigger legend, red
	// markers and error-bar drawing
	effs := byName(out, "ElHLT_FooEff")
	require.Len(t, effs, 2)
	var graph *Wrapper
	for _, w := range effs {
		if w.Kind() == KindGraph {
			graph = w
		}
	}
	require.NotNil(t, graph)
	assert.Equal(t, ElectronTriggerLegend, graph.Legend)
	assert.Equal(t, Red, graph.Style.MarkerColor)
	assert.Equal(t, "ZP", graph.DrawOption)
	assert.Equal(t, "L", graph.DrawOptionLegend)
	for _, pt := range graph.Graph.Points {
		assert.GreaterOrEqual(t, pt.Y, 0.0)
		assert.LessOrEqual(t, pt.Y, 1.0)
	}
}

func TestRun_GroupsOutput(t *testing.T) {
	p := NewPipeline(DefaultSettings(), nil)
	ws := []*Wrapper{
		leptonHist("1leptonPt", "MuTrigStudy/1leptonPt", 300, 1),
		leptonHist("1leptonPtPassing", "MuTrigStudy/1leptonPtPassing", 300, 1),
		leptonHist("1leptonPtDenom", "MuTrigStudy/1leptonPtDenom", 400, 1),
	}

	groups, err := p.Run(ws)

	require.NoError(t, err)
	require.Len(t, groups, 1)
	names := []string{}
	for _, w := range groups[0] {
		names = append(names, w.Name)
	}
	assert.Equal(t, []string{"1leptonPt", "1leptonPtEff", "1leptonPtEff"}, names)
}

func TestMake_RecordsDecisions(t *testing.T) {
	tr := trace.NewPipelineTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	p := NewPipeline(DefaultSettings(), tr)

	run(t, p,
		leptonHist("1leptonPt", "ElTrigStudy/1leptonPt", 300, 1),
		leptonHist("1leptonPtPassing", "MuTrigStudy/1leptonPtPassing", 300, 1),
		leptonHist("1leptonPtDenom", "MuTrigStudy/1leptonPtDenom", 400, 1),
	)

	s := trace.Summarize(tr)
	assert.Equal(t, 3, s.ActionCounts[trace.ActionRebinned])
	assert.Equal(t, 2, s.ActionCounts[trace.ActionPaired])
	assert.Equal(t, 1, s.ActionCounts[trace.ActionNormalized])
	assert.Equal(t, 1, s.ActionCounts[trace.ActionDropped])
}
