package study

import (
	"iter"
	"strings"

	"github.com/vlqtrig/trigstudy/study/trace"
)

// Substrings of in-file paths that classify a wrapper.
const (
	ComboMarker    = "COMBO"
	STMarker       = "ST"
	ElectronPrefix = "El"
	MuonPrefix     = "Mu"
)

// Legend texts of the trigger study.
const (
	ElectronComboLegend   = "Trigger combination for electrons"
	MuonComboLegend       = "Trigger combination for muons"
	ElectronTriggerLegend = "Non-iso. ele. p_{T} > 45 GeV, cleaned AK4 jets: p_{T} [> 200, > 50] GeV"
	MuonTriggerLegend     = "Non-iso. muon p_{T} > 40 GeV, cleaned AK4 jets: p_{T} [> 200, > 50] GeV"
	RawMuonLegend         = "Raw distribution (only muons, MC: T'(M=800) b > t H b)"
)

// Colours of the trigger study.
const (
	ElectronColor      = Red
	MuonColor          = Blue
	ElectronComboColor = Green + 1
	MuonComboColor     = Blue + 3
	RawFillColor       = Color(17)
	RawLineColor       = Color(15)
)

func isEff(w *Wrapper) bool      { return strings.HasSuffix(w.Name, EffSuffix) }
func isCombo(w *Wrapper) bool    { return strings.Contains(w.InFilePath, ComboMarker) }
func isElectron(w *Wrapper) bool { return strings.HasPrefix(w.InFilePath, ElectronPrefix) }
func isMuon(w *Wrapper) bool     { return strings.HasPrefix(w.InFilePath, MuonPrefix) }

// SetLegendName assigns legend texts. Efficiencies are labelled by trigger
// and lepton flavour; any path not starting with ElectronPrefix counts as
// muon. Raw distributions are only kept for muons, and not for ST
// distributions of trigger combinations; all other wrappers are dropped.
func (p *Pipeline) SetLegendName(seq iter.Seq[*Wrapper]) iter.Seq[*Wrapper] {
	return func(yield func(*Wrapper) bool) {
		for w := range seq {
			w.Legend = w.TopDir()
			switch {
			case isEff(w) && isCombo(w):
				w.Legend = pick(isElectron(w), ElectronComboLegend, MuonComboLegend)
			case isEff(w):
				w.Legend = pick(isElectron(w), ElectronTriggerLegend, MuonTriggerLegend)
			case isMuon(w):
				w.Legend = RawMuonLegend
				if strings.Contains(w.InFilePath, STMarker) && isCombo(w) {
					p.record("legend", w, trace.ActionDropped, "raw ST combination")
					continue
				}
			default:
				p.record("legend", w, trace.ActionDropped, "raw non-muon")
				continue
			}
			if !yield(w) {
				return
			}
		}
	}
}

// SetColors colours efficiencies by lepton flavour and trigger set, and
// draws raw distributions as grey filled areas.
func SetColors(seq iter.Seq[*Wrapper]) iter.Seq[*Wrapper] {
	return func(yield func(*Wrapper) bool) {
		for w := range seq {
			if isEff(w) {
				el, mu := ElectronColor, MuonColor
				if isCombo(w) {
					el, mu = ElectronComboColor, MuonComboColor
				}
				c := pick(isMuon(w), mu, el)
				w.Style.MarkerColor, w.Style.HasMarker = c, true
				w.Style.LineColor, w.Style.HasLine = c, true
			} else {
				w.Style.FillColor, w.Style.HasFill = RawFillColor, true
				w.Style.LineColor, w.Style.HasLine = RawLineColor, true
			}
			if !yield(w) {
				return
			}
		}
	}
}

// SetPlotStyle draws efficiency graphs as error bars with a line legend
// entry, and efficiency histograms as plain lines without legend entry.
func SetPlotStyle(seq iter.Seq[*Wrapper]) iter.Seq[*Wrapper] {
	return func(yield func(*Wrapper) bool) {
		for w := range seq {
			if isEff(w) {
				w.Style.MarkerStyle = 1
				w.Style.LineWidth = 2
				if w.Kind() == KindGraph {
					w.DrawOptionLegend = "L"
					w.DrawOption = "ZP"
				} else {
					w.NoLegend = true
					w.DrawOptionLegend = ""
					w.DrawOption = "hist"
				}
			}
			if !yield(w) {
				return
			}
		}
	}
}

func pick[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
