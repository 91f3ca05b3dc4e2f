// Package selection books and fills the trigger-study histograms: a raw
// distribution plus denominator and passing selections per quantity, for
// one lepton flavour.
package selection

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vlqtrig/trigstudy/study/hist"
)

// Mode selects the lepton flavour.
type Mode int

const (
	Muon Mode = iota
	Electron
)

// String returns the directory prefix of the flavour.
func (m Mode) String() string {
	if m == Electron {
		return "El"
	}
	return "Mu"
}

// Dir returns the output directory name of an analyzer.
func (m Mode) Dir(combination bool) string {
	if combination {
		return m.String() + "TrigStudyCOMBO"
	}
	return m.String() + "TrigStudy"
}

// Booking describes one quantity. Every quantity is booked three times:
// Name, Name+"Denom" and Name+"Passing".
type Booking struct {
	Name   string
	Title  string
	Bins   int
	Lo, Hi float64
}

// Bookings in output order.
var Bookings = []Booking{
	{"1leptonPt", "Lepton p_{T} [GeV]", 250, 1e-20, 500},
	{"2leadJetPt", "Leading Jet p_{T} [GeV]", 200, 0, 1000},
	{"3subleadJetPt", "Subleading Jet p_{T} [GeV]", 200, 0, 1000},
	{"4ST", "Sum of p_{T} of Leading Lepton, MET and all Jets with p_{T}>40GeV [GeV]", 200, 0, 2000},
}

// Histogram name suffixes.
const (
	DenomSuffix   = "Denom"
	PassingSuffix = "Passing"
)

// Cuts are the offline selection thresholds in GeV.
type Cuts struct {
	JetLeadPt   float64 `yaml:"jet_lead_pt"`
	JetSublPt   float64 `yaml:"jet_subl_pt"`
	JetEta      float64 `yaml:"jet_eta"`
	MuonPt      float64 `yaml:"muon_pt_cut"`
	ElePt       float64 `yaml:"ele_pt_cut"`
	STMuonPt    float64 `yaml:"st_muon_pt"`
	STElePt     float64 `yaml:"st_ele_pt"`
	STLeadJetPt float64 `yaml:"st_lead_jet_pt"`
	// STJetPt is the minimum pT of jets entering ST.
	STJetPt float64 `yaml:"st_jet_pt"`
}

// DefaultCuts returns thresholds just above the trigger legs.
func DefaultCuts() Cuts {
	return Cuts{
		JetLeadPt:   200,
		JetSublPt:   50,
		JetEta:      2.4,
		MuonPt:      40,
		ElePt:       45,
		STMuonPt:    50,
		STElePt:     55,
		STLeadJetPt: 250,
		STJetPt:     40,
	}
}

// LoadCuts reads cuts from YAML over DefaultCuts. Unknown keys are rejected.
func LoadCuts(path string) (Cuts, error) {
	cuts := DefaultCuts()
	data, err := os.ReadFile(path)
	if err != nil {
		return cuts, fmt.Errorf("reading cuts: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cuts); err != nil {
		return cuts, fmt.Errorf("parsing cuts: %w", err)
	}
	if cuts.JetEta <= 0 {
		return cuts, fmt.Errorf("jet_eta must be positive, got %f", cuts.JetEta)
	}
	return cuts, nil
}

// Particle is a reconstructed object. ID marks leptons passing the
// identification.
type Particle struct {
	Pt, Eta float64
	ID      bool
}

// Event holds the reconstructed objects of one event, each collection
// ordered by decreasing pT.
type Event struct {
	Leptons []Particle
	Jets    []Particle
	MET     float64
	// Accept is the decision of the studied trigger path, CombAccept the
	// decision of the additional paths of the combination.
	Accept     bool
	CombAccept bool
}

// Summary holds the quantities the selections act on.
type Summary struct {
	LeptonPt  float64
	LeadJetPt float64
	SublJetPt float64
	ST        float64
}

// Summarize picks the leading identified lepton and the two leading
// central jets, and sums ST from the lepton, MET and the central jets
// above STJetPt.
func Summarize(ev Event, cuts Cuts) Summary {
	var s Summary
	for _, l := range ev.Leptons {
		if l.ID {
			s.LeptonPt = l.Pt
			break
		}
	}
	central := 0
	for _, j := range ev.Jets {
		if math.Abs(j.Eta) >= cuts.JetEta {
			continue
		}
		switch central {
		case 0:
			s.LeadJetPt = j.Pt
		case 1:
			s.SublJetPt = j.Pt
		}
		central++
		if j.Pt > cuts.STJetPt {
			s.ST += j.Pt
		}
	}
	s.ST += s.LeptonPt + ev.MET
	return s
}

// Analyzer fills the histograms of one flavour and trigger set.
type Analyzer struct {
	Mode        Mode
	Cuts        Cuts
	Combination bool

	hists map[string]*hist.H1
	order []string
}

// NewAnalyzer books all histograms.
func NewAnalyzer(mode Mode, cuts Cuts, combination bool) *Analyzer {
	a := &Analyzer{Mode: mode, Cuts: cuts, Combination: combination, hists: make(map[string]*hist.H1)}
	for _, b := range Bookings {
		for _, suffix := range []string{"", DenomSuffix, PassingSuffix} {
			h := hist.NewH1Uniform(b.Bins, b.Lo, b.Hi)
			h.Name = b.Name + suffix
			h.XTitle = b.Title
			a.hists[h.Name] = h
			a.order = append(a.order, h.Name)
		}
	}
	return a
}

// Hist returns the histogram called name, nil if not booked.
func (a *Analyzer) Hist(name string) *hist.H1 { return a.hists[name] }

// Hists returns all histograms in booking order.
func (a *Analyzer) Hists() []*hist.H1 {
	out := make([]*hist.H1, len(a.order))
	for i, name := range a.order {
		out[i] = a.hists[name]
	}
	return out
}

func (a *Analyzer) leptonCut() float64 {
	if a.Mode == Electron {
		return a.Cuts.ElePt
	}
	return a.Cuts.MuonPt
}

func (a *Analyzer) stLeptonCut() float64 {
	if a.Mode == Electron {
		return a.Cuts.STElePt
	}
	return a.Cuts.STMuonPt
}

// Fill applies the selections to one event. Each quantity is filled into
// its denominator when the other objects pass their cuts, and into the
// passing histogram when the trigger fired as well.
func (a *Analyzer) Fill(ev Event) {
	s := Summarize(ev, a.Cuts)
	accept := ev.Accept || (a.Combination && ev.CombAccept)
	c := a.Cuts

	a.hists["1leptonPt"].Fill(s.LeptonPt, 1)
	a.hists["2leadJetPt"].Fill(s.LeadJetPt, 1)
	a.hists["3subleadJetPt"].Fill(s.SublJetPt, 1)
	a.hists["4ST"].Fill(s.ST, 1)

	a.fillSelected("1leptonPt", s.LeptonPt,
		s.LeptonPt > 1 && s.LeadJetPt > c.JetLeadPt && s.SublJetPt > c.JetSublPt, accept)
	a.fillSelected("2leadJetPt", s.LeadJetPt,
		s.LeptonPt > a.leptonCut() && s.SublJetPt > c.JetSublPt, accept)
	a.fillSelected("3subleadJetPt", s.SublJetPt,
		s.LeptonPt > a.leptonCut() && s.LeadJetPt > c.JetLeadPt, accept)
	a.fillSelected("4ST", s.ST,
		s.LeptonPt > a.stLeptonCut() && s.LeadJetPt > c.STLeadJetPt, accept)
}

func (a *Analyzer) fillSelected(name string, x float64, selected, accept bool) {
	if !selected {
		return
	}
	a.hists[name+DenomSuffix].Fill(x, 1)
	if accept {
		a.hists[name+PassingSuffix].Fill(x, 1)
	}
}
