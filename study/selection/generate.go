package selection

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vlqtrig/trigstudy/study/rootio"
)

// TurnOn is a trigger leg efficiency modelled as a Gaussian CDF in pT,
// saturating at Plateau.
type TurnOn struct {
	Threshold float64
	Width     float64
	Plateau   float64
}

// Eval returns the leg efficiency at pt.
func (t TurnOn) Eval(pt float64) float64 {
	n := distuv.Normal{Mu: t.Threshold, Sigma: t.Width}
	return t.Plateau * n.CDF(pt)
}

// Menu is the trigger model of one flavour: the studied path requires a
// lepton leg and a jet leg, the combination adds a lepton-plus-ST path.
type Menu struct {
	Lepton  TurnOn
	Jet     TurnOn
	CombLep TurnOn
	CombST  TurnOn
}

// DefaultMenu returns the menu of the flavour.
func DefaultMenu(m Mode) Menu {
	if m == Electron {
		return Menu{
			Lepton:  TurnOn{Threshold: 40, Width: 3, Plateau: 0.93},
			Jet:     TurnOn{Threshold: 175, Width: 18, Plateau: 0.99},
			CombLep: TurnOn{Threshold: 50, Width: 4, Plateau: 0.90},
			CombST:  TurnOn{Threshold: 600, Width: 60, Plateau: 0.98},
		}
	}
	return Menu{
		Lepton:  TurnOn{Threshold: 35, Width: 2, Plateau: 0.95},
		Jet:     TurnOn{Threshold: 175, Width: 18, Plateau: 0.99},
		CombLep: TurnOn{Threshold: 45, Width: 3, Plateau: 0.94},
		CombST:  TurnOn{Threshold: 600, Width: 60, Plateau: 0.98},
	}
}

// Generator produces toy events of one flavour.
type Generator struct {
	Mode Mode
	Menu Menu

	leptonPt distuv.LogNormal
	jetPt    distuv.LogNormal
	eta      distuv.Normal
	met      distuv.Exponential
	nJets    distuv.Poisson
	id       distuv.Bernoulli
	trigger  *rand.Rand
}

// NewGenerator creates a generator drawing kinematics and trigger
// decisions from the flavour subsystems of rng.
func NewGenerator(m Mode, rng *PartitionedRNG) *Generator {
	kin := rng.ForSubsystem(SubsystemFlavour(SubsystemKinematics, m))
	return &Generator{
		Mode:     m,
		Menu:     DefaultMenu(m),
		leptonPt: distuv.LogNormal{Mu: math.Log(60), Sigma: 0.6, Src: kin},
		jetPt:    distuv.LogNormal{Mu: math.Log(150), Sigma: 0.7, Src: kin},
		eta:      distuv.Normal{Mu: 0, Sigma: 1.6, Src: kin},
		met:      distuv.Exponential{Rate: 1.0 / 80, Src: kin},
		nJets:    distuv.Poisson{Lambda: 4, Src: kin},
		id:       distuv.Bernoulli{P: 0.9, Src: kin},
		trigger:  rng.ForSubsystem(SubsystemFlavour(SubsystemTrigger, m)),
	}
}

// Next draws one event.
func (g *Generator) Next() Event {
	var ev Event
	ev.Leptons = []Particle{g.particle(g.leptonPt)}
	ev.Leptons[0].ID = g.id.Rand() == 1
	for n := int(g.nJets.Rand()) + 1; n > 0; n-- {
		ev.Jets = append(ev.Jets, g.particle(g.jetPt))
	}
	sort.Slice(ev.Jets, func(i, j int) bool { return ev.Jets[i].Pt > ev.Jets[j].Pt })
	ev.MET = g.met.Rand()

	lep := ev.Leptons[0].Pt
	lead := ev.Jets[0].Pt
	ht := ev.MET + lep
	for _, j := range ev.Jets {
		ht += j.Pt
	}
	ev.Accept = g.fire(g.Menu.Lepton.Eval(lep) * g.Menu.Jet.Eval(lead))
	ev.CombAccept = g.fire(g.Menu.CombLep.Eval(lep) * g.Menu.CombST.Eval(ht))
	return ev
}

func (g *Generator) particle(pt distuv.LogNormal) Particle {
	return Particle{Pt: pt.Rand(), Eta: g.eta.Rand()}
}

func (g *Generator) fire(p float64) bool {
	return g.trigger.Float64() < p
}

// Generate simulates n events per flavour and returns the filled
// directories of the plain and combined analyzers, muon first. Both
// analyzers of a flavour see the same events.
func Generate(key Key, n int, cuts Cuts) []rootio.Dir {
	rng := NewPartitionedRNG(key)
	var dirs []rootio.Dir
	for _, m := range []Mode{Muon, Electron} {
		gen := NewGenerator(m, rng)
		plain := NewAnalyzer(m, cuts, false)
		comb := NewAnalyzer(m, cuts, true)
		for i := 0; i < n; i++ {
			ev := gen.Next()
			plain.Fill(ev)
			comb.Fill(ev)
		}
		dirs = append(dirs,
			rootio.Dir{Name: m.Dir(false), Hists: plain.Hists()},
			rootio.Dir{Name: m.Dir(true), Hists: comb.Hists()},
		)
	}
	return dirs
}
