package study

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/vlqtrig/trigstudy/study/hist"
	"github.com/vlqtrig/trigstudy/study/trace"
)

// Settings configures a plot run. DefaultSettings reproduces the VLQ
// trigger study; LoadSettings overlays a YAML file on top of it.
type Settings struct {
	// Name is the plotter name, used as the output sub-directory.
	Name string `yaml:"name"`
	// Pattern selects input ROOT files relative to the input directory.
	Pattern string `yaml:"pattern"`
	// MaxProcs caps the number of concurrently rendered groups.
	MaxProcs int `yaml:"max_num_processes"`
	// Formats lists the image formats written per group.
	Formats []string `yaml:"formats"`
	// RootFiles also stores the objects of every group in <name>.root.
	RootFiles  bool           `yaml:"root_files"`
	Canvas     CanvasSettings `yaml:"canvas"`
	Rebin      []RebinRule    `yaml:"rebin"`
	Efficiency EffSettings    `yaml:"efficiency"`
	Filter     FilterSettings `yaml:"filter"`
	// Trace is the decision trace level, "none" or "decisions".
	Trace string `yaml:"trace"`

	bayes hist.BayesOptions
}

// CanvasSettings sizes the canvas in pixels. Margins are fractions of the
// canvas size.
type CanvasSettings struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Margins Margins `yaml:"margins"`
}

// Margins are pad margins as fractions of the canvas.
type Margins struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

// RebinRule rebins every wrapper whose in-file path contains Match.
// Rules are tried in order; the first match wins.
type RebinRule struct {
	Match       string      `yaml:"match"`
	Scheme      hist.Scheme `yaml:"scheme"`
	NormByWidth bool        `yaml:"norm_by_width"`

	edges []float64
}

// Edges returns the expanded scheme. Valid after Settings.Validate.
func (r RebinRule) Edges() []float64 { return r.edges }

// EffSettings names the suffixes used to pair numerator and denominator.
// Derived wrappers always end in EffSuffix.
type EffSettings struct {
	PassingSuffix string `yaml:"passing_suffix"`
	DenomSuffix   string `yaml:"denom_suffix"`
	// Options configures the Bayesian estimator, e.g. "cl=0.683 b(1,1) mode".
	Options string `yaml:"options"`
}

// FilterSettings drops input objects by substrings of their in-file path.
// Paths containing ComboMarker are dropped unless they also contain
// ComboAllowed; paths containing any Exclude entry are always dropped.
type FilterSettings struct {
	ComboMarker  string   `yaml:"combo_marker"`
	ComboAllowed string   `yaml:"combo_allowed"`
	Exclude      []string `yaml:"exclude"`
}

var validFormats = map[string]bool{"png": true, "pdf": true, "eps": true, "svg": true, "tex": true}

// DefaultSettings returns the settings of the VLQ trigger study.
func DefaultSettings() *Settings {
	s := &Settings{
		Name:     "VLQTrig",
		Pattern:  "*.root",
		MaxProcs: 1,
		Formats:  []string{"png", "pdf", "eps"},
		Canvas: CanvasSettings{
			Width:   1138,
			Height:  744,
			Margins: Margins{Left: 0.1, Right: 0.1, Top: 0.1, Bottom: 0.1},
		},
		Rebin: []RebinRule{
			{Match: "1leptonPt", Scheme: hist.LeptonPtScheme, NormByWidth: true},
			{Match: "2leadJetPt", Scheme: hist.LeadJetPtScheme, NormByWidth: true},
			{Match: "3subleadJetPt", Scheme: hist.SubleadJetPtScheme, NormByWidth: true},
			{Match: "4ST", Scheme: hist.STScheme, NormByWidth: true},
		},
		Efficiency: EffSettings{
			PassingSuffix: "Passing",
			DenomSuffix:   "Denom",
			Options:       "cl=0.683 b(1,1) mode",
		},
		Filter: FilterSettings{
			ComboMarker:  "COMBO",
			ComboAllowed: "ST",
			Exclude:      []string{"99"},
		},
		Trace: "none",
	}
	if err := s.Validate(); err != nil {
		panic(fmt.Sprintf("default settings: %v", err))
	}
	return s
}

// LoadSettings reads a YAML file over DefaultSettings. Unknown keys are
// rejected. The result is validated.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	s := DefaultSettings()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings and expands the rebinning schemes and
// efficiency options.
func (s *Settings) Validate() error {
	if s.MaxProcs < 1 {
		return fmt.Errorf("max_num_processes must be at least 1, got %d", s.MaxProcs)
	}
	if s.Canvas.Width <= 0 || s.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", s.Canvas.Width, s.Canvas.Height)
	}
	m := s.Canvas.Margins
	if m.Left < 0 || m.Right < 0 || m.Top < 0 || m.Bottom < 0 || m.Left+m.Right >= 1 || m.Top+m.Bottom >= 1 {
		return fmt.Errorf("canvas margins %+v leave no drawing area", m)
	}
	if len(s.Formats) == 0 {
		return fmt.Errorf("at least one output format required")
	}
	for _, f := range s.Formats {
		if !validFormats[f] {
			return fmt.Errorf("unknown output format %q; valid: eps, pdf, png, svg, tex", f)
		}
	}
	for i := range s.Rebin {
		r := &s.Rebin[i]
		if r.Match == "" {
			return fmt.Errorf("rebin[%d]: match must not be empty", i)
		}
		edges, err := r.Scheme.Edges()
		if err != nil {
			return fmt.Errorf("rebin[%d] (%s): %w", i, r.Match, err)
		}
		r.edges = edges
	}
	e := s.Efficiency
	if e.PassingSuffix == "" || e.DenomSuffix == "" {
		return fmt.Errorf("efficiency suffixes must not be empty")
	}
	if e.PassingSuffix == e.DenomSuffix {
		return fmt.Errorf("efficiency passing and denominator suffixes are both %q", e.PassingSuffix)
	}
	opts, err := hist.ParseBayesOptions(e.Options)
	if err != nil {
		return fmt.Errorf("efficiency options: %w", err)
	}
	s.bayes = opts
	if slices.Contains(s.Filter.Exclude, "") {
		return fmt.Errorf("filter exclude entries must not be empty")
	}
	if !trace.IsValidTraceLevel(s.Trace) {
		return fmt.Errorf("unknown trace level %q; valid: none, decisions", s.Trace)
	}
	return nil
}

// BayesOptions returns the parsed efficiency options.
func (s *Settings) BayesOptions() hist.BayesOptions { return s.bayes }
