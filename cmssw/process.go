// Package cmssw assembles the declarative job configuration consumed by the
// external simulation and trigger-emulation framework.
//
// A Process is built in memory and serialised with WritePython (the form the
// framework executes) or WriteYAML (for inspection). Nothing here runs the
// simulation; every value is fixed at build time.
package cmssw

// HLTSchedule is the schedule placeholder the framework replaces with the
// paths of the loaded trigger menu.
const HLTSchedule = "HLTSchedule"

// Source describes the event input.
type Source struct {
	Type               string   `yaml:"type"`
	FileNames          []string `yaml:"file_names"`
	SecondaryFileNames []string `yaml:"secondary_file_names"`
}

// Metadata is the production record stored with the output.
type Metadata struct {
	Version    string `yaml:"version"`
	Annotation string `yaml:"annotation"`
	Name       string `yaml:"name"`
}

// Dataset tags an output module.
type Dataset struct {
	FilterName string `yaml:"filter_name"`
	DataTier   string `yaml:"data_tier"`
}

// OutputModule writes selected event content to a file.
type OutputModule struct {
	Label      string `yaml:"label"`
	Type       string `yaml:"type"`
	SplitLevel int    `yaml:"split_level"`
	// AutoFlushSize is the compressed basket size in bytes.
	AutoFlushSize int `yaml:"event_auto_flush_compressed_size"`
	// EventContent names the event-content block whose output commands
	// are used.
	EventContent string  `yaml:"event_content"`
	FileName     string  `yaml:"file_name"`
	Dataset      Dataset `yaml:"dataset"`
}

// Mixing configures pileup overlay.
type Mixing struct {
	AverageNumber float64  `yaml:"average_number"`
	BunchSpace    int      `yaml:"bunch_space"` // ns
	MinBunch      int      `yaml:"min_bunch"`
	MaxBunch      int      `yaml:"max_bunch"`
	FileNames     []string `yaml:"file_names"`
}

// ConditionRecord overrides one conditions record of the global tag.
type ConditionRecord struct {
	Record  string `yaml:"record"`
	Tag     string `yaml:"tag"`
	Connect string `yaml:"connect"`
	Label   string `yaml:"label"`
}

// GlobalTag selects the conditions.
type GlobalTag struct {
	Tag   string            `yaml:"tag"`
	ToGet []ConditionRecord `yaml:"to_get"`
}

// Path is a named stage running one sequence or module. EndPaths run
// after all Paths.
type Path struct {
	Name     string `yaml:"name"`
	Sequence string `yaml:"sequence"`
	End      bool   `yaml:"end,omitempty"`
}

// BoolParam is a named untracked boolean parameter.
type BoolParam struct {
	Name  string `yaml:"name"`
	Value bool   `yaml:"value"`
}

// Service is a framework service added by a customisation.
type Service struct {
	Label   string      `yaml:"label"`
	Type    string      `yaml:"type"`
	Params  []BoolParam `yaml:"params"`
	AddedBy string      `yaml:"added_by"`
}

// Applied records a customisation applied to the process.
type Applied struct {
	Module string `yaml:"module"`
	Name   string `yaml:"name"`
}

// Process is the complete job configuration.
type Process struct {
	Name          string         `yaml:"name"`
	Loads         []string       `yaml:"loads"`
	MaxEvents     int            `yaml:"max_events"`
	Source        Source         `yaml:"source"`
	Metadata      Metadata       `yaml:"metadata"`
	OutputModules []OutputModule `yaml:"output_modules"`
	Mixing        Mixing         `yaml:"mixing"`
	GlobalTag     GlobalTag      `yaml:"global_tag"`
	Paths         []Path         `yaml:"paths"`
	Schedule      []string       `yaml:"schedule"`
	Services      []Service      `yaml:"services,omitempty"`
	Customised    []Applied      `yaml:"customisations"`
}

// NewProcess creates an empty process.
func NewProcess(name string) *Process {
	return &Process{Name: name}
}

// Load appends sub-configuration names. Duplicates are kept.
func (p *Process) Load(names ...string) {
	p.Loads = append(p.Loads, names...)
}

// AddPath defines a path running sequence.
func (p *Process) AddPath(name, sequence string) {
	p.Paths = append(p.Paths, Path{Name: name, Sequence: sequence})
}

// AddEndPath defines an end path running module.
func (p *Process) AddEndPath(name, module string) {
	p.Paths = append(p.Paths, Path{Name: name, Sequence: module, End: true})
}

// Path returns the path called name.
func (p *Process) Path(name string) (Path, bool) {
	for _, path := range p.Paths {
		if path.Name == name {
			return path, true
		}
	}
	return Path{}, false
}

// SetSchedule replaces the schedule.
func (p *Process) SetSchedule(stages ...string) {
	p.Schedule = append([]string(nil), stages...)
}

// ExtendSchedule appends stages to the schedule.
func (p *Process) ExtendSchedule(stages ...string) {
	p.Schedule = append(p.Schedule, stages...)
}

// AddService adds or replaces the service with the same label.
func (p *Process) AddService(s Service) {
	for i := range p.Services {
		if p.Services[i].Label == s.Label {
			p.Services[i] = s
			return
		}
	}
	p.Services = append(p.Services, s)
}

// Customisation is a named function rewriting a process. Module is the
// framework module it is imported from.
type Customisation struct {
	Module string
	Name   string
	Apply  func(*Process) *Process
}

// Customise applies the customisations in order and returns the resulting
// process. Each one is recorded on the process it returned.
func (p *Process) Customise(cs ...Customisation) *Process {
	out := p
	for _, c := range cs {
		if c.Apply != nil {
			out = c.Apply(out)
		}
		out.Customised = append(out.Customised, Applied{Module: c.Module, Name: c.Name})
	}
	return out
}

// scheduleRuns splits the schedule into runs of plain stages, with every
// HLTSchedule placeholder as a run of its own.
func (p *Process) scheduleRuns() [][]string {
	var runs [][]string
	var cur []string
	for _, s := range p.Schedule {
		if s == HLTSchedule {
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
			runs = append(runs, []string{s})
			continue
		}
		cur = append(cur, s)
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}
