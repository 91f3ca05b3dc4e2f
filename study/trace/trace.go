package trace

import "sync"

// TraceLevel controls the verbosity of pipeline tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every rebin, pairing, normalisation and drop.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// PipelineTrace collects decision records during a plot pipeline run.
// A nil *PipelineTrace is valid and records nothing.
type PipelineTrace struct {
	Config TraceConfig

	mu      sync.Mutex
	Records []StageRecord
	Renders []RenderRecord
}

// NewPipelineTrace creates a PipelineTrace ready for recording.
func NewPipelineTrace(config TraceConfig) *PipelineTrace {
	return &PipelineTrace{
		Config:  config,
		Records: make([]StageRecord, 0),
		Renders: make([]RenderRecord, 0),
	}
}

func (pt *PipelineTrace) enabled() bool {
	return pt != nil && pt.Config.Level == TraceLevelDecisions
}

// Record appends a stage decision record.
func (pt *PipelineTrace) Record(record StageRecord) {
	if !pt.enabled() {
		return
	}
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.Records = append(pt.Records, record)
}

// RecordRender appends a render record. Safe for concurrent renders.
func (pt *PipelineTrace) RecordRender(record RenderRecord) {
	if !pt.enabled() {
		return
	}
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.Renders = append(pt.Renders, record)
}
