// Package trace provides decision-trace recording for the plot pipeline.
// It does not import study/ and stores plain data types only.
package trace

// Action names what a pipeline stage did with a wrapper.
type Action string

const (
	ActionRebinned   Action = "rebinned"
	ActionPaired     Action = "paired"
	ActionUnpaired   Action = "unpaired"
	ActionNormalized Action = "normalized"
	ActionDropped    Action = "dropped"
	ActionFiltered   Action = "filtered"
)

// StageRecord captures a single pipeline decision about one wrapper.
type StageRecord struct {
	Stage      string
	Wrapper    string
	InFilePath string
	Action     Action
	Detail     string // free-form, e.g. the matched rebin token or the efficiency name
}

// RenderRecord captures one rendered group.
type RenderRecord struct {
	Group    string
	Wrappers int
	Files    []string
}
