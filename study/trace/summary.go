package trace

// TraceSummary aggregates statistics from a PipelineTrace.
type TraceSummary struct {
	TotalDecisions    int
	ActionCounts      map[Action]int
	StageDistribution map[string]int // stage name → number of decisions
	RenderedGroups    int
	RenderedFiles     int
}

// Summarize computes aggregate statistics from a PipelineTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(pt *PipelineTrace) *TraceSummary {
	summary := &TraceSummary{
		ActionCounts:      make(map[Action]int),
		StageDistribution: make(map[string]int),
	}
	if pt == nil {
		return summary
	}

	summary.TotalDecisions = len(pt.Records)
	for _, r := range pt.Records {
		summary.ActionCounts[r.Action]++
		summary.StageDistribution[r.Stage]++
	}

	summary.RenderedGroups = len(pt.Renders)
	for _, r := range pt.Renders {
		summary.RenderedFiles += len(r.Files)
	}

	return summary
}
