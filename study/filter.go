package study

import (
	"strings"

	"github.com/vlqtrig/trigstudy/study/trace"
)

// Accept reports whether an object at inFilePath is loaded.
func (f FilterSettings) Accept(inFilePath string) bool {
	if f.ComboMarker != "" && strings.Contains(inFilePath, f.ComboMarker) &&
		(f.ComboAllowed == "" || !strings.Contains(inFilePath, f.ComboAllowed)) {
		return false
	}
	for _, ex := range f.Exclude {
		if strings.Contains(inFilePath, ex) {
			return false
		}
	}
	return true
}

// InputFilter returns the load filter of the pipeline. Rejected paths are
// traced.
func (p *Pipeline) InputFilter() func(inFilePath string) bool {
	return func(inFilePath string) bool {
		if p.settings.Filter.Accept(inFilePath) {
			return true
		}
		p.trace.Record(trace.StageRecord{
			Stage:      "filter",
			Wrapper:    inFilePath[strings.LastIndex(inFilePath, "/")+1:],
			InFilePath: inFilePath,
			Action:     trace.ActionFiltered,
		})
		return false
	}
}
