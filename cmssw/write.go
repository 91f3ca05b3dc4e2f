package cmssw

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// quote renders s as a single-quoted Python string.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func quoteList(ss []string, sep string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = quote(s)
	}
	return strings.Join(q, sep)
}

func stageList(ss []string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = "process." + s
	}
	return strings.Join(q, ",")
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

var pythonTemplate = template.Must(template.New("cfg").Funcs(template.FuncMap{
	"quote":     quote,
	"quoteList": quoteList,
	"stages":    stageList,
	"pyBool":    pyBool,
	"isHLT":     func(run []string) bool { return len(run) == 1 && run[0] == HLTSchedule },
}).Parse(`# Auto generated configuration file
import FWCore.ParameterSet.Config as cms

process = cms.Process({{quote .Name}})

# import of standard configurations
{{- range .Loads}}
process.load({{quote .}})
{{- end}}

process.maxEvents = cms.untracked.PSet(
    input = cms.untracked.int32({{.MaxEvents}})
)

# Input source
process.source = cms.Source({{quote .Source.Type}},
    secondaryFileNames = cms.untracked.vstring({{quoteList .Source.SecondaryFileNames ",\n"}}),
    fileNames = cms.untracked.vstring({{quoteList .Source.FileNames ",\n"}})
)

process.options = cms.untracked.PSet(

)

# Production Info
process.configurationMetadata = cms.untracked.PSet(
    version = cms.untracked.string({{quote .Metadata.Version}}),
    annotation = cms.untracked.string({{quote .Metadata.Annotation}}),
    name = cms.untracked.string({{quote .Metadata.Name}})
)

# Output definition
{{range .OutputModules}}
process.{{.Label}} = cms.OutputModule({{quote .Type}},
    splitLevel = cms.untracked.int32({{.SplitLevel}}),
    eventAutoFlushCompressedSize = cms.untracked.int32({{.AutoFlushSize}}),
    outputCommands = process.{{.EventContent}}.outputCommands,
    fileName = cms.untracked.string({{quote .FileName}}),
    dataset = cms.untracked.PSet(
        filterName = cms.untracked.string({{quote .Dataset.FilterName}}),
        dataTier = cms.untracked.string({{quote .Dataset.DataTier}})
    )
)
{{end}}
# Other statements
process.mix.input.nbPileupEvents.averageNumber = cms.double({{printf "%f" .Mixing.AverageNumber}})
process.mix.bunchspace = cms.int32({{.Mixing.BunchSpace}})
process.mix.minBunch = cms.int32({{.Mixing.MinBunch}})
process.mix.maxBunch = cms.int32({{.Mixing.MaxBunch}})
process.mix.input.fileNames = cms.untracked.vstring({{quoteList .Mixing.FileNames ",\n"}})

process.GlobalTag.globaltag = {{quote .GlobalTag.Tag}}
process.GlobalTag.toGet = cms.VPSet(
{{- range $i, $r := .GlobalTag.ToGet}}{{if $i}},{{end}}
    cms.PSet(  record = cms.string( {{quote $r.Record}} ),
      tag = cms.string( {{quote $r.Tag}} ),
      connect = cms.untracked.string( {{quote $r.Connect}} ),
      label = cms.untracked.string( {{quote $r.Label}} )
    )
{{- end}}
)

# Path and EndPath definitions
{{- range .Paths}}
process.{{.Name}} = cms.{{if .End}}EndPath{{else}}Path{{end}}(process.{{.Sequence}})
{{- end}}

# Schedule definition
{{- range $i, $run := .ScheduleRuns}}
{{- if eq $i 0}}
{{- if isHLT $run}}
process.schedule = cms.Schedule()
process.schedule.extend(process.{{index $run 0}})
{{- else}}
process.schedule = cms.Schedule({{stages $run}})
{{- end}}
{{- else if isHLT $run}}
process.schedule.extend(process.{{index $run 0}})
{{- else}}
process.schedule.extend([{{stages $run}}])
{{- end}}
{{- end}}

# customisation of the process.
{{- range .Customised}}

from {{.Module}} import {{.Name}}
process = {{.Name}}(process)
{{- end}}
{{- range .Services}}

# added by {{.AddedBy}}
process.{{.Label}} = cms.Service({{quote .Type}}{{range .Params}},
    {{.Name}} = cms.untracked.bool({{pyBool .Value}}){{end}}
)
{{- end}}

# End of customisation functions
`))

type pythonView struct {
	*Process
	ScheduleRuns [][]string
}

// WritePython renders p as a configuration file the framework can execute.
// Recorded customisations are re-invoked by import so the framework
// applies its own versions of them. Services they added are written after
// the calls.
func (p *Process) WritePython(w io.Writer) error {
	if err := pythonTemplate.Execute(w, pythonView{Process: p, ScheduleRuns: p.scheduleRuns()}); err != nil {
		return fmt.Errorf("writing python configuration: %w", err)
	}
	return nil
}

// WriteYAML renders p for inspection.
func (p *Process) WriteYAML(w io.Writer) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling process: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing yaml configuration: %w", err)
	}
	return nil
}

// ReadYAML parses a process written by WriteYAML. Unknown fields are
// rejected.
func ReadYAML(r io.Reader) (*Process, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var p Process
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("parsing process: %w", err)
	}
	return &p, nil
}
