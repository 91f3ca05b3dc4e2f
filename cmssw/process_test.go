package cmssw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_LoadKeepsOrderAndDuplicates(t *testing.T) {
	p := NewProcess("TEST")
	p.Load("a", "b")
	p.Load("a")

	assert.Equal(t, []string{"a", "b", "a"}, p.Loads)
}

func TestProcess_ScheduleRuns(t *testing.T) {
	tests := []struct {
		name     string
		schedule []string
		want     [][]string
	}{
		{"empty", nil, nil},
		{"plain", []string{"a", "b"}, [][]string{{"a", "b"}}},
		{"placeholder in the middle", []string{"a", HLTSchedule, "b"}, [][]string{{"a"}, {HLTSchedule}, {"b"}}},
		{"placeholder first", []string{HLTSchedule, "b"}, [][]string{{HLTSchedule}, {"b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProcess("TEST")
			p.SetSchedule(tt.schedule...)
			assert.Equal(t, tt.want, p.scheduleRuns())
		})
	}
}

func TestProcess_CustomiseOrder(t *testing.T) {
	// GIVEN customisations that record their calls
	var calls []string
	mk := func(name string) Customisation {
		return Customisation{Module: "mod." + name, Name: name, Apply: func(p *Process) *Process {
			calls = append(calls, name)
			return p
		}}
	}
	p := NewProcess("TEST")

	// WHEN applying them
	out := p.Customise(mk("first"), mk("second"), mk("third"))

	// THEN they run and are recorded in order
	assert.Same(t, p, out)
	assert.Equal(t, []string{"first", "second", "third"}, calls)
	require.Len(t, out.Customised, 3)
	assert.Equal(t, Applied{Module: "mod.third", Name: "third"}, out.Customised[2])
}

func TestProcess_CustomiseReplacingProcess(t *testing.T) {
	// GIVEN a customisation returning a new process
	replacement := NewProcess("OTHER")
	swap := Customisation{Name: "swap", Apply: func(*Process) *Process { return replacement }}

	out := NewProcess("TEST").Customise(swap, AddMonitoring)

	// THEN later customisations and records apply to the replacement
	assert.Same(t, replacement, out)
	assert.Len(t, out.Customised, 2)
	assert.Len(t, out.Services, 2)
}

func TestAddMonitoring_Idempotent(t *testing.T) {
	p := NewProcess("TEST")
	p = addMonitoring(addMonitoring(p))

	require.Len(t, p.Services, 2)
	assert.Equal(t, "SimpleMemoryCheck", p.Services[0].Label)
	assert.Equal(t, []BoolParam{{Name: "jobReportOutputOnly", Value: true}}, p.Services[0].Params)
	assert.Equal(t, "Timing", p.Services[1].Label)
	assert.Equal(t, []BoolParam{{Name: "summaryOnly", Value: true}}, p.Services[1].Params)
}

func TestStep1(t *testing.T) {
	p := Step1(DefaultStep1Options())

	assert.Equal(t, "HLT", p.Name)
	assert.Len(t, p.Loads, 16)
	assert.Equal(t, "Configuration.StandardSequences.Services_cff", p.Loads[0])
	assert.Equal(t, "CondCore.DBCommon.CondDBSetup_cfi", p.Loads[15])
	assert.Equal(t, 30, p.MaxEvents)
	assert.Equal(t, "step1 nevts:10", p.Metadata.Annotation)

	assert.Equal(t, 20.0, p.Mixing.AverageNumber)
	assert.Equal(t, 25, p.Mixing.BunchSpace)
	assert.Equal(t, -12, p.Mixing.MinBunch)
	assert.Equal(t, 3, p.Mixing.MaxBunch)
	assert.Len(t, p.Mixing.FileNames, 24)

	assert.Equal(t, "PRE_LS172_V16::All", p.GlobalTag.Tag)
	require.Len(t, p.GlobalTag.ToGet, 2)
	assert.Equal(t, "AK8CaloHLT", p.GlobalTag.ToGet[0].Label)
	assert.Equal(t, "JetCorrectorParametersCollection_HLT_BX25_V1_AK8PFHLT", p.GlobalTag.ToGet[1].Tag)

	assert.Equal(t, []string{
		"digitisation_step", "L1simulation_step", "digi2raw_step",
		HLTSchedule,
		"raw2digi_step", "L1Reco_step", "endjob_step", "FEVTDEBUGoutput_step",
	}, p.Schedule)

	end, ok := p.Path("FEVTDEBUGoutput_step")
	require.True(t, ok)
	assert.True(t, end.End)
	assert.Equal(t, "FEVTDEBUGoutput", end.Sequence)

	names := make([]string, len(p.Customised))
	for i, c := range p.Customised {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"customizeHLTforMC", "addMonitoring", "customisePostLS1"}, names)
	assert.Len(t, p.Services, 2)
}

func TestStep1_OptionsAreCopied(t *testing.T) {
	opts := DefaultStep1Options()
	opts.MaxEvents = 5
	p := Step1(opts)
	opts.InputFiles[0] = "changed"

	assert.Equal(t, 5, p.MaxEvents)
	assert.NotEqual(t, "changed", p.Source.FileNames[0])
}

func TestWritePython(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Step1(DefaultStep1Options()).WritePython(&buf))
	out := buf.String()

	for _, want := range []string{
		"process = cms.Process('HLT')",
		"process.load('HLTrigger.Configuration.HLT_User_cff')",
		"input = cms.untracked.int32(30)",
		"process.mix.input.nbPileupEvents.averageNumber = cms.double(20.000000)",
		"process.mix.minBunch = cms.int32(-12)",
		"process.GlobalTag.globaltag = 'PRE_LS172_V16::All'",
		"process.endjob_step = cms.EndPath(process.endOfProcess)",
		"process.schedule = cms.Schedule(process.digitisation_step,process.L1simulation_step,process.digi2raw_step)",
		"process.schedule.extend(process.HLTSchedule)",
		"process.schedule.extend([process.raw2digi_step,process.L1Reco_step,process.endjob_step,process.FEVTDEBUGoutput_step])",
		"from Configuration.DataProcessing.Utils import addMonitoring",
		"summaryOnly = cms.untracked.bool(True)",
	} {
		assert.Contains(t, out, want)
	}

	// customisations keep their order
	hlt := strings.Index(out, "process = customizeHLTforMC(process)")
	mon := strings.Index(out, "process = addMonitoring(process)")
	ls1 := strings.Index(out, "process = customisePostLS1(process)")
	assert.True(t, hlt >= 0 && hlt < mon && mon < ls1)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `'it\'s'`, quote("it's"))
	assert.Equal(t, `'a\\b'`, quote(`a\b`))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestWriters_PropagateErrors(t *testing.T) {
	p := Step1(DefaultStep1Options())

	assert.ErrorIs(t, p.WritePython(failingWriter{}), assert.AnError)
	assert.ErrorIs(t, p.WriteYAML(failingWriter{}), assert.AnError)
}

func TestYAMLRoundTrip(t *testing.T) {
	p := Step1(DefaultStep1Options())
	var buf bytes.Buffer
	require.NoError(t, p.WriteYAML(&buf))

	got, err := ReadYAML(&buf)

	require.NoError(t, err)
	assert.Equal(t, p.Loads, got.Loads)
	assert.Equal(t, p.Schedule, got.Schedule)
	assert.Equal(t, p.Mixing, got.Mixing)
	assert.Equal(t, p.GlobalTag, got.GlobalTag)
	assert.Equal(t, p.Services, got.Services)
	assert.Equal(t, p.Customised, got.Customised)
}

func TestReadYAML_RejectsUnknownFields(t *testing.T) {
	_, err := ReadYAML(strings.NewReader("name: HLT\nbogus: 1\n"))
	assert.Error(t, err)
}
