package cmssw

// Step1Options are the few values of the step-1 job that callers may change.
type Step1Options struct {
	MaxEvents  int
	InputFiles []string
	OutputFile string
}

// DefaultStep1Options returns the production values.
func DefaultStep1Options() Step1Options {
	return Step1Options{
		MaxEvents:  30,
		InputFiles: []string{"file:/nfs/dust/cms/user/marchesi/GENSIM_files/CMSSW_6_2_12/tprime_GENSIM_TpjM800_bW_13TeV_xqcut0_1.root"},
		OutputFile: "file:B2G-Spring14dr-00115_step1.root",
	}
}

// Step1Loads are the sub-configurations of the step-1 job, in load order.
var Step1Loads = []string{
	"Configuration.StandardSequences.Services_cff",
	"SimGeneral.HepPDTESSource.pythiapdt_cfi",
	"FWCore.MessageService.MessageLogger_cfi",
	"Configuration.EventContent.EventContent_cff",
	"SimGeneral.MixingModule.mix_POISSON_average_cfi",
	"Configuration.StandardSequences.GeometryRecoDB_cff",
	"Configuration.StandardSequences.MagneticField_38T_PostLS1_cff",
	"Configuration.StandardSequences.Digi_cff",
	"Configuration.StandardSequences.SimL1Emulator_cff",
	"Configuration.StandardSequences.DigiToRaw_cff",
	"HLTrigger.Configuration.HLT_User_cff",
	"Configuration.StandardSequences.RawToDigi_cff",
	"Configuration.StandardSequences.L1Reco_cff",
	"Configuration.StandardSequences.EndOfProcess_cff",
	"Configuration.StandardSequences.FrontierConditions_GlobalTag_cff",
	"CondCore.DBCommon.CondDBSetup_cfi",
}

const pileupStore = "/store/mc/Fall13/MinBias_TuneA2MB_13TeV-pythia8/GEN-SIM/POSTLS162_V1-v1/20000/"

// PileupFiles are the minimum-bias files overlaid as pileup.
var PileupFiles = func() []string {
	ids := []string{
		"0E0254B5-5E25-E311-9C87-0026B93F4A37",
		"148F0A95-5D25-E311-BED9-00145EDD77B9",
		"181B59DC-5F25-E311-BB40-00A0D1EE2F94",
		"2AC5C69B-5D25-E311-8D9F-00145EFB6930",
		"32C1CE11-5E25-E311-BB5E-00266CF830FC",
		"365DB59A-5D25-E311-B050-00145EDD76FD",
		"42FBB09A-5D25-E311-9B77-00145EDD784D",
		"4A40B231-5F25-E311-9EEF-7845C4FC3C8C",
		"4AE67893-5E25-E311-A288-00266CF89604",
		"523F35DF-5E25-E311-9905-00145EDD7355",
		"5661CB97-5D25-E311-8E4D-000AE488B8B8",
		"58191637-5F25-E311-B5AB-00145EDD732D",
		"82ED44EC-5E25-E311-800C-00145EDD7635",
		"863450AA-5E25-E311-B90F-00145EDD72F1",
		"A02DB1B8-5E25-E311-BA1D-00145EFB6930",
		"A283B485-5E25-E311-BDB9-000AE488B8B8",
		"A8DDF385-5F25-E311-81A1-000AE488B8B8",
		"B4B834BA-5D25-E311-B320-0026B93F4A37",
		"C69214B1-5E25-E311-B2F8-00145EDD77B9",
		"C6DB31DD-5D25-E311-9A64-00145EDD732D",
		"CC8E57F9-5D25-E311-BBD1-00145EDD7881",
		"CE2A233F-5E25-E311-A248-7845C4FC3C8C",
		"F0BA29B8-5E25-E311-BBE3-00145EDD740F",
		"F265F6AD-5D25-E311-B2DC-00145EDD7759",
	}
	files := make([]string, len(ids))
	for i, id := range ids {
		files[i] = pileupStore + id + ".root"
	}
	return files
}()

func jetCorrection(label string) ConditionRecord {
	return ConditionRecord{
		Record:  "JetCorrectionsRecord",
		Tag:     "JetCorrectorParametersCollection_HLT_BX25_V1_" + label,
		Connect: "frontier://FrontierPrep/CMS_COND_PHYSICSTOOLS",
		Label:   label,
	}
}

// Step1 assembles the DIGI, L1, DIGI2RAW, HLT, RAW2DIGI and L1Reco job
// with 20 pileup interactions at 25 ns bunch spacing.
func Step1(opts Step1Options) *Process {
	p := NewProcess("HLT")
	p.Load(Step1Loads...)
	p.MaxEvents = opts.MaxEvents

	p.Source = Source{
		Type:               "PoolSource",
		FileNames:          append([]string(nil), opts.InputFiles...),
		SecondaryFileNames: []string{},
	}
	p.Metadata = Metadata{
		Version:    "$Revision: 1.19 $",
		Annotation: "step1 nevts:10",
		Name:       "Applications",
	}
	p.OutputModules = []OutputModule{{
		Label:         "FEVTDEBUGoutput",
		Type:          "PoolOutputModule",
		SplitLevel:    0,
		AutoFlushSize: 5242880,
		EventContent:  "FEVTDEBUGEventContent",
		FileName:      opts.OutputFile,
		Dataset:       Dataset{FilterName: "", DataTier: "GEN-SIM-DIGI-RAW-HLT"},
	}}
	p.Mixing = Mixing{
		AverageNumber: 20.0,
		BunchSpace:    25,
		MinBunch:      -12,
		MaxBunch:      3,
		FileNames:     append([]string(nil), PileupFiles...),
	}
	p.GlobalTag = GlobalTag{
		Tag:   "PRE_LS172_V16::All",
		ToGet: []ConditionRecord{jetCorrection("AK8CaloHLT"), jetCorrection("AK8PFHLT")},
	}

	p.AddPath("digitisation_step", "pdigi")
	p.AddPath("L1simulation_step", "SimL1Emulator")
	p.AddPath("digi2raw_step", "DigiToRaw")
	p.AddPath("raw2digi_step", "RawToDigi")
	p.AddPath("L1Reco_step", "L1Reco")
	p.AddEndPath("endjob_step", "endOfProcess")
	p.AddEndPath("FEVTDEBUGoutput_step", "FEVTDEBUGoutput")

	p.SetSchedule("digitisation_step", "L1simulation_step", "digi2raw_step")
	p.ExtendSchedule(HLTSchedule)
	p.ExtendSchedule("raw2digi_step", "L1Reco_step", "endjob_step", "FEVTDEBUGoutput_step")

	return p.Customise(CustomizeHLTforMC, AddMonitoring, CustomisePostLS1)
}
