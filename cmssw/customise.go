package cmssw

// CustomizeHLTforMC adapts the trigger menu to simulated input. Its content
// belongs to the framework; here it is only recorded.
var CustomizeHLTforMC = Customisation{
	Module: "HLTrigger.Configuration.customizeHLTforMC",
	Name:   "customizeHLTforMC",
	Apply:  func(p *Process) *Process { return p },
}

// AddMonitoring adds the memory and timing services.
var AddMonitoring = Customisation{
	Module: "Configuration.DataProcessing.Utils",
	Name:   "addMonitoring",
	Apply:  addMonitoring,
}

// CustomisePostLS1 applies the post-LS1 detector conditions. Recorded only.
var CustomisePostLS1 = Customisation{
	Module: "SLHCUpgradeSimulations.Configuration.postLS1Customs",
	Name:   "customisePostLS1",
	Apply:  func(p *Process) *Process { return p },
}

func addMonitoring(p *Process) *Process {
	p.AddService(Service{
		Label:   "SimpleMemoryCheck",
		Type:    "SimpleMemoryCheck",
		Params:  []BoolParam{{Name: "jobReportOutputOnly", Value: true}},
		AddedBy: "addMonitoring",
	})
	p.AddService(Service{
		Label:   "Timing",
		Type:    "Timing",
		Params:  []BoolParam{{Name: "summaryOnly", Value: true}},
		AddedBy: "addMonitoring",
	})
	return p
}
