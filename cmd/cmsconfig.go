package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vlqtrig/trigstudy/cmssw"
)

var (
	cmsFormat    string // Output format: python or yaml
	cmsOutput    string // Output file ("" = stdout)
	cmsMaxEvents int    // Events to process
)

// writeProcess renders p in the requested format.
func writeProcess(w io.Writer, p *cmssw.Process, format string) error {
	switch format {
	case "python", "py":
		return p.WritePython(w)
	case "yaml":
		return p.WriteYAML(w)
	default:
		return fmt.Errorf("unknown format %q (python, yaml)", format)
	}
}

// cmsconfigCmd writes the step-1 simulation configuration
var cmsconfigCmd = &cobra.Command{
	Use:   "cmsconfig",
	Short: "Write the step-1 DIGI-L1-DIGI2RAW-HLT simulation configuration",
	Run: func(cmd *cobra.Command, args []string) {
		opts := cmssw.DefaultStep1Options()
		opts.MaxEvents = cmsMaxEvents
		p := cmssw.Step1(opts)

		var w io.Writer = os.Stdout
		if cmsOutput != "" {
			f, err := os.Create(cmsOutput)
			if err != nil {
				logrus.Fatalf("Failed to create %s: %v", cmsOutput, err)
			}
			defer func() { _ = f.Close() }()
			w = f
		}
		if err := writeProcess(w, p, cmsFormat); err != nil {
			logrus.Fatalf("Failed to write configuration: %v", err)
		}
		if cmsOutput != "" {
			logrus.Infof("Configuration written to %s", cmsOutput)
		}
	},
}

func init() {
	cmsconfigCmd.Flags().StringVar(&cmsFormat, "format", "python", "Output format (python, yaml)")
	cmsconfigCmd.Flags().StringVar(&cmsOutput, "output", "", "Output file (default stdout)")
	cmsconfigCmd.Flags().IntVar(&cmsMaxEvents, "max-events", cmssw.DefaultStep1Options().MaxEvents, "Number of events to process")
}
