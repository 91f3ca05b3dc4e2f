package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vlqtrig/trigstudy/study/rootio"
	"github.com/vlqtrig/trigstudy/study/selection"
)

var (
	genSeed   int64  // Seed of the toy generation
	genEvents int    // Events per lepton flavour
	genOutput string // Output ROOT file
	genCuts   string // Optional cuts YAML
)

// generateCmd writes a toy input file with the trigger-study layout
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a toy ROOT file with trigger-study histograms",
	Run: func(cmd *cobra.Command, args []string) {
		if genEvents < 1 {
			logrus.Fatalf("--events must be positive, got %d", genEvents)
		}
		cuts := selection.DefaultCuts()
		if genCuts != "" {
			var err error
			cuts, err = selection.LoadCuts(genCuts)
			if err != nil {
				logrus.Fatalf("Failed to load cuts: %v", err)
			}
		}

		dirs := selection.Generate(selection.NewKey(genSeed), genEvents, cuts)
		if err := rootio.WriteDirs(genOutput, dirs); err != nil {
			logrus.Fatalf("Failed to write %s: %v", genOutput, err)
		}
		logrus.Infof("Wrote %d directories with %d events per flavour to %s", len(dirs), genEvents, genOutput)
	},
}

func init() {
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Seed for toy event generation")
	generateCmd.Flags().IntVar(&genEvents, "events", 100000, "Events per lepton flavour")
	generateCmd.Flags().StringVar(&genOutput, "output", "trigstudy_toy.root", "Output ROOT file")
	generateCmd.Flags().StringVar(&genCuts, "cuts", "", "Path to selection cuts YAML")
}
