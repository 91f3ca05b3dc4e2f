package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vlqtrig/trigstudy/study"
	"github.com/vlqtrig/trigstudy/study/gallery"
	"github.com/vlqtrig/trigstudy/study/render"
	"github.com/vlqtrig/trigstudy/study/rootio"
	"github.com/vlqtrig/trigstudy/study/trace"
)

var (
	inputDir   string // Directory holding the input ROOT files
	pattern    string // Glob selecting input files, overrides the config
	outputDir  string // Parent of the plot output directory
	publishDir string // Web directory receiving a copy of the output
	configPath string // Optional plot settings YAML
	watch      bool   // Re-run whenever an input file changes
)

// plotOptions holds everything one plot run needs.
type plotOptions struct {
	Settings   *study.Settings
	InputDir   string
	OutputDir  string
	PublishDir string
}

// outDir is the directory a run writes into.
func (o plotOptions) outDir() string {
	return filepath.Join(o.OutputDir, o.Settings.Name)
}

// runPlot loads every input, runs the pipeline, renders the groups, builds
// the gallery and optionally publishes it. The output directory is
// recreated on every run.
func runPlot(ctx context.Context, o plotOptions) (*trace.TraceSummary, error) {
	out := o.outDir()
	if err := os.RemoveAll(out); err != nil {
		return nil, fmt.Errorf("clearing %s: %w", out, err)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", out, err)
	}

	files, err := rootio.Discover(o.InputDir, o.Settings.Pattern)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Found %d input files in %s", len(files), o.InputDir)

	tr := trace.NewPipelineTrace(trace.TraceConfig{Level: trace.TraceLevel(o.Settings.Trace)})
	p := study.NewPipeline(o.Settings, tr)

	wrappers, err := rootio.LoadAll(ctx, files, p.InputFilter())
	if err != nil {
		return nil, err
	}
	logrus.Infof("Loaded %d histograms", len(wrappers))

	groups, err := p.Run(wrappers)
	if err != nil {
		return nil, fmt.Errorf("running pipeline: %w", err)
	}
	logrus.Infof("Rendering %d groups into %s", len(groups), out)

	if err := render.NewRunner(o.Settings, out, tr).Run(ctx, groups); err != nil {
		return nil, err
	}
	if err := gallery.Create(out); err != nil {
		return nil, fmt.Errorf("creating gallery: %w", err)
	}
	if o.PublishDir != "" {
		target, err := gallery.Publish(out, o.PublishDir)
		if err != nil {
			return nil, err
		}
		logrus.Infof("Published to %s", target)
	}
	return trace.Summarize(tr), nil
}

func logSummary(s *trace.TraceSummary) {
	if s.TotalDecisions == 0 && s.RenderedGroups == 0 {
		return
	}
	logrus.Infof("Trace: %d decisions, %d groups, %d files", s.TotalDecisions, s.RenderedGroups, s.RenderedFiles)
	actions := make([]string, 0, len(s.ActionCounts))
	for a := range s.ActionCounts {
		actions = append(actions, string(a))
	}
	sort.Strings(actions)
	for _, a := range actions {
		logrus.Infof("  %-10s %d", a, s.ActionCounts[trace.Action(a)])
	}
}

// inputMatcher reports whether a changed file is an input of the run.
func inputMatcher(dir, pattern string) func(string) bool {
	return func(name string) bool {
		rel, err := filepath.Rel(dir, name)
		if err != nil {
			return false
		}
		ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		return err == nil && ok
	}
}

// plotCmd runs the plot pipeline over a directory of ROOT files
var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot trigger efficiencies and distributions from ROOT files",
	Run: func(cmd *cobra.Command, args []string) {
		settings := study.DefaultSettings()
		if configPath != "" {
			var err error
			settings, err = study.LoadSettings(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load plot settings: %v", err)
			}
		}
		if pattern != "" {
			settings.Pattern = pattern
		}
		if !doublestar.ValidatePattern(settings.Pattern) {
			logrus.Fatalf("Invalid input pattern: %s", settings.Pattern)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		o := plotOptions{Settings: settings, InputDir: inputDir, OutputDir: outputDir, PublishDir: publishDir}
		run := func() {
			start := time.Now()
			summary, err := runPlot(ctx, o)
			if err != nil {
				if watch {
					logrus.Errorf("Plot run failed: %v", err)
					return
				}
				logrus.Fatalf("Plot run failed: %v", err)
			}
			logSummary(summary)
			logrus.Infof("Plots written to %s in %s", o.outDir(), time.Since(start).Round(time.Millisecond))
		}

		run()
		if !watch {
			return
		}
		logrus.Infof("Watching %s for changes", inputDir)
		if err := watchInputs(ctx, inputDir, inputMatcher(inputDir, settings.Pattern), watchDebounce, run); err != nil {
			logrus.Fatalf("Watch failed: %v", err)
		}
	},
}

func init() {
	plotCmd.Flags().StringVar(&inputDir, "input-dir", ".", "Directory holding the input ROOT files")
	plotCmd.Flags().StringVar(&pattern, "pattern", "", "Glob selecting input files (default from config, *.root)")
	plotCmd.Flags().StringVar(&outputDir, "output-dir", "outputs", "Parent of the plot output directory")
	plotCmd.Flags().StringVar(&publishDir, "publish-dir", "", "Copy the output tree into this web directory")
	plotCmd.Flags().StringVar(&configPath, "config", "", "Path to plot settings YAML (overrides the built-in study settings)")
	plotCmd.Flags().BoolVar(&watch, "watch", false, "Re-run whenever an input file changes")
}
