package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vlqtrig/trigstudy/study"
	"github.com/vlqtrig/trigstudy/study/rootio"
	"github.com/vlqtrig/trigstudy/study/trace"
)

// Runner renders groups into an output directory.
type Runner struct {
	Settings   *study.Settings
	OutDir     string
	Decorators []Decorator
	Trace      *trace.PipelineTrace
}

// NewRunner returns a runner with the study decorators. tr may be nil.
func NewRunner(s *study.Settings, outDir string, tr *trace.PipelineTrace) *Runner {
	return &Runner{
		Settings:   s,
		OutDir:     outDir,
		Decorators: StudyDecorators(),
		Trace:      tr,
	}
}

// SaveNames names every group after its first wrapper. Repeated names get
// the first free numeric suffix so no group overwrites another, even when
// a suffixed name is also a real group name.
func SaveNames(groups [][]*study.Wrapper) []string {
	names := make([]string, len(groups))
	used := make(map[string]bool)
	for i, g := range groups {
		base := "empty"
		if len(g) > 0 {
			base = g[0].Name
		}
		name := base
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// Run renders all groups, at most Settings.MaxProcs at a time. The first
// failure cancels the groups not yet started.
func (r *Runner) Run(ctx context.Context, groups [][]*study.Wrapper) error {
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	names := SaveNames(groups)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Settings.MaxProcs)
	for i, grp := range groups {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files, err := r.RenderGroup(names[i], grp)
			if err != nil {
				return err
			}
			r.Trace.RecordRender(trace.RenderRecord{Group: names[i], Wrappers: len(grp), Files: files})
			return nil
		})
	}
	return g.Wait()
}

// RenderGroup draws one group and writes it in every configured format.
// It returns the written files.
func (r *Runner) RenderGroup(name string, ws []*study.Wrapper) ([]string, error) {
	c := NewCanvas(name, r.Settings.Canvas)
	if err := c.Draw(ws); err != nil {
		return nil, err
	}
	for _, d := range r.Decorators {
		d(c)
	}

	var files []string
	for _, format := range r.Settings.Formats {
		p := filepath.Join(r.OutDir, name+"."+format)
		if err := c.Save(p); err != nil {
			return files, err
		}
		files = append(files, p)
	}
	if r.Settings.RootFiles {
		p := filepath.Join(r.OutDir, name+".root")
		if err := rootio.WriteGroup(p, ws); err != nil {
			return files, err
		}
		files = append(files, p)
	}
	logrus.Debugf("rendered %s (%d objects, %d files)", name, len(ws), len(files))
	return files, nil
}
