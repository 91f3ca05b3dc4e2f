// Package rootio finds, reads and writes the ROOT files of a study.
package rootio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/root"
	"go-hep.org/x/hep/hbook/rootcnv"
	"golang.org/x/sync/errgroup"

	"github.com/vlqtrig/trigstudy/study"
	"github.com/vlqtrig/trigstudy/study/hist"
)

// ErrNoInputs is returned when no input file matches the pattern.
var ErrNoInputs = errors.New("no input files")

// Discover returns the files below dir matching the doublestar pattern,
// sorted by path.
func Discover(dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid input pattern %q", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("globbing %s in %s: %w", pattern, dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s in %s: %w", pattern, dir, ErrNoInputs)
	}
	files := make([]string, len(matches))
	for i, m := range matches {
		files[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	slices.Sort(files)
	return files, nil
}

// LoadFile reads every one-dimensional histogram of a ROOT file,
// descending into directories. accept is called with the in-file path of
// every histogram; a nil accept keeps everything. Other objects are
// skipped.
func LoadFile(filePath string, accept func(inFilePath string) bool) ([]*study.Wrapper, error) {
	f, err := groot.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filePath, err)
	}
	defer f.Close()

	var out []*study.Wrapper
	err = walk(f, "", func(inFilePath string, obj root.Object) error {
		switch o := obj.(type) {
		case rhist.H2:
			logrus.Debugf("skipping 2D histogram %s:%s", filePath, inFilePath)
		case rhist.H1:
			if accept != nil && !accept(inFilePath) {
				return nil
			}
			h, err := hist.FromHbook(rootcnv.H1D(o))
			if err != nil {
				return fmt.Errorf("converting %s:%s: %w", filePath, inFilePath, err)
			}
			h.Name = path.Base(inFilePath)
			h.Title, h.XTitle, h.YTitle = SplitTitle(o.Title())
			h.SetEntries(int64(o.Entries()))
			out = append(out, study.NewHistWrapper(inFilePath, filePath, h))
		default:
			logrus.Debugf("skipping %s %s:%s", obj.Class(), filePath, inFilePath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.Debugf("loaded %d histograms from %s", len(out), filePath)
	return out, nil
}

// walk calls fn for every non-directory object below dir. Only the first
// cycle of every key is visited.
func walk(dir riofs.Directory, prefix string, fn func(string, root.Object) error) error {
	seen := make(map[string]bool)
	for _, k := range dir.Keys() {
		if seen[k.Name()] {
			continue
		}
		seen[k.Name()] = true

		p := path.Join(prefix, k.Name())
		obj, err := k.Object()
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		if sub, ok := obj.(riofs.Directory); ok {
			if err := walk(sub, p, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(p, obj); err != nil {
			return err
		}
	}
	return nil
}

// LoadAll reads files concurrently and concatenates the wrappers in the
// order of files. accept runs on the calling goroutine once all files are
// read, in file order and then in-file order, so it may record its
// decisions without locking.
func LoadAll(ctx context.Context, files []string, accept func(inFilePath string) bool) ([]*study.Wrapper, error) {
	results := make([][]*study.Wrapper, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ws, err := LoadFile(file, nil)
			if err != nil {
				return err
			}
			results[i] = ws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := slices.Concat(results...)
	if accept == nil {
		return all, nil
	}
	out := all[:0]
	for _, w := range all {
		if accept(w.InFilePath) {
			out = append(out, w)
		}
	}
	return out, nil
}

// SplitTitle splits a ROOT title "title;x title;y title" into its parts.
func SplitTitle(s string) (title, xTitle, yTitle string) {
	parts := strings.SplitN(s, ";", 3)
	title = parts[0]
	if len(parts) > 1 {
		xTitle = parts[1]
	}
	if len(parts) > 2 {
		yTitle = parts[2]
	}
	return title, xTitle, yTitle
}

// JoinTitle is the inverse of SplitTitle.
func JoinTitle(title, xTitle, yTitle string) string {
	if xTitle == "" && yTitle == "" {
		return title
	}
	return title + ";" + xTitle + ";" + yTitle
}
