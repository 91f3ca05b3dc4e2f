package rootio

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/root"

	"github.com/vlqtrig/trigstudy/study"
	"github.com/vlqtrig/trigstudy/study/hist"
)

// Dir is a named directory of histograms.
type Dir struct {
	Name  string
	Hists []*hist.H1
}

// WriteDirs creates a ROOT file holding one directory per Dir.
func WriteDirs(filePath string, dirs []Dir) (err error) {
	f, err := groot.Create(filePath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filePath, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", filePath, cerr)
		}
	}()

	for _, d := range dirs {
		sub, err := riofs.Dir(f).Mkdir(d.Name)
		if err != nil {
			return fmt.Errorf("creating directory %s: %w", d.Name, err)
		}
		for _, h := range d.Hists {
			if err := sub.Put(h.Name, toROOT(h)); err != nil {
				return fmt.Errorf("writing %s/%s: %w", d.Name, h.Name, err)
			}
		}
	}
	return nil
}

// WriteGroup stores the payloads of a rendered group in a flat ROOT file.
// Histograms become TH1D, graphs TGraphAsymmErrors. Repeated names get a
// numeric suffix.
func WriteGroup(filePath string, ws []*study.Wrapper) (err error) {
	f, err := groot.Create(filePath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filePath, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", filePath, cerr)
		}
	}()

	used := make(map[string]int)
	for _, w := range ws {
		name := w.Name
		if n := used[w.Name]; n > 0 {
			name = fmt.Sprintf("%s_%d", w.Name, n)
		}
		used[w.Name]++

		var obj root.Object
		switch {
		case w.Graph != nil:
			s2 := hist.ToS2D(w.Graph)
			s2.Annotation()["name"] = name
			s2.Annotation()["title"] = JoinTitle(w.Graph.Title, w.Graph.XTitle, w.Graph.YTitle)
			obj = rhist.NewGraphAsymmErrorsFrom(s2)
		case w.Hist != nil:
			h := w.Hist.Clone()
			h.Name = name
			obj = toROOT(h)
		default:
			continue
		}
		if err := f.Put(name, obj); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

func toROOT(h *hist.H1) *rhist.H1D {
	hh := hist.ToHbook(h)
	hh.Annotation()["title"] = JoinTitle(h.Title, h.XTitle, h.YTitle)
	return rhist.NewH1DFrom(hh)
}
