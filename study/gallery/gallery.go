// Package gallery writes a static HTML index over a tree of rendered plots.
package gallery

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

// IndexFile is the name of the page written into every directory.
const IndexFile = "index.html"

// imageFormats in order of preference for the inline preview.
var imageFormats = []string{"png", "svg", "jpg", "jpeg"}

// Plot is one rendered canvas and the formats it was saved in.
type Plot struct {
	Name    string
	Preview string
	Files   []string
}

type page struct {
	Title   string
	Parent  bool
	Subdirs []string
	Plots   []Plot
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; }
.plot { display: inline-block; margin: 8px; text-align: center; }
.plot img { width: 500px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Parent}}<p><a href="../index.html">..</a></p>{{end}}
{{if .Subdirs}}<ul>
{{range .Subdirs}}<li><a href="{{.}}/index.html">{{.}}</a></li>
{{end}}</ul>{{end}}
{{range .Plots}}<div class="plot">
<h3>{{.Name}}</h3>
{{if .Preview}}<a href="{{.Preview}}"><img src="{{.Preview}}" alt="{{.Name}}"></a><br>{{end}}
{{range .Files}}<a href="{{.}}">{{.}}</a> {{end}}
</div>
{{end}}
</body>
</html>
`))

// Create writes an index page into root and every directory below it.
func Create(root string) error {
	return filepath.WalkDir(root, func(dir string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return writeIndex(root, dir)
	})
}

func writeIndex(root, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}
	p := page{Title: filepath.Base(dir), Parent: dir != root}
	plots := make(map[string]*Plot)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			p.Subdirs = append(p.Subdirs, name)
			continue
		}
		if name == IndexFile {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		pl, ok := plots[base]
		if !ok {
			pl = &Plot{Name: base}
			plots[base] = pl
		}
		pl.Files = append(pl.Files, name)
	}
	for _, pl := range plots {
		slices.Sort(pl.Files)
		pl.Preview = preview(pl.Files)
		p.Plots = append(p.Plots, *pl)
	}
	slices.SortFunc(p.Plots, func(a, b Plot) int { return strings.Compare(a.Name, b.Name) })

	f, err := os.Create(filepath.Join(dir, IndexFile))
	if err != nil {
		return fmt.Errorf("writing index of %s: %w", dir, err)
	}
	if err := indexTemplate.Execute(f, p); err != nil {
		f.Close()
		return fmt.Errorf("writing index of %s: %w", dir, err)
	}
	logrus.Debugf("gallery: %s (%d plots, %d directories)", dir, len(p.Plots), len(p.Subdirs))
	return f.Close()
}

func preview(files []string) string {
	for _, format := range imageFormats {
		for _, f := range files {
			if strings.EqualFold(strings.TrimPrefix(filepath.Ext(f), "."), format) {
				return f
			}
		}
	}
	return ""
}

// Publish replaces dst/<base of src> with a copy of src and returns the
// target directory.
func Publish(src, dst string) (string, error) {
	target := filepath.Join(dst, filepath.Base(src))
	if err := os.RemoveAll(target); err != nil {
		return "", fmt.Errorf("removing %s: %w", target, err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dst, err)
	}
	if err := os.CopyFS(target, os.DirFS(src)); err != nil {
		return "", fmt.Errorf("copying %s to %s: %w", src, target, err)
	}
	return target, nil
}
