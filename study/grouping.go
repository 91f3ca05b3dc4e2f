package study

import (
	"slices"
	"strconv"
	"strings"
)

// GroupKey is the key wrappers are grouped by: whether the in-file path
// contains STMarker, followed by the name with EffSuffix removed. A raw
// distribution and its efficiencies therefore share a key.
func GroupKey(w *Wrapper) string {
	return strconv.FormatBool(strings.Contains(w.InFilePath, STMarker)) +
		strings.ReplaceAll(w.Name, EffSuffix, "")
}

// GroupPlots sorts wrappers into canvases. The input is stable sorted by
// combination membership (non-combinations first), by reversed name and by
// GroupKey, then cut into runs of equal key. Within a run, efficiencies
// are moved behind the other wrappers so they are drawn on top.
func GroupPlots(ws []*Wrapper) [][]*Wrapper {
	ws = slices.Clone(ws)
	slices.SortStableFunc(ws, func(a, b *Wrapper) int {
		return compareBool(isCombo(a), isCombo(b))
	})
	slices.SortStableFunc(ws, func(a, b *Wrapper) int {
		return strings.Compare(reverse(a.Name), reverse(b.Name))
	})
	slices.SortStableFunc(ws, func(a, b *Wrapper) int {
		return strings.Compare(GroupKey(a), GroupKey(b))
	})

	var groups [][]*Wrapper
	for i := 0; i < len(ws); {
		key := GroupKey(ws[i])
		j := i + 1
		for j < len(ws) && GroupKey(ws[j]) == key {
			j++
		}
		g := slices.Clone(ws[i:j])
		slices.SortStableFunc(g, func(a, b *Wrapper) int {
			return compareBool(isEff(a), isEff(b))
		})
		groups = append(groups, g)
		i = j
	}
	return groups
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

func reverse(s string) string {
	r := []rune(s)
	slices.Reverse(r)
	return string(r)
}
