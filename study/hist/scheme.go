package hist

import (
	"fmt"
	"math"
)

// Part is one piece of a bin-edge scheme: either a half-open range
// [start, stop) walked with step, or a list of explicit values.
type Part struct {
	Range  []float64 `yaml:"range,omitempty"`
	Values []float64 `yaml:"values,omitempty"`
}

// Scheme is an ordered list of parts whose expansion is a bin-edge sequence.
type Scheme []Part

// Span returns a Part covering [start, stop) with the given step.
func Span(start, stop, step float64) Part {
	return Part{Range: []float64{start, stop, step}}
}

// Values returns a Part holding explicit edges.
func Values(vs ...float64) Part {
	return Part{Values: vs}
}

// Edges expands the scheme and checks that the result is a valid binning.
func (s Scheme) Edges() ([]float64, error) {
	var edges []float64
	for i, p := range s {
		switch {
		case len(p.Range) > 0 && len(p.Values) > 0:
			return nil, fmt.Errorf("scheme part %d: range and values are exclusive", i)
		case len(p.Range) > 0:
			if len(p.Range) != 3 {
				return nil, fmt.Errorf("scheme part %d: range needs [start, stop, step]", i)
			}
			start, stop, step := p.Range[0], p.Range[1], p.Range[2]
			if step <= 0 {
				return nil, fmt.Errorf("scheme part %d: step must be positive", i)
			}
			n := int(math.Ceil((stop - start) / step))
			for j := 0; j < n; j++ {
				edges = append(edges, start+float64(j)*step)
			}
		default:
			edges = append(edges, p.Values...)
		}
	}
	if err := checkEdges(edges); err != nil {
		return nil, fmt.Errorf("expanding scheme: %w", err)
	}
	return edges, nil
}

// The fixed rebinning schemes of the trigger study.
var (
	LeptonPtScheme = Scheme{
		Span(0, 60, 4),
		Span(60, 100, 10),
		Span(100, 200, 20),
		Span(200, 350, 50),
		Values(400),
	}
	LeadJetPtScheme = Scheme{
		Span(50, 100, 20),
		Span(100, 300, 10),
		Span(300, 400, 20),
		Span(400, 650, 50),
		Values(700),
	}
	SubleadJetPtScheme = Scheme{
		Span(0, 250, 10),
		Span(250, 350, 20),
		Span(350, 450, 50),
		Values(500),
	}
	STScheme = Scheme{
		Values(100, 200, 250, 300, 350),
		Span(400, 1000, 20),
		Span(1000, 1400, 50),
		Span(1400, 2200, 200),
	}
)
