package hist

// Point is a graph point with asymmetric errors. The error fields are
// distances from X/Y, not absolute bounds.
type Point struct {
	X, Y        float64
	XLow, XHigh float64
	YLow, YHigh float64
}

// Graph is an ordered set of points with asymmetric errors, the
// counterpart of an efficiency curve.
type Graph struct {
	Name   string
	Title  string
	XTitle string
	YTitle string
	Points []Point
}

// Len returns the number of points.
func (g *Graph) Len() int { return len(g.Points) }

// XY returns the coordinates of point i.
func (g *Graph) XY(i int) (float64, float64) { return g.Points[i].X, g.Points[i].Y }

// XError returns the low and high x errors of point i.
func (g *Graph) XError(i int) (float64, float64) { return g.Points[i].XLow, g.Points[i].XHigh }

// YError returns the low and high y errors of point i.
func (g *Graph) YError(i int) (float64, float64) { return g.Points[i].YLow, g.Points[i].YHigh }

// Max returns the largest Y+YHigh, 0 for an empty graph.
func (g *Graph) Max() float64 {
	max := 0.0
	for _, p := range g.Points {
		if v := p.Y + p.YHigh; v > max {
			max = v
		}
	}
	return max
}

// Clone returns a deep copy.
func (g *Graph) Clone() *Graph {
	c := *g
	c.Points = append([]Point(nil), g.Points...)
	return &c
}
