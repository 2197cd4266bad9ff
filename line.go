package pathsimp

import "math"

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

var _ ParametricCurve = Line{}

// CrossingPoint computes the point where two lines, if extended to infinity,
// would cross. It returns false if the lines are parallel or so close to
// parallel that the crossing isn't meaningful.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	s, _, ok := l.crossing(o)
	if !ok {
		return Point{}, false
	}
	return l.P0.Translate(l.P1.Sub(l.P0).Mul(s)), true
}

// crossing returns the parameters along l and along o of the point where the
// extended lines cross.
func (l Line) crossing(o Line) (s, u float64, ok bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	den := ab.Cross(cd)
	if den == 0 || math.Abs(den) <= 1e-12*ab.Hypot()*cd.Hypot() {
		return 0, 0, false
	}
	ac := o.P0.Sub(l.P0)
	return ac.Cross(cd) / den, ac.Cross(ab) / den, true
}

func (l Line) IsInf() bool {
	return l.P0.IsInf() || l.P1.IsInf()
}

func (l Line) IsNaN() bool {
	return l.P0.IsNaN() || l.P1.IsNaN()
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Nearest returns the squared distance from pt to the closest point on the
// segment, and that point's parameter.
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) Extrema() ([MaxExtrema]float64, int) {
	return [MaxExtrema]float64{}, 0
}

func (l Line) SignedArea() float64 {
	return Vec2(l.P0).Cross(Vec2(l.P1)) * 0.5
}

func (l Line) Tangents() (Vec2, Vec2) {
	d := l.P1.Sub(l.P0)
	return d, d
}

func (l Line) Seg() PathSegment {
	return PathSegment{Kind: LineKind, P0: l.P0, P1: l.P1}
}
