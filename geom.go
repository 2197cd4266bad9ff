package pathsimp

import (
	"fmt"
	"math"
)

// areaEpsilon is the magnitude below which an area counts as zero when
// comparing areas.
const areaEpsilon = 1e-9

// Angle returns the angle of the vector from a to b, in radians. If clamped
// is true, the angle is normalized to [0, 2π), otherwise it is in [-π, π].
func Angle(a, b Point, clamped bool) float64 {
	th := b.Sub(a).Angle()
	if clamped && th < 0 {
		th += 2 * math.Pi
	}
	return th
}

// SquareDistance returns the squared euclidean distance between a and b.
func SquareDistance(a, b Point) float64 {
	return a.DistanceSquared(b)
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return a.Distance(b)
}

// PolygonArea returns the signed shoelace area of the polygon formed by pts,
// using the implicit edge from the last point back to the first.
//
// Its sign encodes the orientation of the point fan.
func PolygonArea(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	var area float64
	o := pts[0]
	for i := 1; i < len(pts)-1; i++ {
		area += pts[i].Sub(o).Cross(pts[i+1].Sub(o))
	}
	return area * 0.5
}

// PathArea returns the signed area enclosed by the path fragment that starts
// at start and is made of els, closed by the chord from its end back to start.
//
// Curves are integrated exactly, so the areas of a fragment and of a
// candidate replacement with the same end points are directly comparable.
func PathArea(start Point, els []PathElement) float64 {
	var area float64
	first, cur := start, start
	for _, el := range els {
		switch el.Kind {
		case MoveToKind:
			area += Line{cur, first}.SignedArea()
			first, cur = el.P0, el.P0
		case ClosePathKind:
			area += Line{cur, first}.SignedArea()
			cur = first
		default:
			seg, _ := el.Segment(cur)
			area += seg.SignedArea()
			cur = seg.End()
		}
	}
	return area + Line{cur, first}.SignedArea()
}

// RelativeAreaDiff returns |a−b| / max(|a|, ε) as a percentage. When both
// areas are practically zero, the difference is zero.
func RelativeAreaDiff(a, b float64) float64 {
	if math.Abs(a) < areaEpsilon && math.Abs(b) < areaEpsilon {
		return 0
	}
	return math.Abs(a-b) / max(math.Abs(a), areaEpsilon) * 100
}

// CurveSplit is the result of evaluating a Bézier with De Casteljau's
// algorithm.
type CurveSplit struct {
	// Point is the point on the curve.
	Point Point
	// Tangent is the derivative direction at Point, not normalized.
	Tangent Vec2
	// TangentAngle is the angle of Tangent.
	TangentAngle float64
	// Left and Right are the control polygons of the two curves produced by
	// splitting at the parameter.
	Left, Right []Point
}

// PointAtT evaluates the Bézier curve with the given control points (2 for a
// line, 3 for a quadratic, 4 for a cubic) at t.
//
// t is not restricted to [0, 1]. Values outside that range extrapolate the
// curve.
func PointAtT(pts []Point, t float64) (Point, error) {
	if len(pts) < 2 || len(pts) > 4 {
		return Point{}, fmt.Errorf("%w: Bézier evaluation needs 2 to 4 points, got %d", ErrInvalidCommand, len(pts))
	}
	var buf [4]Point
	cur := buf[:len(pts)]
	copy(cur, pts)
	for n := len(cur) - 1; n > 0; n-- {
		for i := range n {
			cur[i] = cur[i].Lerp(cur[i+1], t)
		}
	}
	return cur[0], nil
}

// PointAtTWithTangent is like [PointAtT] but also returns the tangent at t and
// the control polygons of both halves.
//
// It fails with [ErrDegenerateGeometry] if the tangent has zero length, which
// happens at cusps and for coincident control points.
func PointAtTWithTangent(pts []Point, t float64) (CurveSplit, error) {
	n := len(pts)
	if n < 2 || n > 4 {
		return CurveSplit{}, fmt.Errorf("%w: Bézier evaluation needs 2 to 4 points, got %d", ErrInvalidCommand, n)
	}
	left := make([]Point, n)
	right := make([]Point, n)
	var buf [4]Point
	cur := buf[:n]
	copy(cur, pts)
	left[0] = cur[0]
	right[n-1] = cur[n-1]
	var tangent Vec2
	for k := n - 1; k > 0; k-- {
		if k == 1 {
			tangent = cur[1].Sub(cur[0])
		}
		for i := range k {
			cur[i] = cur[i].Lerp(cur[i+1], t)
		}
		left[n-k] = cur[0]
		right[k-1] = cur[k-1]
	}
	split := CurveSplit{
		Point:        cur[0],
		Tangent:      tangent,
		TangentAngle: tangent.Angle(),
		Left:         left,
		Right:        right,
	}
	if tangent.IsZero() {
		return split, fmt.Errorf("%w: zero tangent at t=%g", ErrDegenerateGeometry, t)
	}
	return split, nil
}

// LineIntersection returns the intersection of the line through p1 and p2
// with the line through p3 and p4. If segmentOnly is set, the intersection
// must lie on both segments.
//
// It fails with [ErrNoIntersection] if the lines are parallel or if
// segmentOnly is set and the segments don't meet.
func LineIntersection(p1, p2, p3, p4 Point, segmentOnly bool) (Point, error) {
	l, o := Line{p1, p2}, Line{p3, p4}
	if segmentOnly {
		s, u, ok := l.crossing(o)
		if !ok || s < 0 || s > 1 || u < 0 || u > 1 {
			return Point{}, ErrNoIntersection
		}
	}
	pt, ok := l.CrossingPoint(o)
	if !ok {
		return Point{}, ErrNoIntersection
	}
	return pt, nil
}

// BezierHasExtreme reports whether the tangent direction of the curve
// starting at start with the given control points (end point last) passes
// through a multiple of 90° in the curve's interior. The angles of the
// control polygon legs are unwrapped along the shorter turn and the range
// they cover is shrunk by angleThreshold radians on both sides, so tangents
// that only touch an axis direction at the ends don't count.
func BezierHasExtreme(start Point, controls []Point, angleThreshold float64) bool {
	const quarter = math.Pi / 2
	prev := start
	var a, lo, hi float64
	n := 0
	for _, pt := range controls {
		leg := pt.Sub(prev)
		if leg.IsZero() {
			continue
		}
		prev = pt
		th := leg.Angle()
		if n == 0 {
			a = th
			lo, hi = th, th
		} else {
			a += math.Remainder(th-a, 2*math.Pi)
			lo = min(lo, a)
			hi = max(hi, a)
		}
		n++
	}
	lo += angleThreshold
	hi -= angleThreshold
	if n < 2 || lo >= hi {
		return false
	}
	k := math.Floor(lo/quarter) + 1
	return k*quarter < hi
}

// Flatness describes how close a curve is to its chord.
type Flatness struct {
	// Flat reports whether every point is within thresh of the chord.
	Flat bool
	// MaxDeviation is the largest distance of an interior point from the chord.
	MaxDeviation float64
	// Ratio is the factor by which tolerances should be divided. It is 1
	// for curves that aren't flat and grows up to flatRatioLimit as the
	// curve approaches a straight line.
	Ratio float64
}

// flatRatioLimit caps the tolerance tightening for flat geometry.
const flatRatioLimit = 4

// CommandIsFlat measures the deviation of the interior points of pts from
// the chord between the first and last point.
func CommandIsFlat(pts []Point, thresh float64) Flatness {
	if len(pts) < 3 {
		return Flatness{Flat: true, Ratio: flatRatioLimit}
	}
	a, b := pts[0], pts[len(pts)-1]
	chord := b.Sub(a)
	l := chord.Hypot()
	var maxDev float64
	for _, pt := range pts[1 : len(pts)-1] {
		var d float64
		if l == 0 {
			d = pt.Distance(a)
		} else {
			d = math.Abs(chord.Cross(pt.Sub(a))) / l
		}
		maxDev = max(maxDev, d)
	}
	f := Flatness{Flat: maxDev < thresh, MaxDeviation: maxDev, Ratio: 1}
	if f.Flat {
		f.Ratio = thresh / max(maxDev, thresh/flatRatioLimit)
	}
	return f
}

// PointsBoundingBox returns the smallest rectangle containing all points.
// It returns the zero rectangle for no points.
func PointsBoundingBox(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := NewRectFromPoints(pts[0], pts[0])
	for _, pt := range pts[1:] {
		r = r.UnionPoint(pt)
	}
	return r
}

// angleBetween returns the unsigned angle between two vectors, in [0, π].
func angleBetween(a, b Vec2) float64 {
	return math.Abs(math.Atan2(a.Cross(b), a.Dot(b)))
}

// bisector returns the direction halfway between the unit vectors of a and b.
func bisector(a, b Vec2) Vec2 {
	return a.Normalize().Add(b.Normalize())
}
