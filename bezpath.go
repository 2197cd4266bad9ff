package pathsimp

import (
	"fmt"
	"iter"
	"slices"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic bezier using the current location and the two points.
	QuadToKind
	// Draw a cubic bezier using the current location and the three points.
	CubicToKind
	// Close off the path.
	ClosePathKind
)

func (k PathElementKind) String() string {
	switch k {
	case MoveToKind:
		return "MoveTo"
	case LineToKind:
		return "LineTo"
	case QuadToKind:
		return "QuadTo"
	case CubicToKind:
		return "CubicTo"
	case ClosePathKind:
		return "ClosePath"
	default:
		return "InvalidPathElement"
	}
}

// NumPoints returns the number of points carried by elements of this kind,
// or -1 for unknown kinds.
func (k PathElementKind) NumPoints() int {
	switch k {
	case MoveToKind, LineToKind:
		return 1
	case QuadToKind:
		return 2
	case CubicToKind:
		return 3
	case ClosePathKind:
		return 0
	default:
		return -1
	}
}

// PathElement is a single draw command of a Bézier path.
//
// Points are stored in drawing order with the end point last: a QuadTo uses P0
// as its control point and P1 as its end point, a CubicTo uses P0 and P1 as
// control points and P2 as its end point. Unused points are zero.
//
// A valid path has a MoveTo at the beginning of each subpath.
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
}

func (el PathElement) String() string {
	return fmt.Sprintf("%s(%s, %s, %s)", el.Kind, el.P0, el.P1, el.P2)
}

func (el PathElement) IsInf() bool {
	return el.P0.IsInf() || el.P1.IsInf() || el.P2.IsInf()
}

func (el PathElement) IsNaN() bool {
	return el.P0.IsNaN() || el.P1.IsNaN() || el.P2.IsNaN()
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p0, p1 Point) PathElement {
	return PathElement{Kind: QuadToKind, P0: p0, P1: p1}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

// NewCommand builds a path element of the given kind from its points. It
// fails with [ErrInvalidCommand] if the number of points doesn't match the
// kind.
func NewCommand(kind PathElementKind, pts ...Point) (PathElement, error) {
	n := kind.NumPoints()
	if n < 0 {
		return PathElement{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidCommand, int(kind))
	}
	if len(pts) != n {
		return PathElement{}, fmt.Errorf("%w: %s takes %d points, got %d", ErrInvalidCommand, kind, n, len(pts))
	}
	el := PathElement{Kind: kind}
	dst := [3]*Point{&el.P0, &el.P1, &el.P2}
	for i, pt := range pts {
		*dst[i] = pt
	}
	return el, nil
}

// Validate checks that the element has a known kind and that all of its
// points are finite.
func (el PathElement) Validate() error {
	n := el.Kind.NumPoints()
	if n < 0 {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidCommand, int(el.Kind))
	}
	for i, pt := range el.Points() {
		if !pt.IsFinite() {
			return fmt.Errorf("%w: %s point %d is not finite: %s", ErrInvalidCommand, el.Kind, i, pt)
		}
	}
	return nil
}

// Points returns the element's points in drawing order.
func (el PathElement) Points() []Point {
	switch el.Kind {
	case MoveToKind, LineToKind:
		return []Point{el.P0}
	case QuadToKind:
		return []Point{el.P0, el.P1}
	case CubicToKind:
		return []Point{el.P0, el.P1, el.P2}
	default:
		return nil
	}
}

// EndPoint returns the end point of the path element, or false if none exists. It exists
// for all kinds except for [ClosePathKind].
func (el PathElement) EndPoint() (Point, bool) {
	switch el.Kind {
	case MoveToKind:
		return el.P0, true
	case LineToKind:
		return el.P0, true
	case QuadToKind:
		return el.P1, true
	case CubicToKind:
		return el.P2, true
	default:
		return Point{}, false
	}
}

// IsCurve reports whether the element is a quadratic or cubic Bézier.
func (el PathElement) IsCurve() bool {
	return el.Kind == QuadToKind || el.Kind == CubicToKind
}

// Segment returns the segment drawn by el when starting at start. ClosePath
// and MoveTo produce no segment.
func (el PathElement) Segment(start Point) (PathSegment, bool) {
	switch el.Kind {
	case LineToKind:
		return Line{start, el.P0}.Seg(), true
	case QuadToKind:
		return QuadBez{start, el.P0, el.P1}.Seg(), true
	case CubicToKind:
		return CubicBez{start, el.P0, el.P1, el.P2}.Seg(), true
	default:
		return PathSegment{}, false
	}
}

type PathSegmentKind int

const (
	// A line segment.
	LineKind PathSegmentKind = iota + 1
	// A quadratic Bézier segment.
	QuadKind
	// A cubic Bézier segment.
	CubicKind
)

// PathSegment represents a segment of a Bézier path. This type acts as a sort of tagged
// union representing all possible path segments ([Line], [QuadBez], and [CubicBez]).
type PathSegment struct {
	// This avoids having to allocate for path segments.

	Kind PathSegmentKind
	P0   Point
	P1   Point
	P2   Point
	P3   Point
}

var (
	_ ParametricCurve = PathSegment{}
	_ SignedAreaer    = PathSegment{}
)

func (seg PathSegment) BoundingBox() Rect {
	switch seg.Kind {
	case LineKind:
		return seg.Line().BoundingBox()
	case QuadKind:
		return seg.Quad().BoundingBox()
	case CubicKind:
		return seg.Cubic().BoundingBox()
	default:
		return Rect{}
	}
}

// Line returns the line represented by this segment. This is only valid when Kind ==
// LineKind.
func (seg PathSegment) Line() Line { return Line{seg.P0, seg.P1} }

// Quad returns the quadratic Bézier represented by this segment. This is only valid when Kind ==
// QuadKind.
func (seg PathSegment) Quad() QuadBez { return QuadBez{seg.P0, seg.P1, seg.P2} }

// Cubic converts seg to a cubic Bézier. This is valid for any Kind.
func (seg PathSegment) Cubic() CubicBez {
	switch seg.Kind {
	case LineKind:
		p0 := seg.P0
		p1 := seg.P1
		return CubicBez{p0, p0, p1, p1}
	case QuadKind:
		return seg.Quad().Raise()
	case CubicKind:
		return CubicBez{seg.P0, seg.P1, seg.P2, seg.P3}
	default:
		return CubicBez{}
	}
}

func (seg PathSegment) Eval(t float64) Point {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Eval(t)
	case QuadKind:
		return seg.Quad().Eval(t)
	case CubicKind:
		return seg.Cubic().Eval(t)
	default:
		return Point{}
	}
}

func (seg PathSegment) Start() Point {
	return seg.P0
}

func (seg PathSegment) End() Point {
	switch seg.Kind {
	case LineKind:
		return seg.P1
	case QuadKind:
		return seg.P2
	case CubicKind:
		return seg.P3
	default:
		return Point{}
	}
}

func (seg PathSegment) SignedArea() float64 {
	switch seg.Kind {
	case LineKind:
		return seg.Line().SignedArea()
	case QuadKind:
		return seg.Quad().SignedArea()
	case CubicKind:
		return seg.Cubic().SignedArea()
	default:
		return 0
	}
}

func (seg PathSegment) Extrema() ([MaxExtrema]float64, int) {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Extrema()
	case QuadKind:
		return seg.Quad().Extrema()
	case CubicKind:
		return seg.Cubic().Extrema()
	default:
		return [MaxExtrema]float64{}, 0
	}
}

// Points returns the segment's start point, control points and end point.
func (seg PathSegment) Points() []Point {
	switch seg.Kind {
	case LineKind:
		return []Point{seg.P0, seg.P1}
	case QuadKind:
		return []Point{seg.P0, seg.P1, seg.P2}
	case CubicKind:
		return []Point{seg.P0, seg.P1, seg.P2, seg.P3}
	default:
		return nil
	}
}

// PathElement returns the PathElement corresponding to the segment, discarding the
// segment's starting point.
func (seg PathSegment) PathElement() PathElement {
	switch seg.Kind {
	case LineKind:
		return LineTo(seg.P1)
	case QuadKind:
		return QuadTo(seg.P1, seg.P2)
	case CubicKind:
		return CubicTo(seg.P1, seg.P2, seg.P3)
	default:
		return PathElement{}
	}
}

// Tangents computes endpoint tangents of a path segment.
//
// This version is robust to the path segment not being a regular curve.
func (seg PathSegment) Tangents() (Vec2, Vec2) {
	switch seg.Kind {
	case LineKind:
		return seg.Line().Tangents()
	case QuadKind:
		return seg.Quad().Tangents()
	case CubicKind:
		return seg.Cubic().Tangents()
	default:
		panic(fmt.Sprintf("invalid PathSegment kind %v", seg.Kind))
	}
}

// BezPath is a Bézier path made of lines, quadratics and cubics. It may
// contain multiple subpaths.
type BezPath []PathElement

// Push adds an element to the path.
func (p *BezPath) Push(el PathElement) {
	*p = append(*p, el)
}

// MoveTo pushes a "move to" element onto the path.
func (p *BezPath) MoveTo(pt Point) { p.Push(MoveTo(pt)) }

// LineTo pushes a "line to" element onto the path.
//
// If LineTo is called immediately after ClosePath then the current
// subpath starts at the initial point of the previous subpath.
func (p *BezPath) LineTo(pt Point) { p.Push(LineTo(pt)) }

// QuadTo pushes a "quad to" element onto the path.
func (p *BezPath) QuadTo(p1, p2 Point) { p.Push(QuadTo(p1, p2)) }

// CubicTo pushes a "curve to" element onto the path.
func (p *BezPath) CubicTo(p1, p2, p3 Point) { p.Push(CubicTo(p1, p2, p3)) }

// ClosePath pushes a "close path" element onto the path.
func (p *BezPath) ClosePath() { p.Push(ClosePath()) }

// Segments returns an iterator over the path's segments.
func (p BezPath) Segments() iter.Seq[PathSegment] { return Segments(slices.Values(p)) }

// Elements returns an iterator over the path's elements.
func (p BezPath) Elements() iter.Seq[PathElement] { return slices.Values(p) }

// SignedArea returns the sum of the signed areas of all segments, including
// the implicit lines added by ClosePath.
func (p BezPath) SignedArea() float64 {
	var area float64
	for seg := range p.Segments() {
		area += seg.SignedArea()
	}
	return area
}

// HasSegments reports whether the path contains any segments. A path that consists only
// of MoveTo and ClosePath elements has no segments.
func (p BezPath) HasSegments() bool {
	for i := range p {
		el := p[i]
		if el.Kind != MoveToKind && el.Kind != ClosePathKind {
			return true
		}
	}
	return false
}

// Validate validates every element of the path.
func (p BezPath) Validate() error {
	for i, el := range p {
		if err := el.Validate(); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// ControlBox returns a rectangle that conservatively encloses the path.
//
// This uses control points directly rather than computing tight bounds for
// curve elements.
func (p BezPath) ControlBox() Rect {
	first := true
	var cbox Rect
	for i := range p {
		for _, pt := range p[i].Points() {
			if first {
				first = false
				cbox = NewRectFromPoints(pt, pt)
			} else {
				cbox = cbox.UnionPoint(pt)
			}
		}
	}
	return cbox
}

// Subpaths splits the path at every MoveTo. Each returned subpath starts with
// exactly one MoveTo. A drawing element following a ClosePath without an
// intervening MoveTo starts a new subpath at the previous subpath's start
// point.
//
// It fails with [ErrInvalidCommand] if the path doesn't begin with a MoveTo.
func (p BezPath) Subpaths() ([]BezPath, error) {
	sps, err := p.subpaths()
	if err != nil {
		return nil, err
	}
	var out []BezPath
	for _, sp := range sps {
		out = append(out, sp.els)
	}
	return out, nil
}

type subpath struct {
	els BezPath
	// implicit is set when els[0] is a MoveTo that isn't part of the
	// original path.
	implicit bool
}

func (p BezPath) subpaths() ([]subpath, error) {
	if len(p) == 0 {
		return nil, nil
	}
	if p[0].Kind != MoveToKind {
		return nil, fmt.Errorf("%w: path begins with %s instead of MoveTo", ErrInvalidCommand, p[0].Kind)
	}
	var out []subpath
	var cur subpath
	var start Point
	closed := false
	for _, el := range p {
		switch {
		case el.Kind == MoveToKind:
			if cur.els != nil {
				out = append(out, cur)
			}
			cur = subpath{els: BezPath{el}}
			start = el.P0
			closed = false
		case closed:
			out = append(out, cur)
			cur = subpath{els: BezPath{MoveTo(start), el}, implicit: true}
			closed = el.Kind == ClosePathKind
		default:
			cur.els = append(cur.els, el)
			closed = el.Kind == ClosePathKind
		}
	}
	return append(out, cur), nil
}
