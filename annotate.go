package pathsimp

import (
	"fmt"
	"math"
)

// CommandInfo holds the properties derived from a command and its
// neighbors.
type CommandInfo struct {
	// Start is the on-path point the command begins at.
	Start Point
	// End is the on-path point the command ends at. For ClosePath this is
	// the subpath's start point.
	End Point
	// Controls holds the NumControls control points of curves.
	Controls    [2]Point
	NumControls int

	// IsLineTo is set for LineTo and for ClosePath when it draws an
	// implicit closing line.
	IsLineTo    bool
	IsClosePath bool
	// IsExtreme is set when End lies on the subpath's bounding box.
	IsExtreme bool
	// IsCorner is set when the tangent direction changes sharply at Start,
	// between the previous curve and this one.
	IsCorner bool
	// HasDirectionChange is set when FanArea has the opposite sign of the
	// last non-zero fan area of the preceding run of curves.
	HasDirectionChange bool
	// FanArea is the signed area of the polygon formed by Start, the
	// control points and End.
	FanArea float64
}

// AnnotatedCommand is a command together with its derived properties. The
// embedded PathElement is a copy of the input and is never modified.
type AnnotatedCommand struct {
	PathElement
	Info CommandInfo
}

// ControlPoints returns the command's control points.
func (c AnnotatedCommand) ControlPoints() []Point {
	return c.Info.Controls[:c.Info.NumControls]
}

// Polygon returns the start point, the control points and the end point.
func (c AnnotatedCommand) Polygon() []Point {
	pts := make([]Point, 0, 4)
	pts = append(pts, c.Info.Start)
	pts = append(pts, c.ControlPoints()...)
	return append(pts, c.Info.End)
}

// Cubic returns the command as a cubic Bézier. Quadratics are raised
// exactly, lines become cubics with coincident handles.
func (c AnnotatedCommand) Cubic() CubicBez {
	seg, ok := c.PathElement.Segment(c.Info.Start)
	if !ok {
		return CubicBez{c.Info.Start, c.Info.Start, c.Info.End, c.Info.End}
	}
	return seg.Cubic()
}

// AnnotatedSubpath is a subpath whose commands have been annotated.
type AnnotatedSubpath struct {
	// Start is the target of the subpath's MoveTo.
	Start Point
	// Commands starts with the MoveTo.
	Commands []AnnotatedCommand
	// Bounds is the bounding box of the on-path points. Control points
	// are excluded, so curves may bulge outside of it.
	Bounds Rect
	// Area is the signed area of the subpath, closed by a line back to
	// Start.
	Area float64
}

// Elements returns the subpath's original commands.
func (sp AnnotatedSubpath) Elements() []PathElement {
	out := make([]PathElement, len(sp.Commands))
	for i, c := range sp.Commands {
		out[i] = c.PathElement
	}
	return out
}

// Annotate computes the derived properties of a subpath's commands. els
// must start with its only MoveTo.
//
// It fails with [ErrEmptyPath] if els is empty and with [ErrInvalidCommand]
// if a command is malformed or the MoveTo is missing or repeated.
func Annotate(els []PathElement, opts Options) (AnnotatedSubpath, error) {
	if len(els) == 0 {
		return AnnotatedSubpath{}, ErrEmptyPath
	}
	if els[0].Kind != MoveToKind {
		return AnnotatedSubpath{}, fmt.Errorf("%w: subpath begins with %s instead of MoveTo", ErrInvalidCommand, els[0].Kind)
	}
	for i, el := range els {
		if err := el.Validate(); err != nil {
			return AnnotatedSubpath{}, fmt.Errorf("command %d: %w", i, err)
		}
		if i > 0 && el.Kind == MoveToKind {
			return AnnotatedSubpath{}, fmt.Errorf("%w: command %d: MoveTo inside subpath", ErrInvalidCommand, i)
		}
	}

	m0 := els[0].P0
	sp := AnnotatedSubpath{
		Start:    m0,
		Commands: make([]AnnotatedCommand, len(els)),
	}

	// First pass: end points and the bounding box of on-path points.
	cur := m0
	bounds := NewRectFromPoints(m0, m0)
	for i, el := range els {
		info := CommandInfo{Start: cur}
		switch el.Kind {
		case MoveToKind:
			info.End = el.P0
		case LineToKind:
			info.End = el.P0
			info.IsLineTo = true
		case QuadToKind:
			info.Controls[0] = el.P0
			info.NumControls = 1
			info.End = el.P1
		case CubicToKind:
			info.Controls[0] = el.P0
			info.Controls[1] = el.P1
			info.NumControls = 2
			info.End = el.P2
		case ClosePathKind:
			info.End = m0
			info.IsClosePath = true
			if opts.StrictClose {
				info.IsLineTo = cur.X != m0.X && cur.Y != m0.Y
			} else {
				info.IsLineTo = cur.X != m0.X || cur.Y != m0.Y
			}
		}
		bounds = bounds.UnionPoint(info.End)
		sp.Commands[i] = AnnotatedCommand{PathElement: el, Info: info}
		cur = info.End
	}
	sp.Bounds = bounds
	sp.Area = PathArea(m0, els[1:])

	// Second pass: properties that depend on the bounding box and on
	// neighboring commands.
	var lastFan float64
	for i := 1; i < len(sp.Commands); i++ {
		c := &sp.Commands[i]
		c.Info.IsExtreme = bounds.OnEdge(c.Info.End)

		if !c.IsCurve() {
			lastFan = 0
			continue
		}
		fan := PolygonArea(c.Polygon())
		if math.Abs(fan) < areaEpsilon {
			fan = 0
		}
		c.Info.FanArea = fan
		if fan != 0 {
			if lastFan != 0 && (fan < 0) != (lastFan < 0) {
				c.Info.HasDirectionChange = true
			}
			lastFan = fan
		}

		if i+1 < len(sp.Commands) {
			next := &sp.Commands[i+1]
			if next.Kind == c.Kind && isCorner(*c, *next, opts) {
				next.Info.IsCorner = true
			}
		}
	}
	return sp, nil
}

// isCorner reports whether the tangent direction changes sharply where prev
// ends and next begins. Curves whose tangent passes through an axis
// direction are never considered, and neither are zero-length handles.
func isCorner(prev, next AnnotatedCommand, opts Options) bool {
	ctrls := prev.ControlPoints()
	if BezierHasExtreme(prev.Info.Start, append(ctrls[:len(ctrls):len(ctrls)], prev.Info.End), opts.ExtremeAngle) {
		return false
	}
	out := prev.Info.End.Sub(ctrls[len(ctrls)-1])
	in := next.ControlPoints()[0].Sub(next.Info.Start)
	if out.IsZero() || in.IsZero() {
		return false
	}
	return angleBetween(out, in) > opts.CornerAngle
}
