// Package svgpath converts between SVG path data and [pathsimp.BezPath].
//
// Parsing normalizes the path to absolute MoveTo, LineTo, QuadTo, CubicTo and
// ClosePath commands: relative commands are made absolute, horizontal and
// vertical lines become lines, smooth curves get their reflected control
// point, and elliptical arcs are approximated with cubic Béziers.
package svgpath

import (
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"
	"honnef.co/go/pathsimp"
)

// DefaultArcTolerance is the maximum distance between an elliptical arc and
// the cubic Béziers approximating it, used by [Parse].
const DefaultArcTolerance = 0.1

// SyntaxError describes malformed path data. It wraps
// [pathsimp.ErrInvalidCommand].
type SyntaxError struct {
	// Offset is the 1-based byte offset of the error.
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bad path data at position %d: %s", e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return pathsimp.ErrInvalidCommand
}

var cmdLens = map[byte]int{
	'M': 2,
	'Z': 0,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
}

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t' || path[i] == '\f') {
		i++
	}
	return i
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// Parse parses SVG path data, approximating arcs to [DefaultArcTolerance].
// Empty path data yields an empty path.
func Parse(s string) (pathsimp.BezPath, error) {
	return ParseTolerance(s, DefaultArcTolerance)
}

// ParseTolerance is like [Parse] but approximates elliptical arcs to the
// given tolerance.
func ParseTolerance(s string, arcTolerance float64) (pathsimp.BezPath, error) {
	path := []byte(s)
	i := skipCommaWhitespace(path)
	if i == len(path) {
		return nil, nil
	}
	if c := path[i] &^ 0x20; c != 'M' {
		return nil, &SyntaxError{i + 1, "path data must start with a moveto command"}
	}

	var f [7]float64
	var p pathsimp.BezPath
	// p0 is the current point, start the start of the current subpath.
	// c and q are the last cubic and quadratic control points.
	var p0, start, c, q pathsimp.Point
	prevCmd := byte('z')
	for {
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i {
			break
		}

		cmd := prevCmd
		cmdPos := i + 1
		repeat := true
		if cmd == 'z' || cmd == 'Z' || !isNumberStart(path[i]) {
			cmd = path[i]
			repeat = false
			i++
			i += skipCommaWhitespace(path[i:])
		}

		upper := cmd &^ 0x20
		n, ok := cmdLens[upper]
		if !ok {
			return nil, &SyntaxError{cmdPos, fmt.Sprintf("unknown command '%c'", cmd)}
		}
		for j := range n {
			if upper == 'A' && (j == 3 || j == 4) {
				// Flags are single digits and need no separator.
				if i < len(path) && (path[i] == '0' || path[i] == '1') {
					f[j] = float64(path[i] - '0')
					i++
				} else {
					return nil, &SyntaxError{i + 1, fmt.Sprintf("arc flags of command '%c' must be 0 or 1", cmd)}
				}
			} else {
				num, l := strconv.ParseFloat(path[i:])
				if l == 0 {
					if repeat && j == 0 {
						return nil, &SyntaxError{i + 1, fmt.Sprintf("unknown command '%c'", path[i])}
					}
					return nil, &SyntaxError{i + 1, fmt.Sprintf("command '%c' takes %d numbers", cmd, n)}
				}
				if math.IsInf(num, 0) || math.IsNaN(num) {
					return nil, &SyntaxError{i + 1, "number out of range"}
				}
				f[j] = num
				i += l
			}
			i += skipCommaWhitespace(path[i:])
		}

		var rel pathsimp.Vec2
		if cmd >= 'a' && cmd <= 'z' {
			rel = pathsimp.Vec2(p0)
		}
		pt := func(k int) pathsimp.Point {
			return pathsimp.Pt(f[k], f[k+1]).Translate(rel)
		}

		p1 := p0
		switch upper {
		case 'M':
			p1 = pt(0)
			p.MoveTo(p1)
			start = p1
			// Subsequent coordinate pairs are implicit linetos.
			if cmd == 'm' {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'Z':
			p1 = start
			p.ClosePath()
		case 'L':
			p1 = pt(0)
			p.LineTo(p1)
		case 'H':
			p1.X = f[0] + rel.X
			p.LineTo(p1)
		case 'V':
			p1.Y = f[0] + rel.Y
			p.LineTo(p1)
		case 'C':
			cp1 := pt(0)
			c = pt(2)
			p1 = pt(4)
			p.CubicTo(cp1, c, p1)
		case 'S':
			cp1 := p0
			if u := prevCmd &^ 0x20; u == 'C' || u == 'S' {
				cp1 = p0.Translate(p0.Sub(c))
			}
			c = pt(0)
			p1 = pt(2)
			p.CubicTo(cp1, c, p1)
		case 'Q':
			q = pt(0)
			p1 = pt(2)
			p.QuadTo(q, p1)
		case 'T':
			cp := p0
			if u := prevCmd &^ 0x20; u == 'Q' || u == 'T' {
				cp = p0.Translate(p0.Sub(q))
			}
			q = cp
			p1 = pt(0)
			p.QuadTo(q, p1)
		case 'A':
			p1 = pt(5)
			arc := pathsimp.SVGArc{
				From:      p0,
				To:        p1,
				Radii:     pathsimp.Vec(f[0], f[1]),
				XRotation: f[2] * math.Pi / 180,
				LargeArc:  f[3] == 1,
				Sweep:     f[4] == 1,
			}
			appendArc(&p, arc, arcTolerance)
		}
		prevCmd = cmd
		p0 = p1
	}
	return p, nil
}

// appendArc appends the cubic approximation of arc, or a line if the arc is
// degenerate. The last point is exactly arc.To.
func appendArc(p *pathsimp.BezPath, arc pathsimp.SVGArc, tolerance float64) {
	if arc.From == arc.To {
		return
	}
	a, ok := arc.Arc()
	if !ok {
		p.LineTo(arc.To)
		return
	}
	first := true
	for el := range a.PathElements(tolerance) {
		if first {
			// The MoveTo to the arc's start.
			first = false
			continue
		}
		p.Push(el)
	}
	if last := &(*p)[len(*p)-1]; last.Kind == pathsimp.CubicToKind {
		last.P2 = arc.To
	}
}
