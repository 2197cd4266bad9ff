package svgpath

import (
	"io"
	stdstrconv "strconv"

	"github.com/tdewolff/parse/v2/strconv"
	"honnef.co/go/pathsimp"
)

// FullPrecision formats coordinates with the shortest representation that
// parses back to the same value.
const FullPrecision = -1

// Format returns the SVG path data of p, using absolute commands.
// Coordinates are rounded to precision decimals, or not at all for
// [FullPrecision].
func Format(p pathsimp.BezPath, precision int) string {
	return string(Append(nil, p, precision))
}

// Write writes the SVG path data of p to w. See [Format].
func Write(w io.Writer, p pathsimp.BezPath, precision int) error {
	_, err := w.Write(Append(nil, p, precision))
	return err
}

// Append appends the SVG path data of p to b. See [Format].
func Append(b []byte, p pathsimp.BezPath, precision int) []byte {
	for _, el := range p {
		switch el.Kind {
		case pathsimp.MoveToKind:
			b = append(b, 'M')
		case pathsimp.LineToKind:
			b = append(b, 'L')
		case pathsimp.QuadToKind:
			b = append(b, 'Q')
		case pathsimp.CubicToKind:
			b = append(b, 'C')
		case pathsimp.ClosePathKind:
			b = append(b, 'Z')
			continue
		default:
			continue
		}
		for i, pt := range el.Points() {
			if i > 0 {
				b = append(b, ' ')
			}
			b = appendNum(b, pt.X, precision)
			b = append(b, ' ')
			b = appendNum(b, pt.Y, precision)
		}
	}
	return b
}

func appendNum(b []byte, f float64, precision int) []byte {
	if precision < 0 {
		b = stdstrconv.AppendFloat(b, f, 'g', -1, 64)
	} else {
		b = strconv.AppendDecimal(b, f, precision)
	}
	if n := len(b); n >= 2 && b[n-2] == '-' && b[n-1] == '0' && (n == 2 || !isDigit(b[n-3]) && b[n-3] != '.') {
		// Negative zero.
		b = append(b[:n-2], '0')
	}
	return b
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// String formats p at full precision. It is meant for debugging.
func String(p pathsimp.BezPath) string {
	return Format(p, FullPrecision)
}
