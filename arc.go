package pathsimp

import (
	"iter"
	"math"
)

// Arc is an elliptical arc in center parameterization.
type Arc struct {
	Center     Point
	Radii      Vec2
	StartAngle float64
	SweepAngle float64
	XRotation  float64
}

// ArcHandleLength returns the handle length, relative to the radius, of the
// cubic Bézier that approximates a circular arc spanning sweep radians.
//
// For a quarter circle this is [Kappa].
func ArcHandleLength(sweep float64) float64 {
	return (4.0 / 3.0) * math.Tan(math.Abs(sweep)/4)
}

// PathElements approximates the arc with cubic Béziers. The first element is
// a MoveTo to the arc's start point.
func (a Arc) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		p0 := sampleEllipse(a.Radii, a.XRotation, a.StartAngle)
		if !yield(MoveTo(a.Center.Translate(p0))) {
			return
		}

		scaledError := max(a.Radii.X, a.Radii.Y) / tolerance
		// Number of subdivisions per ellipse based on error tolerance.
		// Note: this may slightly underestimate the error for quadrants.
		nError := max(math.Pow(1.1163*scaledError, 1.0/6.0), 3.999_999)
		n := math.Ceil(nError * math.Abs(a.SweepAngle) * (1.0 / (2.0 * math.Pi)))
		angleStep := a.SweepAngle / n
		armLen := math.Copysign(ArcHandleLength(angleStep), a.SweepAngle)
		angle0 := a.StartAngle

		for range int(n) {
			angle1 := angle0 + angleStep
			p1 := p0.Add(sampleEllipse(a.Radii, a.XRotation, angle0+math.Pi/2).Mul(armLen))
			p3 := sampleEllipse(a.Radii, a.XRotation, angle1)
			p2 := p3.Sub(sampleEllipse(a.Radii, a.XRotation, angle1+math.Pi/2).Mul(armLen))

			angle0 = angle1
			p0 = p3

			if !yield(CubicTo(
				a.Center.Translate(p1),
				a.Center.Translate(p2),
				a.Center.Translate(p3),
			)) {
				break
			}
		}
	}
}

// sampleEllipse takes the ellipse radii, how the radii are rotated, and the
// sweep angle, and returns a point on the ellipse.
func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	u := radii.X * cos
	v := radii.Y * sin
	return rotatePt(Vec2{u, v}, xRotation)
}

// rotatePt rotates pt about the origin by angle radians.
func rotatePt(pt Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: pt.X*cos - pt.Y*sin,
		Y: pt.X*sin + pt.Y*cos,
	}
}

func (a Arc) Translate(v Vec2) Arc {
	a.Center = a.Center.Translate(v)
	return a
}

// SVGArc is an elliptical arc in the endpoint parameterization used by SVG
// path data.
type SVGArc struct {
	From      Point
	To        Point
	Radii     Vec2
	XRotation float64
	LargeArc  bool
	Sweep     bool
}

// IsStraightLine reports whether the arc degenerates to a straight line,
// which SVG renders in place of the arc.
func (a SVGArc) IsStraightLine() bool {
	return math.Abs(a.Radii.X) <= 1e-5 || math.Abs(a.Radii.Y) <= 1e-5 || a.From == a.To
}

// Arc converts the arc to center parameterization, scaling up radii that are
// too small to span the endpoints. It returns false for straight lines.
func (a SVGArc) Arc() (Arc, bool) {
	if a.IsStraightLine() {
		return Arc{}, false
	}

	rx := math.Abs(a.Radii.X)
	ry := math.Abs(a.Radii.Y)
	xr := math.Mod(a.XRotation, 2*math.Pi)
	sinPhi, cosPhi := math.Sincos(xr)
	hdX := (a.From.X - a.To.X) * 0.5
	hdY := (a.From.Y - a.To.Y) * 0.5
	hsX := (a.From.X + a.To.X) * 0.5
	hsY := (a.From.Y + a.To.Y) * 0.5

	p := Vec2{
		X: cosPhi*hdX + sinPhi*hdY,
		Y: -sinPhi*hdX + cosPhi*hdY,
	}

	rf := p.X*p.X/(rx*rx) + p.Y*p.Y/(ry*ry)
	if rf > 1.0 {
		rx *= math.Sqrt(rf)
		ry *= math.Sqrt(rf)
	}

	rxry := rx * ry
	rxpy := rx * p.Y
	rypx := ry * p.X
	sumOfSq := rxpy*rxpy + rypx*rypx
	if sumOfSq == 0 {
		return Arc{}, false
	}

	signCoe := 1.0
	if a.LargeArc == a.Sweep {
		signCoe = -1.0
	}
	coe := signCoe * math.Sqrt(math.Abs((rxry*rxry-sumOfSq)/sumOfSq))
	tcx := coe * rxpy / ry
	tcy := -coe * rypx / rx

	center := Point{
		X: cosPhi*tcx - sinPhi*tcy + hsX,
		Y: sinPhi*tcx + cosPhi*tcy + hsY,
	}

	startV := Vec2{X: (p.X - tcx) / rx, Y: (p.Y - tcy) / ry}
	endV := Vec2{X: (-p.X - tcx) / rx, Y: (-p.Y - tcy) / ry}
	startAngle := startV.Angle()
	sweepAngle := math.Mod(endV.Angle()-startAngle, 2*math.Pi)
	if a.Sweep && sweepAngle < 0 {
		sweepAngle += 2 * math.Pi
	} else if !a.Sweep && sweepAngle > 0 {
		sweepAngle -= 2 * math.Pi
	}

	return Arc{
		Center:     center,
		Radii:      Vec2{X: rx, Y: ry},
		StartAngle: startAngle,
		SweepAngle: sweepAngle,
		XRotation:  a.XRotation,
	}, true
}
