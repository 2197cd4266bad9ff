package pathsimp

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCubicBezExtrema(t *testing.T) {
	// y = x^2
	q := CubicBez{Pt(0.0, 0.0), Pt(0.0, 1.0), Pt(1.0, 1.0), Pt(1.0, 0.0)}
	extrema, n := q.Extrema()
	if n != 1 {
		t.Fatalf("got %d extrema, expected 1", n)
	}
	if want := 0.5; math.Abs(extrema[0]-want) > 1e-6 {
		t.Errorf("got extrema %v, want %v", extrema[0], want)
	}

	q = CubicBez{Pt(0.4, 0.5), Pt(0.0, 1.0), Pt(1.0, 0.0), Pt(0.5, 0.4)}
	extrema, n = q.Extrema()
	if n != 4 {
		t.Fatalf("got %d extrema, expected 4", n)
	}
}

func TestCubicBezSignedAreaLinear(t *testing.T) {
	// y = 1 - x
	c := CubicBez{
		Pt(1.0, 0.0),
		Pt(2.0/3.0, 1.0/3.0),
		Pt(1.0/3.0, 2.0/3.0),
		Pt(0.0, 1.0),
	}
	diff(t, 0.5, c.SignedArea(), cmpopts.EquateApprox(0, 1e-12))
}

func TestCubicBezSignedArea(t *testing.T) {
	// y = 1 - x^3
	c := CubicBez{
		Pt(1.0, 0.0),
		Pt(2.0/3.0, 1.0),
		Pt(1.0/3.0, 1.0),
		Pt(0.0, 1.0),
	}
	const epsilon = 1e-12
	diff(t, 0.75, c.SignedArea(), cmpopts.EquateApprox(0, epsilon))
}

func TestCubicBezSubdivide(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(20, 40), Pt(80, 40), Pt(100, 0)}
	a, b := c.Subdivide()
	const epsilon = 1e-12
	const n = 10
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		assertNear(t, a.Eval(ts), c.Eval(ts/2), epsilon)
		assertNear(t, b.Eval(ts), c.Eval(0.5+ts/2), epsilon)
	}
}

func TestCubicBezTangentsDegenerate(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 0), Pt(10, 10), Pt(10, 10)}
	d0, d1 := c.Tangents()
	diff(t, Vec(10, 10), d0)
	diff(t, Vec(10, 10), d1)
}

func TestCubicBezApproxArclen(t *testing.T) {
	// A straight cubic: chord and polygon agree.
	c := CubicBez{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0)}
	if l := c.ApproxArclen(); l != 3 {
		t.Errorf("got length %v, want 3", l)
	}

	c = CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	// chord 10, polygon 30
	if l := c.ApproxArclen(); l != 20 {
		t.Errorf("got length %v, want 20", l)
	}
}
