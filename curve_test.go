package pathsimp

import (
	"math"
	"slices"
	"sort"
	"testing"
)

func checkRoots(t *testing.T, roots, expected []float64) {
	if len(roots) != len(expected) {
		t.Fatalf("got %d roots, expected %d", len(roots), len(expected))
	}
	const epsilon = 1e-12
	sort.Float64s(roots)
	sort.Float64s(expected)
	for i := range roots {
		if math.Abs(roots[i]-expected[i]) > epsilon {
			t.Errorf("root %d is %v but we expected %v", i, roots[i], expected[i])
		}
	}
}

func TestSolveQuadratic(t *testing.T) {
	slice := func(roots [2]float64, n int) []float64 {
		return roots[:n]
	}
	checkRoots(t, slice(SolveQuadratic(-5.0, 0.0, 1.0)), []float64{-math.Sqrt(5), math.Sqrt(5)})
	checkRoots(t, slice(SolveQuadratic(5.0, 0.0, 1.0)), []float64{})
	checkRoots(t, slice(SolveQuadratic(5.0, 1.0, 0.0)), []float64{-5.0})
	checkRoots(t, slice(SolveQuadratic(1.0, 2.0, 1.0)), []float64{-1.0})
}

func TestSegmentsClosePath(t *testing.T) {
	els := []PathElement{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(10, 0)),
		QuadTo(Pt(10, 10), Pt(0, 10)),
		ClosePath(),
	}
	got := slices.Collect(Segments(slices.Values(els)))
	want := []PathSegment{
		Line{Pt(0, 0), Pt(10, 0)}.Seg(),
		QuadBez{Pt(10, 0), Pt(10, 10), Pt(0, 10)}.Seg(),
		Line{Pt(0, 10), Pt(0, 0)}.Seg(),
	}
	diff(t, want, got)
}

func TestSegmentsClosePathZeroLength(t *testing.T) {
	els := []PathElement{
		MoveTo(Pt(0, 0)),
		LineTo(Pt(10, 0)),
		LineTo(Pt(0, 0)),
		ClosePath(),
	}
	if n := len(slices.Collect(Segments(slices.Values(els)))); n != 2 {
		t.Errorf("got %d segments, want 2", n)
	}
}

func TestBoundingBoxIncludesExtrema(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(20, 40), Pt(80, 40), Pt(100, 0)}
	got := BoundingBox(c)
	want := Rect{0, 0, 100, 30}
	diff(t, want, got)
}
