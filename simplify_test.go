package pathsimp

import (
	"errors"
	"math"
	"slices"
	"testing"
)

// chunkOf builds a chunk from curves starting at start, regardless of how
// the chunker would split them.
func chunkOf(t *testing.T, start Point, els ...PathElement) Chunk {
	t.Helper()
	sp := mustAnnotate(t, append([]PathElement{MoveTo(start)}, els...), DefaultOptions())
	cmds := sp.Commands[1:]
	return Chunk{
		Kind:        cmds[0].Kind,
		Start:       start,
		Commands:    cmds,
		Passthrough: len(cmds) == 1,
	}
}

func cubicsOf(cs ...CubicBez) []PathElement {
	out := make([]PathElement, len(cs))
	for i, c := range cs {
		out[i] = CubicTo(c.P1, c.P2, c.P3)
	}
	return out
}

// arcSegment returns the cubic approximating the arc of the circle around
// center between angles a0 and a1.
func arcSegment(center Point, r, a0, a1 float64) CubicBez {
	h := ArcHandleLength(a1-a0) * r
	sin0, cos0 := math.Sincos(a0)
	sin1, cos1 := math.Sincos(a1)
	p0 := center.Translate(Vec(cos0, sin0).Mul(r))
	p3 := center.Translate(Vec(cos1, sin1).Mul(r))
	return CubicBez{
		p0,
		p0.Translate(Vec(-sin0, cos0).Mul(h)),
		p3.Translate(Vec(-sin1, cos1).Mul(-h)),
		p3,
	}
}

// simplifyTraced simplifies ch and returns the result and the events.
func simplifyTraced(ch Chunk, opts Options) ([]PathElement, []Event) {
	var tr Trace
	opts.Observer = &tr
	out := SimplifyChunk(ch, opts)
	return out, tr.Events()
}

func accepted(events []Event) (Event, bool) {
	for _, ev := range events {
		if ev.Accepted {
			return ev, true
		}
	}
	return Event{}, false
}

// checkMerged verifies that out is a single cubic with the chunk's end
// points, accepted below the tolerance by one of stages.
func checkMerged(t *testing.T, ch Chunk, out []PathElement, events []Event, stages ...Stage) CubicBez {
	t.Helper()
	if len(out) != 1 || out[0].Kind != CubicToKind {
		t.Fatalf("got %v, want a single cubic", out)
	}
	ev, ok := accepted(events)
	if !ok {
		t.Fatalf("no accepted event in %v", events)
	}
	if !slices.Contains(stages, ev.Stage) {
		t.Errorf("got stage %s, want one of %v", ev.Stage, stages)
	}
	if !(ev.AreaDiff < ev.Tolerance) {
		t.Errorf("accepted diff %v isn't below %v", ev.AreaDiff, ev.Tolerance)
	}
	c := CubicBez{ch.Start, out[0].P0, out[0].P1, out[0].P2}
	if ev.Candidate != c {
		t.Errorf("got event candidate %v, want %v", ev.Candidate, c)
	}
	if c.P3 != ch.End() {
		t.Errorf("got end point %s, want %s", c.P3, ch.End())
	}
	return c
}

func TestSimplifySingleCurve(t *testing.T) {
	ch := chunkOf(t, Pt(0, 0), CubicTo(Pt(10, 0), Pt(20, 10), Pt(30, 10)))
	out, events := simplifyTraced(ch, DefaultOptions())
	diff(t, ch.Elements(), out)
	if len(events) != 1 || events[0].Stage != StagePassthrough {
		t.Errorf("got events %v, want a single passthrough", events)
	}
}

func TestSimplifySCurve(t *testing.T) {
	p := sCurve()
	ch := chunkOf(t, p[0].P0, p[1:]...)
	opts := DefaultOptions()
	out, events := simplifyTraced(ch, opts)
	c := checkMerged(t, ch, out, events, StageLengthWeighted)

	diff(t, CubicBez{Pt(0, 0), Pt(20, 0), Pt(40, 20), Pt(60, 20)}, c)
	if d := c.Eval(0.5).Distance(Pt(30, 10)); d > opts.Thresh {
		t.Errorf("midpoint %s is %v away from (30, 10)", c.Eval(0.5), d)
	}

	// The shared vertex tangent is parallel to both end tangents.
	if len(events) != 2 || events[0].Stage != StageTangentIntersection {
		t.Fatalf("got events %v", events)
	}
	if !errors.Is(events[0].Err, ErrNoIntersection) {
		t.Errorf("got error %v, want %v", events[0].Err, ErrNoIntersection)
	}
}

func TestSimplifyFallback(t *testing.T) {
	ch := chunkOf(t, Pt(0, 0),
		CubicTo(Pt(0, -10), Pt(10, -10), Pt(10, 0)),
		CubicTo(Pt(10, -10), Pt(20, -10), Pt(20, 0)),
	)
	out, events := simplifyTraced(ch, DefaultOptions())
	diff(t, ch.Elements(), out)
	if _, ok := accepted(events); ok {
		t.Errorf("got accepted candidate in %v", events)
	}
	if last := events[len(events)-1]; last.Stage != StageFallback {
		t.Errorf("got last stage %s, want %s", last.Stage, StageFallback)
	}
}

func TestSimplifyHalves(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(20, 40), Pt(80, 40), Pt(100, 0)}
	a, b := c.Subdivide()
	ch := chunkOf(t, c.P0, cubicsOf(a, b)...)
	out, events := simplifyTraced(ch, DefaultOptions())
	got := checkMerged(t, ch, out, events, StageTangentIntersection)
	for _, pt := range [][2]Point{{got.P1, c.P1}, {got.P2, c.P2}} {
		assertNear(t, pt[0], pt[1], 1e-9)
	}
}

func TestSimplifyQuadratics(t *testing.T) {
	// Two halves of y = x²/10.
	ch := chunkOf(t, Pt(0, 0),
		QuadTo(Pt(5, 0), Pt(10, 10)),
		QuadTo(Pt(15, 20), Pt(20, 40)),
	)
	out, events := simplifyTraced(ch, DefaultOptions())
	got := checkMerged(t, ch, out, events, StageTangentIntersection)
	want := QuadBez{Pt(0, 0), Pt(10, 0), Pt(20, 40)}.Raise()
	assertNear(t, got.P1, want.P1, 1e-9)
	assertNear(t, got.P2, want.P2, 1e-9)
}

func TestSimplifyQuarterCircle(t *testing.T) {
	ch := chunkOf(t, Pt(100, 0), cubicsOf(
		arcSegment(Pt(0, 0), 100, 0, math.Pi/4),
		arcSegment(Pt(0, 0), 100, math.Pi/4, math.Pi/2),
	)...)
	out, events := simplifyTraced(ch, DefaultOptions())
	got := checkMerged(t, ch, out, events, StageTangentIntersection)
	assertNear(t, got.P1, Pt(100, 100*Kappa), 1e-6)
	assertNear(t, got.P2, Pt(100*Kappa, 100), 1e-6)
	if ev, _ := accepted(events); ev.AreaDiff > 0.1 {
		t.Errorf("got area deviation %v%%, want below 0.1%%", ev.AreaDiff)
	}
}

func TestSimplifySemicircle(t *testing.T) {
	pieces := []CubicBez{
		arcSegment(Pt(0, 0), 100, math.Pi, 4*math.Pi/3),
		arcSegment(Pt(0, 0), 100, 4*math.Pi/3, 5*math.Pi/3),
		arcSegment(Pt(0, 0), 100, 5*math.Pi/3, 2*math.Pi),
	}
	ch := chunkOf(t, pieces[0].P0, cubicsOf(pieces...)...)
	out, events := simplifyTraced(ch, DefaultOptions())
	got := checkMerged(t, ch, out, events, StageArc)

	// A half circle has handles of 4/3 of the radius.
	assertNear(t, got.P1, Pt(-100, -400.0/3.0), 1e-6)
	assertNear(t, got.P2, Pt(100, -400.0/3.0), 1e-6)
	assertNear(t, got.Eval(0.5), Pt(0, -100), 1e-6)
	if ev, _ := accepted(events); ev.AreaDiff > 2 {
		t.Errorf("got area deviation %v%%, want below 2%%", ev.AreaDiff)
	}
	if len(events) != 1 {
		t.Errorf("got %d events, want only the arc", len(events))
	}
}

func TestSimplifyArc(t *testing.T) {
	center := Pt(10, 20)
	pieces := []CubicBez{
		arcSegment(center, 50, 0.3, 0.8),
		arcSegment(center, 50, 0.8, 1.3),
		arcSegment(center, 50, 1.3, 2.0),
	}
	ch := chunkOf(t, pieces[0].P0, cubicsOf(pieces...)...)
	opts := DefaultOptions()
	opts.Thresh = 0.5
	out, events := simplifyTraced(ch, opts)
	got := checkMerged(t, ch, out, events, StageArc)
	want := arcSegment(center, 50, 0.3, 2.0)
	assertNear(t, got.P1, want.P1, 1e-6)
	assertNear(t, got.P2, want.P2, 1e-6)
}

func TestSimplifyThirds(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(20, 40), Pt(80, 40), Pt(100, 0)}
	pieces := thirds(c)
	ch := chunkOf(t, c.P0, cubicsOf(pieces[:]...)...)
	opts := DefaultOptions()
	opts.Thresh = 0.1
	out, events := simplifyTraced(ch, opts)
	// Both midpoint candidates reproduce the original exactly.
	got := checkMerged(t, ch, out, events, StageMidpointHandle, StageMidpointParametric)
	assertNear(t, got.P1, c.P1, 1e-9)
	assertNear(t, got.P2, c.P2, 1e-9)
	if events[0].Stage != StageArc || events[0].Accepted {
		t.Errorf("got first event %v, want a rejected arc", events[0])
	}
}

func TestSimplifyPrefersBetterMidpoint(t *testing.T) {
	// The middle curve is split off-center, so its midpoint is a poor
	// representative of the run.
	c := CubicBez{Pt(0, 0), Pt(20, 40), Pt(80, 40), Pt(100, 0)}
	s, err := PointAtTWithTangent(c.Points(), 0.2)
	if err != nil {
		t.Fatal(err)
	}
	first := CubicBez{s.Left[0], s.Left[1], s.Left[2], s.Left[3]}
	a, b := CubicBez{s.Right[0], s.Right[1], s.Right[2], s.Right[3]}.Subdivide()

	ch := chunkOf(t, c.P0, cubicsOf(first, a, b)...)
	opts := DefaultOptions()
	opts.Thresh = 0.1
	out, events := simplifyTraced(ch, opts)
	got := checkMerged(t, ch, out, events, StageMidpointParametric)
	assertNear(t, got.P1, c.P1, 0.1)
	assertNear(t, got.P2, c.P2, 0.1)

	var handle Event
	for _, ev := range events {
		if ev.Stage == StageMidpointHandle {
			handle = ev
		}
	}
	if handle.Accepted || handle.AreaDiff < 1 {
		t.Errorf("got midpoint handle event %v, want a rejected candidate", handle)
	}
}

func TestSimplifyFlatTightensTolerance(t *testing.T) {
	ch := chunkOf(t, Pt(0, 0),
		CubicTo(Pt(10, 0.05), Pt(20, 0.1), Pt(30, 0.1)),
		CubicTo(Pt(40, 0.1), Pt(50, 0.05), Pt(60, 0)),
	)
	opts := DefaultOptions()
	_, events := simplifyTraced(ch, opts)
	for _, ev := range events {
		if ev.Tolerance != 0 && ev.Tolerance > opts.Tolerance/2 {
			t.Errorf("got tolerance %v for flat chunk, want at most %v", ev.Tolerance, opts.Tolerance/2)
		}
	}
}

func TestSimplifyDoesNotModifyChunk(t *testing.T) {
	p := sCurve()
	ch := chunkOf(t, p[0].P0, p[1:]...)
	before := slices.Clone(ch.Commands)
	SimplifyChunk(ch, DefaultOptions())
	diff(t, before, ch.Commands)
}

func TestSimplifyAreaBound(t *testing.T) {
	// Every accepted candidate, whatever the chunk, stays below its limit.
	chunks := []Chunk{
		chunkOf(t, sCurve()[0].P0, sCurve()[1:]...),
		chunkOf(t, Pt(0, 0), QuadTo(Pt(5, 0), Pt(10, 10)), QuadTo(Pt(15, 20), Pt(20, 40))),
		chunkOf(t, Pt(100, 0), cubicsOf(
			arcSegment(Pt(0, 0), 100, 0, 0.4),
			arcSegment(Pt(0, 0), 100, 0.4, 0.9),
			arcSegment(Pt(0, 0), 100, 0.9, 1.2),
			arcSegment(Pt(0, 0), 100, 1.2, 1.5),
		)...),
	}
	for i, ch := range chunks {
		out, events := simplifyTraced(ch, DefaultOptions())
		ev, ok := accepted(events)
		if !ok {
			diff(t, ch.Elements(), out)
			continue
		}
		if !(ev.AreaDiff < ev.Tolerance) {
			t.Errorf("chunk %d: accepted diff %v isn't below %v", i, ev.AreaDiff, ev.Tolerance)
		}
		area := PathArea(ch.Start, out)
		if d := RelativeAreaDiff(PathArea(ch.Start, ch.Elements()), area); d >= DefaultOptions().Tolerance {
			t.Errorf("chunk %d: output deviates by %v%%", i, d)
		}
	}
}
