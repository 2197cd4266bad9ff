package pathsimp

import (
	"errors"
	"fmt"
	"math"
)

const (
	// TangentExtrapolation converts the distance from an end point to the
	// point where its tangent meets the tangent at the curve's midpoint into
	// the length of the cubic's handle. For a cubic whose handles are
	// symmetric about its midpoint, the midpoint tangent meets each end
	// tangent at three quarters of the handle length.
	TangentExtrapolation = 4.0 / 3.0

	// Kappa is the handle length, relative to the radius, of the cubic that
	// approximates a quarter circle.
	Kappa = 0.5522847498307936

	// multiCandidateInnerBound scales the tolerance that the best midpoint
	// candidate of a run of more than two curves has to meet before other
	// candidates are considered.
	multiCandidateInnerBound = 0.2

	// outlineSamples is the number of line segments per curve used to
	// measure the distance of a candidate's midpoint from the original.
	outlineSamples = 16

	// sweepEpsilon is the slack, in radians, when comparing arc sweeps.
	sweepEpsilon = 1e-9
)

var errNotArc = errors.New("not a circular arc")

// SimplifyChunk replaces a chunk with a single cubic Bézier if one that
// deviates from it by less than the configured tolerance can be found, and
// returns the chunk's commands unchanged otherwise.
//
// opts must be valid. See [Options.Validate].
func SimplifyChunk(ch Chunk, opts Options) []PathElement {
	els, _ := simplifyChunk(ch, opts)
	return els
}

func simplifyChunk(ch Chunk, opts Options) ([]PathElement, bool) {
	if ch.Passthrough || len(ch.Commands) < 2 || !ch.Commands[0].IsCurve() {
		observe(opts.Observer, Event{Subpath: ch.Subpath, Chunk: ch.Index, Stage: StagePassthrough})
		return ch.Elements(), false
	}

	s := newChunkSimplifier(ch, opts)
	var winner option[candidate]
	if len(ch.Commands) == 2 {
		winner = s.simplifyPair()
	} else {
		winner = s.simplifyRun()
	}
	if !winner.isSet {
		observe(opts.Observer, Event{Subpath: ch.Subpath, Chunk: ch.Index, Stage: StageFallback, Tolerance: s.tol})
		return ch.Elements(), false
	}
	c := winner.unwrap().cubic
	return []PathElement{CubicTo(c.P1, c.P2, c.P3)}, true
}

// candidate is a cubic proposed as the replacement of a chunk, together
// with its evaluation.
type candidate struct {
	stage Stage
	cubic CubicBez
	err   error
	// diff is the relative area deviation from the chunk, in percent.
	diff float64
	// nearMid reports whether the cubic's midpoint is within thresh of
	// the chunk.
	nearMid bool
}

func (c candidate) passes(limit float64) bool {
	return c.err == nil && c.nearMid && c.diff < limit
}

type chunkSimplifier struct {
	ch     Chunk
	opts   Options
	cubics []CubicBez
	// d0 and d1 are the chunk's start and end tangents.
	d0, d1 Vec2
	area0  float64
	// tol is the tolerance, tightened for flat chunks.
	tol     float64
	outline []Point
}

func newChunkSimplifier(ch Chunk, opts Options) *chunkSimplifier {
	cubics := ch.Cubics()
	s := &chunkSimplifier{
		ch:     ch,
		opts:   opts,
		cubics: cubics,
		area0:  PathArea(ch.Start, ch.Elements()),
	}
	s.d0, _ = cubics[0].Tangents()
	_, s.d1 = cubics[len(cubics)-1].Tangents()

	pts := []Point{ch.Start}
	for _, c := range ch.Commands {
		pts = append(pts, c.ControlPoints()...)
		pts = append(pts, c.Info.End)
	}
	flat := CommandIsFlat(pts, opts.Thresh)
	s.tol = opts.Tolerance / flat.Ratio

	s.outline = make([]Point, 0, len(cubics)*outlineSamples+1)
	s.outline = append(s.outline, ch.Start)
	for _, c := range cubics {
		for i := 1; i <= outlineSamples; i++ {
			s.outline = append(s.outline, c.Eval(float64(i)/outlineSamples))
		}
	}
	return s
}

// evaluate builds and measures a proposed cubic. A build error is kept on
// the candidate, which then never passes.
func (s *chunkSimplifier) evaluate(stage Stage, build func() (CubicBez, error)) candidate {
	c, err := build()
	cand := candidate{stage: stage, cubic: c, err: err, diff: math.Inf(1)}
	if err != nil {
		return cand
	}
	if c.IsNaN() || c.IsInf() {
		cand.err = fmt.Errorf("%w: non-finite control point", ErrDegenerateGeometry)
		return cand
	}
	area := c.SignedArea() + Line{c.P3, c.P0}.SignedArea()
	cand.diff = RelativeAreaDiff(s.area0, area)
	cand.nearMid = s.distanceToOutline(c.Eval(0.5)) <= s.opts.Thresh
	return cand
}

func (s *chunkSimplifier) distanceToOutline(pt Point) float64 {
	best := math.Inf(1)
	for i := 1; i < len(s.outline); i++ {
		d, _ := Line{s.outline[i-1], s.outline[i]}.Nearest(pt)
		best = min(best, d)
	}
	return math.Sqrt(best)
}

// report notifies the observer about evaluated candidates. winner is the
// index of the accepted candidate, or -1.
func (s *chunkSimplifier) report(limit float64, winner int, cands ...candidate) {
	if s.opts.Observer == nil {
		return
	}
	for i, c := range cands {
		ev := Event{
			Subpath:   s.ch.Subpath,
			Chunk:     s.ch.Index,
			Stage:     c.stage,
			Err:       c.err,
			AreaDiff:  c.diff,
			Tolerance: limit,
			Accepted:  i == winner,
		}
		if c.err == nil {
			ev.Candidate = c.cubic
		}
		s.opts.Observer.Observe(ev)
	}
}

// best returns the index of the passing candidate with the lowest area
// deviation, preferring earlier candidates on ties, or -1.
func best(limit float64, cands ...candidate) int {
	idx := -1
	for i, c := range cands {
		if !c.passes(limit) {
			continue
		}
		if idx == -1 || c.diff < cands[idx].diff {
			idx = i
		}
	}
	return idx
}

// simplifyPair merges a chunk of two curves.
func (s *chunkSimplifier) simplifyPair() option[candidate] {
	var out option[candidate]
	a := s.evaluate(StageTangentIntersection, s.tangentIntersection)
	if a.passes(s.tol) {
		s.report(s.tol, 0, a)
		out.set(a)
		return out
	}
	c := s.evaluate(StageLengthWeighted, s.lengthWeighted)
	if c.passes(s.tol) {
		s.report(s.tol, 1, a, c)
		out.set(c)
		return out
	}
	s.report(s.tol, -1, a, c)
	return out
}

// simplifyRun merges a chunk of more than two curves.
func (s *chunkSimplifier) simplifyRun() option[candidate] {
	var out option[candidate]
	arc := s.evaluate(StageArc, s.arc)
	if arc.passes(s.tol) {
		s.report(s.tol, 0, arc)
		out.set(arc)
		return out
	}
	s.report(s.tol, -1, arc)

	a := s.evaluate(StageMidpointHandle, s.middleHandle)
	b := s.evaluate(StageMidpointParametric, s.parametricMidpoint)
	inner := s.tol * multiCandidateInnerBound
	if i := best(inner, a, b); i >= 0 {
		s.report(inner, i, a, b)
		out.set([]candidate{a, b}[i])
		return out
	}

	c := s.evaluate(StageLengthWeighted, s.lengthWeighted)
	cands := []candidate{a, b, c}
	i := best(s.tol, cands...)
	s.report(s.tol, i, cands...)
	if i >= 0 {
		out.set(cands[i])
	}
	return out
}

// throughMidpoint builds the cubic from the chunk's end points whose
// handles lie on the chunk's end tangents, at TangentExtrapolation times
// the distance to where the end tangents meet the line through m in
// direction dm.
func (s *chunkSimplifier) throughMidpoint(m Point, dm Vec2) (CubicBez, error) {
	p0 := s.ch.Start
	p3 := s.ch.End()
	if dm.Hypot() < 1e-12 {
		return CubicBez{}, fmt.Errorf("%w: no tangent at %s", ErrDegenerateGeometry, m)
	}
	x1, err := LineIntersection(p0, p0.Translate(s.d0), m, m.Translate(dm), false)
	if err != nil {
		return CubicBez{}, err
	}
	x2, err := LineIntersection(p3, p3.Translate(s.d1), m, m.Translate(dm), false)
	if err != nil {
		return CubicBez{}, err
	}
	if x1.Sub(p0).Dot(s.d0) <= 0 || p3.Sub(x2).Dot(s.d1) <= 0 {
		return CubicBez{}, fmt.Errorf("%w: handle points against the tangent", ErrDegenerateGeometry)
	}
	return CubicBez{
		P0: p0,
		P1: p0.Translate(x1.Sub(p0).Mul(TangentExtrapolation)),
		P2: p3.Translate(x2.Sub(p3).Mul(TangentExtrapolation)),
		P3: p3,
	}, nil
}

// vertexTangent returns the direction halfway between the tangents of the
// two curves that meet at the start of cubics[k].
func (s *chunkSimplifier) vertexTangent(k int) (Point, Vec2, error) {
	_, in := s.cubics[k-1].Tangents()
	out, _ := s.cubics[k].Tangents()
	m := s.cubics[k].P0
	if in.IsZero() || out.IsZero() {
		return m, Vec2{}, fmt.Errorf("%w: zero tangent at %s", ErrDegenerateGeometry, m)
	}
	return m, bisector(in, out), nil
}

// tangentIntersection proposes a cubic for two curves using the tangent at
// their shared vertex.
func (s *chunkSimplifier) tangentIntersection() (CubicBez, error) {
	m, dm, err := s.vertexTangent(1)
	if err != nil {
		return CubicBez{}, err
	}
	return s.throughMidpoint(m, dm)
}

// middleHandle proposes a cubic using the middle of the run: the midpoint
// of the middle curve for odd lengths, the middle vertex for even lengths.
func (s *chunkSimplifier) middleHandle() (CubicBez, error) {
	n := len(s.cubics)
	if n%2 == 1 {
		split, err := PointAtTWithTangent(s.cubics[n/2].Points(), 0.5)
		if err != nil {
			return CubicBez{}, err
		}
		return s.throughMidpoint(split.Point, split.Tangent)
	}
	m, dm, err := s.vertexTangent(n / 2)
	if err != nil {
		return CubicBez{}, err
	}
	return s.throughMidpoint(m, dm)
}

// parametricMidpoint proposes a cubic using the point at half the run's
// approximate arc length.
func (s *chunkSimplifier) parametricMidpoint() (CubicBez, error) {
	lengths := make([]float64, len(s.cubics))
	var total float64
	for i, c := range s.cubics {
		lengths[i] = c.ApproxArclen()
		total += lengths[i]
	}
	if total == 0 {
		return CubicBez{}, fmt.Errorf("%w: zero length run", ErrDegenerateGeometry)
	}
	half := total / 2
	var acc float64
	for i, c := range s.cubics {
		l := lengths[i]
		if acc+l < half || l == 0 {
			acc += l
			continue
		}
		split, err := PointAtTWithTangent(c.Points(), (half-acc)/l)
		if err != nil {
			return CubicBez{}, err
		}
		return s.throughMidpoint(split.Point, split.Tangent)
	}
	// Rounding left half beyond the accumulated lengths.
	split, err := PointAtTWithTangent(s.cubics[len(s.cubics)-1].Points(), 1)
	if err != nil {
		return CubicBez{}, err
	}
	return s.throughMidpoint(split.Point, split.Tangent)
}

// lengthWeighted proposes a cubic that keeps the directions of the chunk's
// outer handles and scales each by the ratio of the run's length to the
// length of its own curve.
func (s *chunkSimplifier) lengthWeighted() (CubicBez, error) {
	first := s.cubics[0]
	last := s.cubics[len(s.cubics)-1]
	var total float64
	for _, c := range s.cubics {
		total += c.ApproxArclen()
	}
	lFirst := first.ApproxArclen()
	lLast := last.ApproxArclen()
	if lFirst == 0 || lLast == 0 {
		return CubicBez{}, fmt.Errorf("%w: zero length curve", ErrDegenerateGeometry)
	}
	return CubicBez{
		P0: first.P0,
		P1: first.P0.Translate(first.P1.Sub(first.P0).Mul(total / lFirst)),
		P2: last.P3.Translate(last.P2.Sub(last.P3).Mul(total / lLast)),
		P3: last.P3,
	}, nil
}

// arc proposes the cubic approximation of a circular arc if the run is
// consistent with one: the normals at both ends meet at a common center,
// every vertex and every curve midpoint lies on the circle, and the arc
// sweeps at most half a turn.
func (s *chunkSimplifier) arc() (CubicBez, error) {
	p0 := s.ch.Start
	p3 := s.ch.End()
	if s.d0.IsZero() || s.d1.IsZero() {
		return CubicBez{}, fmt.Errorf("%w: zero end tangent", ErrDegenerateGeometry)
	}
	d0 := s.d0.Normalize()
	d1 := s.d1.Normalize()
	thresh := s.opts.Thresh

	center, err := LineIntersection(p0, p0.Translate(d0.Perp()), p3, p3.Translate(d1.Perp()), false)
	if err != nil {
		if d0.Dot(d1) >= 0 {
			return CubicBez{}, err
		}
		// Antiparallel end tangents, a half circle centered on the chord.
		center = p0.Midpoint(p3)
		if math.Abs(p0.Sub(center).Dot(d0)) > thresh {
			return CubicBez{}, errNotArc
		}
	}

	r0 := p0.Distance(center)
	r1 := p3.Distance(center)
	if math.Abs(r0-r1) > thresh {
		return CubicBez{}, errNotArc
	}
	r := (r0 + r1) / 2
	if r == 0 {
		return CubicBez{}, fmt.Errorf("%w: zero radius", ErrDegenerateGeometry)
	}

	var sweep float64
	prev := p0.Sub(center)
	for _, c := range s.cubics {
		for _, t := range [...]float64{0.5, 1} {
			if math.Abs(c.Eval(t).Distance(center)-r) > thresh {
				return CubicBez{}, errNotArc
			}
		}
		v := c.P3.Sub(center)
		sweep += math.Atan2(prev.Cross(v), prev.Dot(v))
		prev = v
	}

	a0 := p0.Sub(center)
	a3 := p3.Sub(center)
	theta := math.Atan2(a0.Cross(a3), a0.Dot(a3))
	switch dir := a0.Cross(d0); {
	case dir > 0 && theta < 0:
		theta += 2 * math.Pi
	case dir < 0 && theta > 0:
		theta -= 2 * math.Pi
	case dir == 0:
		return CubicBez{}, errNotArc
	}
	if math.Abs(theta) > math.Pi+sweepEpsilon {
		return CubicBez{}, fmt.Errorf("%w: sweep of %g radians", errNotArc, theta)
	}
	if math.Abs(sweep-theta) > max(thresh/r, sweepEpsilon) {
		return CubicBez{}, errNotArc
	}

	// Puts the t=0.5 point on the circle.
	h := ArcHandleLength(theta) * r
	return CubicBez{
		P0: p0,
		P1: p0.Translate(d0.Mul(h)),
		P2: p3.Translate(d1.Mul(-h)),
		P3: p3,
	}, nil
}

func observe(o Observer, ev Event) {
	if o != nil {
		o.Observe(ev)
	}
}
