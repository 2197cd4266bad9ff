package pathsimp

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Stage identifies the decision point that produced an [Event].
type Stage int

const (
	// StagePassthrough is reported for chunks that are emitted unchanged
	// without trying any candidate.
	StagePassthrough Stage = iota + 1
	// StageArc is the circular arc candidate.
	StageArc
	// StageTangentIntersection is the two-curve candidate built from the
	// tangent at the shared vertex.
	StageTangentIntersection
	// StageMidpointHandle is the candidate built from the middle command of
	// a longer run.
	StageMidpointHandle
	// StageMidpointParametric is the candidate built from the point at half
	// the run's arc length.
	StageMidpointParametric
	// StageLengthWeighted is the candidate that scales the boundary handles
	// by the run's length.
	StageLengthWeighted
	// StageFallback is reported when no candidate was accepted and the
	// chunk is emitted unchanged.
	StageFallback
)

func (s Stage) String() string {
	switch s {
	case StagePassthrough:
		return "passthrough"
	case StageArc:
		return "arc"
	case StageTangentIntersection:
		return "tangent-intersection"
	case StageMidpointHandle:
		return "midpoint-handle"
	case StageMidpointParametric:
		return "midpoint-parametric"
	case StageLengthWeighted:
		return "length-weighted"
	case StageFallback:
		return "fallback"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Event describes one decision of the simplifier.
type Event struct {
	Subpath int
	Chunk   int
	Stage   Stage
	// Candidate is the evaluated cubic. It is the zero value for stages
	// that don't produce a candidate, or when a candidate couldn't be
	// constructed.
	Candidate CubicBez
	// Err is set when the candidate couldn't be constructed.
	Err error
	// AreaDiff is the candidate's relative area deviation, in percent.
	AreaDiff float64
	// Tolerance is the bound AreaDiff was compared against.
	Tolerance float64
	Accepted  bool
}

func (ev Event) String() string {
	if ev.Err != nil {
		return fmt.Sprintf("subpath %d chunk %d %s: %v", ev.Subpath, ev.Chunk, ev.Stage, ev.Err)
	}
	switch ev.Stage {
	case StagePassthrough, StageFallback:
		return fmt.Sprintf("subpath %d chunk %d %s", ev.Subpath, ev.Chunk, ev.Stage)
	}
	verdict := "rejected"
	if ev.Accepted {
		verdict = "accepted"
	}
	return fmt.Sprintf("subpath %d chunk %d %s: diff %.4g%% (limit %.4g%%) %s",
		ev.Subpath, ev.Chunk, ev.Stage, ev.AreaDiff, ev.Tolerance, verdict)
}

// Observer receives simplification events. Implementations must be safe
// for concurrent use when subpaths are simplified in parallel.
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a function to the [Observer] interface.
type ObserverFunc func(ev Event)

func (fn ObserverFunc) Observe(ev Event) { fn(ev) }

// Trace records events. The zero value is ready to use.
type Trace struct {
	mu     sync.Mutex
	events []Event
}

var _ Observer = (*Trace)(nil)

func (tr *Trace) Observe(ev Event) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.events = append(tr.events, ev)
}

// Events returns a copy of the recorded events, ordered by subpath and chunk.
// Events of the same chunk keep the order in which they were recorded.
func (tr *Trace) Events() []Event {
	tr.mu.Lock()
	out := slices.Clone(tr.events)
	tr.mu.Unlock()
	slices.SortStableFunc(out, func(a, b Event) int {
		if c := cmp.Compare(a.Subpath, b.Subpath); c != 0 {
			return c
		}
		return cmp.Compare(a.Chunk, b.Chunk)
	})
	return out
}

// Reset discards all recorded events.
func (tr *Trace) Reset() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.events = nil
}
