package pathsimp

import (
	"errors"
	"sync"
	"testing"
)

func TestTraceEventsOrder(t *testing.T) {
	var tr Trace
	tr.Observe(Event{Subpath: 1, Chunk: 0, Stage: StagePassthrough})
	tr.Observe(Event{Subpath: 0, Chunk: 2, Stage: StageArc})
	tr.Observe(Event{Subpath: 0, Chunk: 1, Stage: StageMidpointHandle})
	tr.Observe(Event{Subpath: 0, Chunk: 1, Stage: StageMidpointParametric})

	var got []Stage
	for _, ev := range tr.Events() {
		got = append(got, ev.Stage)
	}
	want := []Stage{StageMidpointHandle, StageMidpointParametric, StageArc, StagePassthrough}
	diff(t, want, got)

	tr.Reset()
	if n := len(tr.Events()); n != 0 {
		t.Errorf("got %d events after reset", n)
	}
}

func TestTraceConcurrent(t *testing.T) {
	var tr Trace
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				tr.Observe(Event{Subpath: i, Chunk: j})
			}
		}()
	}
	wg.Wait()
	events := tr.Events()
	if len(events) != 800 {
		t.Fatalf("got %d events, want 800", len(events))
	}
	for i := 1; i < len(events); i++ {
		a, b := events[i-1], events[i]
		if a.Subpath > b.Subpath || a.Subpath == b.Subpath && a.Chunk > b.Chunk {
			t.Fatalf("events %d and %d out of order", i-1, i)
		}
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Event{Subpath: 0, Chunk: 1, Stage: StagePassthrough}, "subpath 0 chunk 1 passthrough"},
		{Event{Subpath: 2, Chunk: 3, Stage: StageFallback, Tolerance: 5}, "subpath 2 chunk 3 fallback"},
		{
			Event{Subpath: 0, Chunk: 1, Stage: StageArc, AreaDiff: 1.5, Tolerance: 5, Accepted: true},
			"subpath 0 chunk 1 arc: diff 1.5% (limit 5%) accepted",
		},
		{
			Event{Subpath: 0, Chunk: 1, Stage: StageLengthWeighted, AreaDiff: 12.25, Tolerance: 1},
			"subpath 0 chunk 1 length-weighted: diff 12.25% (limit 1%) rejected",
		},
		{
			Event{Subpath: 0, Chunk: 1, Stage: StageTangentIntersection, Err: errors.New("boom")},
			"subpath 0 chunk 1 tangent-intersection: boom",
		},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
	if got := Stage(42).String(); got != "Stage(42)" {
		t.Errorf("got %q, want %q", got, "Stage(42)")
	}
}

func TestObserverFunc(t *testing.T) {
	var n int
	var o Observer = ObserverFunc(func(Event) { n++ })
	o.Observe(Event{})
	observe(o, Event{})
	observe(nil, Event{})
	if n != 2 {
		t.Errorf("got %d calls, want 2", n)
	}
}
