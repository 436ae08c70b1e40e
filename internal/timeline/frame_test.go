package timeline

import (
	"errors"
	"testing"

	"multicam/internal/services"
)

func TestSecondsRoundTrip(t *testing.T) {
	if got := Seconds(1); got != TicksPerSecond {
		t.Fatalf("expected one second to equal %d ticks, got %d", TicksPerSecond, got)
	}
	if got := Seconds(2.5).Seconds(); got != 2.5 {
		t.Fatalf("expected 2.5s, got %v", got)
	}
}

func TestSortedDoesNotMutateInput(t *testing.T) {
	in := []Frame{span(3, 4, 1), span(0, 1, 2), span(0, 1, 1)}
	out := Sorted(in)
	if in[0] != span(3, 4, 1) {
		t.Fatalf("input mutated: %v", in)
	}
	requireFrames(t, out, []Frame{span(0, 1, 1), span(0, 1, 2), span(3, 4, 1)})
}

func TestBoundsAndTotal(t *testing.T) {
	frames := []Frame{span(2, 3, 1), span(0.5, 1, 2)}
	start, end := Bounds(frames)
	if start != Seconds(0.5) || end != Seconds(3) {
		t.Fatalf("unexpected bounds %v..%v", start, end)
	}
	if got := TotalDuration(frames); got != Seconds(1.5) {
		t.Fatalf("unexpected total %v", got)
	}
	if s, e := Bounds(nil); s != 0 || e != 0 {
		t.Fatalf("expected zero bounds for empty input")
	}
}

func TestCheckCoverage(t *testing.T) {
	good := []Frame{span(0, 2, 1), span(2, 5, 2), span(5, 7, 1)}
	if err := CheckCoverage(good, Seconds(7)); err != nil {
		t.Fatalf("expected coverage, got %v", err)
	}
	cases := map[string][]Frame{
		"gap":        {span(0, 2, 1), span(2.5, 7, 2)},
		"overlap":    {span(0, 3, 1), span(2, 7, 2)},
		"late start": {span(1, 7, 1)},
		"short end":  {span(0, 6, 1)},
	}
	for name, frames := range cases {
		err := CheckCoverage(frames, Seconds(7))
		if err == nil {
			t.Fatalf("%s: expected coverage error", name)
		}
		if !errors.Is(err, services.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
	if err := CheckCoverage(nil, Seconds(7)); err != nil {
		t.Fatalf("expected empty timeline to pass, got %v", err)
	}
}

func TestCheckNonOverlap(t *testing.T) {
	ok := []Frame{span(0, 2, 1), span(1, 3, 2), span(2, 4, 1)}
	if err := CheckNonOverlap(ok); err != nil {
		t.Fatalf("expected no overlap across distinct tracks, got %v", err)
	}
	bad := []Frame{span(0, 2, 1), span(1.5, 3, 1)}
	if err := CheckNonOverlap(bad); err == nil {
		t.Fatal("expected overlap error")
	}
	inverted := []Frame{{InPoint: Seconds(2), OutPoint: Seconds(1), Track: 1}}
	if err := CheckBounds(inverted); err == nil {
		t.Fatal("expected bounds error for inverted frame")
	}
}
