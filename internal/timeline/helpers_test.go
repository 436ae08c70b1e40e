package timeline

import (
	"math/rand/v2"
	"testing"
)

const (
	primaryTrack   = 1
	secondaryTrack = 2
)

func span(in, out float64, track int) Frame {
	return Frame{InPoint: Seconds(in), OutPoint: Seconds(out), Track: track, Origin: Detected}
}

func requireFrames(t *testing.T, got []Frame, want []Frame) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d frames %v, got %d frames %v", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

// randomActivity builds sorted, non-overlapping detected frames inside [0, total).
func randomActivity(r *rand.Rand, track int, total float64) []Frame {
	var out []Frame
	cursor := r.Float64() * 0.5
	for cursor < total {
		length := 0.04 + r.Float64()*3
		end := cursor + length
		if end > total {
			end = total
		}
		if end > cursor {
			out = append(out, span(cursor, end, track))
		}
		cursor = end + 0.02 + r.Float64()*2
	}
	return out
}
