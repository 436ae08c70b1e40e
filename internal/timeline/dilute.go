package timeline

import (
	"fmt"

	"multicam/internal/services"
)

// Dilute performs one smoothing pass over a sorted, gap-free timeline. A frame
// shorter than minHold is absorbed by a neighbour: the longer one, or the
// following one on a tie. The neighbour's boundary is extended over the short
// frame, so coverage holds and the frame count never grows. A lone frame is
// kept whatever its length.
func Dilute(frames []Frame, minHold Ticks) []Frame {
	work := Sorted(frames)
	out := make([]Frame, 0, len(work))
	for i := 0; i < len(work); i++ {
		f := work[i]
		if f.Duration() >= minHold {
			out = append(out, f)
			continue
		}
		hasPrev := len(out) > 0
		hasNext := i+1 < len(work)
		switch {
		case hasPrev && hasNext:
			prev := out[len(out)-1]
			if prev.Duration() > work[i+1].Duration() {
				out[len(out)-1].OutPoint = f.OutPoint
			} else {
				work[i+1].InPoint = f.InPoint
			}
		case hasPrev:
			out[len(out)-1].OutPoint = f.OutPoint
		case hasNext:
			work[i+1].InPoint = f.InPoint
		default:
			out = append(out, f)
		}
	}
	return out
}

// DiluteN applies Dilute exactly iterations times. A single pass can leave a
// new short frame behind a shifted boundary; the caller decides how many
// cascading passes to run. Zero iterations returns a copy of the input.
func DiluteN(frames []Frame, minHold Ticks, iterations int) ([]Frame, error) {
	if iterations < 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "dilution", "dilute",
			fmt.Sprintf("iterations must be >= 0, got %d", iterations), nil)
	}
	out := make([]Frame, len(frames))
	copy(out, frames)
	for i := 0; i < iterations; i++ {
		out = Dilute(out, minHold)
	}
	return out, nil
}
