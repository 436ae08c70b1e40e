package timeline

import (
	"fmt"
	"math"
	"sort"
)

// Ticks is Premiere Pro's native time unit.
type Ticks int64

// TicksPerSecond is the Premiere tick clock. It divides evenly by every common
// video frame rate, including the NTSC x/1001 family.
const TicksPerSecond Ticks = 254016000000

// Seconds converts a duration in seconds to ticks, rounding to the nearest tick.
func Seconds(s float64) Ticks {
	return Ticks(math.Round(s * float64(TicksPerSecond)))
}

// Seconds reports t in seconds.
func (t Ticks) Seconds() float64 {
	return float64(t) / float64(TicksPerSecond)
}

// Origin records how a frame was produced.
type Origin int

const (
	// Detected frames come from amplitude activity on a speaker's own track.
	Detected Origin = iota
	// Synthetic frames are inferred from gaps in the other speaker's activity.
	Synthetic
)

func (o Origin) String() string {
	switch o {
	case Detected:
		return "detected"
	case Synthetic:
		return "synthetic"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// Frame is one track's active period on the shared timeline.
type Frame struct {
	InPoint  Ticks
	OutPoint Ticks
	Track    int
	Origin   Origin
}

// Duration returns OutPoint - InPoint.
func (f Frame) Duration() Ticks {
	return f.OutPoint - f.InPoint
}

// Valid reports whether the frame is a non-empty interval.
func (f Frame) Valid() bool {
	return f.InPoint < f.OutPoint
}

func (f Frame) String() string {
	return fmt.Sprintf("[%.3f,%.3f) track=%d %s", f.InPoint.Seconds(), f.OutPoint.Seconds(), f.Track, f.Origin)
}

// Sorted returns a copy of frames ordered by InPoint, then Track.
func Sorted(frames []Frame) []Frame {
	out := make([]Frame, len(frames))
	copy(out, frames)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].InPoint != out[j].InPoint {
			return out[i].InPoint < out[j].InPoint
		}
		return out[i].Track < out[j].Track
	})
	return out
}

// TotalDuration sums the durations of all frames.
func TotalDuration(frames []Frame) Ticks {
	var total Ticks
	for _, f := range frames {
		total += f.Duration()
	}
	return total
}

// Bounds returns the earliest InPoint and latest OutPoint. Both are zero for
// an empty slice.
func Bounds(frames []Frame) (Ticks, Ticks) {
	if len(frames) == 0 {
		return 0, 0
	}
	start, end := frames[0].InPoint, frames[0].OutPoint
	for _, f := range frames[1:] {
		if f.InPoint < start {
			start = f.InPoint
		}
		if f.OutPoint > end {
			end = f.OutPoint
		}
	}
	return start, end
}

// ByTrack partitions frames by track, preserving relative order.
func ByTrack(frames []Frame) map[int][]Frame {
	out := make(map[int][]Frame)
	for _, f := range frames {
		out[f.Track] = append(out[f.Track], f)
	}
	return out
}
