package timeline

import (
	"fmt"
	"sort"

	"multicam/internal/services"
)

// CheckBounds verifies InPoint < OutPoint for every frame.
func CheckBounds(frames []Frame) error {
	for i, f := range frames {
		if !f.Valid() {
			return services.Wrap(services.ErrInvalidInput, "timeline", "check bounds",
				fmt.Sprintf("frame %d %s is empty or inverted", i, f), nil)
		}
	}
	return nil
}

// CheckNonOverlap verifies that no two frames on the same track overlap.
func CheckNonOverlap(frames []Frame) error {
	if err := CheckBounds(frames); err != nil {
		return err
	}
	tracks := ByTrack(frames)
	keys := make([]int, 0, len(tracks))
	for track := range tracks {
		keys = append(keys, track)
	}
	sort.Ints(keys)
	for _, track := range keys {
		sorted := Sorted(tracks[track])
		for i := 1; i < len(sorted); i++ {
			if sorted[i].InPoint < sorted[i-1].OutPoint {
				return services.Wrap(services.ErrInvalidInput, "timeline", "check overlap",
					fmt.Sprintf("track %d frames %s and %s overlap", track, sorted[i-1], sorted[i]), nil)
			}
		}
	}
	return nil
}

// CheckCoverage verifies that frames, sorted by InPoint, tile [0, span) with
// no gaps and no overlaps. An empty slice is accepted as the degenerate cut
// list of a silent recording.
func CheckCoverage(frames []Frame, span Ticks) error {
	if len(frames) == 0 {
		return nil
	}
	if err := CheckBounds(frames); err != nil {
		return err
	}
	sorted := Sorted(frames)
	if sorted[0].InPoint != 0 {
		return services.Wrap(services.ErrInvalidInput, "timeline", "check coverage",
			fmt.Sprintf("timeline starts at %.3fs, expected 0", sorted[0].InPoint.Seconds()), nil)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].OutPoint != sorted[i].InPoint {
			return services.Wrap(services.ErrInvalidInput, "timeline", "check coverage",
				fmt.Sprintf("discontinuity between %s and %s", sorted[i-1], sorted[i]), nil)
		}
	}
	if last := sorted[len(sorted)-1]; last.OutPoint != span {
		return services.Wrap(services.ErrInvalidInput, "timeline", "check coverage",
			fmt.Sprintf("timeline ends at %.3fs, expected %.3fs", last.OutPoint.Seconds(), span.Seconds()), nil)
	}
	return nil
}
