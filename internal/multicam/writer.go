package multicam

import (
	"fmt"
	"sort"

	"multicam/internal/services"
	"multicam/internal/timeline"
)

// Item is one camera switch as stored in the project.
type Item struct {
	Start timeline.Ticks
	End   timeline.Ticks
	Angle int
}

// Angles maps timeline track indices to multicam angle numbers.
type Angles map[int]int

// Angle returns the angle for track.
func (a Angles) Angle(track int) (int, bool) {
	angle, ok := a[track]
	return angle, ok
}

// Container is a project document that holds a multicam track.
type Container interface {
	LocateMulticamTrack() (Track, error)
}

// Track is the mutable multicam track of a Container. Validate must report
// every structural problem that would make ClearItems or AppendItem fail.
type Track interface {
	Validate(items []Item) error
	ClearItems()
	AppendItem(item Item) error
}

// Write replaces the multicam track's items with one item per frame and
// returns the number of items written. An empty cut list still requires a
// valid multicam track but leaves the document untouched.
func Write(doc Container, frames []timeline.Frame, angles Angles) (int, error) {
	if doc == nil {
		return 0, services.Wrap(services.ErrMalformedProject, "multicam", "write", "no project document", nil)
	}

	items, err := Items(frames, angles)
	if err != nil {
		return 0, err
	}

	track, err := doc.LocateMulticamTrack()
	if err != nil {
		return 0, err
	}
	if err := track.Validate(items); err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	track.ClearItems()
	for i, item := range items {
		if err := track.AppendItem(item); err != nil {
			return i, services.Wrap(services.ErrMalformedProject, "multicam", "append item",
				fmt.Sprintf("item %d", i), err)
		}
	}
	return len(items), nil
}

// Items validates frames as a complete cut list and converts them to track
// items in time order.
func Items(frames []timeline.Frame, angles Angles) ([]Item, error) {
	if len(frames) == 0 {
		return nil, nil
	}
	sorted := timeline.Sorted(frames)
	end := sorted[len(sorted)-1].OutPoint
	if err := timeline.CheckCoverage(sorted, end); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(sorted))
	var unknown []int
	seen := make(map[int]bool)
	for _, f := range sorted {
		angle, ok := angles.Angle(f.Track)
		if !ok {
			if !seen[f.Track] {
				unknown = append(unknown, f.Track)
				seen[f.Track] = true
			}
			continue
		}
		if angle <= 0 {
			return nil, services.Wrap(services.ErrInvalidInput, "multicam", "map angles",
				fmt.Sprintf("track %d maps to invalid angle %d", f.Track, angle), nil)
		}
		items = append(items, Item{Start: f.InPoint, End: f.OutPoint, Angle: angle})
	}
	if len(unknown) > 0 {
		sort.Ints(unknown)
		return nil, services.Wrap(services.ErrInvalidInput, "multicam", "map angles",
			fmt.Sprintf("no camera angle configured for tracks %v", unknown), nil)
	}
	return items, nil
}
