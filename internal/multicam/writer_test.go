package multicam

import (
	"errors"
	"testing"

	"multicam/internal/services"
	"multicam/internal/timeline"
)

type fakeTrack struct {
	items       []Item
	cleared     bool
	validateErr error
}

func (f *fakeTrack) Validate([]Item) error { return f.validateErr }
func (f *fakeTrack) ClearItems() {
	f.cleared = true
	f.items = nil
}
func (f *fakeTrack) AppendItem(item Item) error {
	f.items = append(f.items, item)
	return nil
}

type fakeContainer struct {
	track     *fakeTrack
	locateErr error
	located   int
}

func (c *fakeContainer) LocateMulticamTrack() (Track, error) {
	c.located++
	if c.locateErr != nil {
		return nil, c.locateErr
	}
	return c.track, nil
}

func newContainer() *fakeContainer {
	return &fakeContainer{track: &fakeTrack{items: []Item{{Start: 0, End: 99, Angle: 1}}}}
}

func seconds(s float64) timeline.Ticks { return timeline.Seconds(s) }

var defaultAngles = Angles{1: 1, 2: 2}

func TestWriteReplacesItemsInTimeOrder(t *testing.T) {
	doc := newContainer()
	frames := []timeline.Frame{
		{InPoint: seconds(3), OutPoint: seconds(5), Track: 1},
		{InPoint: 0, OutPoint: seconds(3), Track: 2, Origin: timeline.Synthetic},
	}
	n, err := Write(doc, frames, defaultAngles)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 items written, got %d", n)
	}
	want := []Item{
		{Start: 0, End: seconds(3), Angle: 2},
		{Start: seconds(3), End: seconds(5), Angle: 1},
	}
	got := doc.track.items
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestWriteEmptyCutListLeavesDocumentUntouched(t *testing.T) {
	doc := newContainer()
	n, err := Write(doc, nil, defaultAngles)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 0 || doc.located != 1 || doc.track.cleared || len(doc.track.items) != 1 {
		t.Fatalf("expected no mutation, got n=%d located=%d track=%+v", n, doc.located, doc.track)
	}
}

func TestWriteEmptyCutListRequiresMulticamTrack(t *testing.T) {
	doc := newContainer()
	doc.locateErr = services.Wrap(services.ErrMalformedProject, "project", "locate", "no multicam track", nil)
	if _, err := Write(doc, nil, defaultAngles); !errors.Is(err, services.ErrMalformedProject) {
		t.Fatalf("expected malformed project, got %v", err)
	}
	if doc.located != 1 || doc.track.cleared {
		t.Fatalf("expected a lookup and no mutation, got located=%d track=%+v", doc.located, doc.track)
	}
}

func TestWriteRejectsBeforeMutation(t *testing.T) {
	cases := []struct {
		name   string
		frames []timeline.Frame
		setup  func(*fakeContainer)
		marker error
	}{
		{
			name: "gap",
			frames: []timeline.Frame{
				{InPoint: 0, OutPoint: seconds(1), Track: 1},
				{InPoint: seconds(2), OutPoint: seconds(3), Track: 2},
			},
			marker: services.ErrInvalidInput,
		},
		{
			name:   "not anchored at zero",
			frames: []timeline.Frame{{InPoint: seconds(1), OutPoint: seconds(2), Track: 1}},
			marker: services.ErrInvalidInput,
		},
		{
			name:   "unknown angle",
			frames: []timeline.Frame{{InPoint: 0, OutPoint: seconds(2), Track: 7}},
			marker: services.ErrInvalidInput,
		},
		{
			name:   "missing track",
			frames: []timeline.Frame{{InPoint: 0, OutPoint: seconds(2), Track: 1}},
			setup: func(c *fakeContainer) {
				c.locateErr = services.Wrap(services.ErrMalformedProject, "project", "locate", "no multicam track", nil)
			},
			marker: services.ErrMalformedProject,
		},
		{
			name:   "track validation",
			frames: []timeline.Frame{{InPoint: 0, OutPoint: seconds(2), Track: 1}},
			setup: func(c *fakeContainer) {
				c.track.validateErr = services.Wrap(services.ErrMalformedProject, "project", "validate", "template lacks End", nil)
			},
			marker: services.ErrMalformedProject,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := newContainer()
			if tc.setup != nil {
				tc.setup(doc)
			}
			_, err := Write(doc, tc.frames, defaultAngles)
			if !errors.Is(err, tc.marker) {
				t.Fatalf("expected %v, got %v", tc.marker, err)
			}
			if doc.track.cleared || len(doc.track.items) != 1 {
				t.Fatalf("expected untouched track, got %+v", doc.track)
			}
		})
	}
}

func TestWriteNilDocument(t *testing.T) {
	frames := []timeline.Frame{{InPoint: 0, OutPoint: seconds(1), Track: 1}}
	if _, err := Write(nil, frames, defaultAngles); !errors.Is(err, services.ErrMalformedProject) {
		t.Fatalf("expected malformed project, got %v", err)
	}
}

func TestItemsRejectsNonPositiveAngle(t *testing.T) {
	frames := []timeline.Frame{{InPoint: 0, OutPoint: seconds(1), Track: 1}}
	if _, err := Items(frames, Angles{1: 0}); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
