package project

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"multicam/internal/multicam"
	"multicam/internal/services"
	"multicam/internal/timeline"
)

const (
	trackTag     = "VideoClipTrack"
	trackItemTag = "VideoClipTrackItem"
	itemsPath    = "./ClipTrack/ClipItems/TrackItems"
	anglePath    = "./ClipTrackItem/MultiCamAngle"
	startPath    = "./ClipTrackItem/TrackItem/Start"
	endPath      = "./ClipTrackItem/TrackItem/End"
)

// Track is the multicam VideoClipTrack of a Document.
type Track struct {
	doc      *Document
	element  *etree.Element
	items    *etree.Element
	template *etree.Element
}

var _ multicam.Container = (*Document)(nil)
var _ multicam.Track = (*Track)(nil)

// LocateMulticamTrack finds the track whose first item is a multicam clip,
// or the track pinned with WithTrackObjectID.
func (d *Document) LocateMulticamTrack() (multicam.Track, error) {
	return d.MulticamTrack()
}

// MulticamTrack is LocateMulticamTrack with a concrete return type.
func (d *Document) MulticamTrack() (*Track, error) {
	if d.trackObjectID != "" {
		el := d.object(d.trackObjectID)
		if el == nil || el.Tag != trackTag {
			return nil, services.Wrap(services.ErrMalformedProject, "project", "locate multicam track",
				fmt.Sprintf("no %s with ObjectID %s", trackTag, d.trackObjectID), nil)
		}
		track, reason := d.inspectTrack(el)
		if track == nil {
			return nil, services.Wrap(services.ErrMalformedProject, "project", "locate multicam track",
				fmt.Sprintf("track %s: %s", d.trackObjectID, reason), nil)
		}
		return track, nil
	}

	candidates := d.xml.FindElements("//" + trackTag)
	for _, el := range candidates {
		if track, _ := d.inspectTrack(el); track != nil {
			return track, nil
		}
	}
	return nil, services.Wrap(services.ErrMalformedProject, "project", "locate multicam track",
		fmt.Sprintf("none of %d video tracks holds a multicam clip", len(candidates)), nil)
}

func (d *Document) inspectTrack(el *etree.Element) (*Track, string) {
	items := el.FindElement(itemsPath)
	if items == nil {
		return nil, "missing ClipTrack/ClipItems/TrackItems"
	}
	first := items.SelectElement("TrackItem")
	if first == nil {
		return nil, "track has no items"
	}
	ref := first.SelectAttrValue("ObjectRef", "")
	target := d.object(ref)
	if target == nil || target.Tag != trackItemTag {
		return nil, fmt.Sprintf("first item references missing %s %q", trackItemTag, ref)
	}
	if target.FindElement(anglePath) == nil {
		return nil, "first item is not a multicam clip"
	}
	return &Track{doc: d, element: el, items: items, template: target.Copy()}, ""
}

// ObjectID returns the track's ObjectID.
func (t *Track) ObjectID() string {
	return t.element.SelectAttrValue("ObjectID", "")
}

// Validate checks that the template item can carry every item.
func (t *Track) Validate(items []multicam.Item) error {
	for _, path := range []string{startPath, endPath, anglePath} {
		if t.template.FindElement(path) == nil {
			return services.Wrap(services.ErrMalformedProject, "project", "validate multicam track",
				fmt.Sprintf("template item lacks %s", strings.TrimPrefix(path, "./")), nil)
		}
	}
	for i, item := range items {
		if item.End <= item.Start {
			return services.Wrap(services.ErrInvalidInput, "project", "validate multicam track",
				fmt.Sprintf("item %d has empty range", i), nil)
		}
		if item.Angle <= 0 {
			return services.Wrap(services.ErrInvalidInput, "project", "validate multicam track",
				fmt.Sprintf("item %d has invalid angle %d", i, item.Angle), nil)
		}
	}
	return nil
}

// ClearItems removes the track's items and the clip objects only they referenced.
func (t *Track) ClearItems() {
	for _, child := range t.items.SelectElements("TrackItem") {
		ref := child.SelectAttrValue("ObjectRef", "")
		t.items.RemoveChild(child)
		if ref == "" || t.doc.referenceCount(ref) > 0 {
			continue
		}
		if obj := t.doc.object(ref); obj != nil {
			if parent := obj.Parent(); parent != nil {
				parent.RemoveChild(obj)
			}
			t.doc.forget(obj)
		}
	}
}

// AppendItem clones the template clip for item and references it from the track.
func (t *Track) AppendItem(item multicam.Item) error {
	if t.template == nil {
		return fmt.Errorf("track %s has no template item", t.ObjectID())
	}
	clone := t.template.Copy()
	id := t.doc.nextObjectID()
	clone.CreateAttr("ObjectID", id)
	clone.CreateAttr("ObjectUID", uuid.NewString())
	clone.FindElement(startPath).SetText(formatTicks(item.Start))
	clone.FindElement(endPath).SetText(formatTicks(item.End))
	clone.FindElement(anglePath).SetText(strconv.Itoa(item.Angle))

	t.doc.xml.Root().AddChild(clone)
	t.doc.objects[id] = clone

	index := len(t.items.SelectElements("TrackItem"))
	ref := t.items.CreateElement("TrackItem")
	ref.CreateAttr("Index", strconv.Itoa(index))
	ref.CreateAttr("ObjectRef", id)
	return nil
}

// Items reads the track's current items back in track order.
func (t *Track) Items() ([]multicam.Item, error) {
	var out []multicam.Item
	for i, child := range t.items.SelectElements("TrackItem") {
		ref := child.SelectAttrValue("ObjectRef", "")
		obj := t.doc.object(ref)
		if obj == nil {
			return nil, services.Wrap(services.ErrMalformedProject, "project", "read multicam track",
				fmt.Sprintf("item %d references missing object %q", i, ref), nil)
		}
		item, err := readItem(obj)
		if err != nil {
			return nil, services.Wrap(services.ErrMalformedProject, "project", "read multicam track",
				fmt.Sprintf("item %d (ObjectID %s)", i, ref), err)
		}
		out = append(out, item)
	}
	return out, nil
}

func readItem(obj *etree.Element) (multicam.Item, error) {
	var item multicam.Item
	start, err := elementInt(obj, startPath)
	if err != nil {
		return item, err
	}
	end, err := elementInt(obj, endPath)
	if err != nil {
		return item, err
	}
	angle, err := elementInt(obj, anglePath)
	if err != nil {
		return item, err
	}
	item.Start = timeline.Ticks(start)
	item.End = timeline.Ticks(end)
	item.Angle = int(angle)
	return item, nil
}

func elementInt(obj *etree.Element, path string) (int64, error) {
	el := obj.FindElement(path)
	if el == nil {
		return 0, fmt.Errorf("missing %s", strings.TrimPrefix(path, "./"))
	}
	value, err := strconv.ParseInt(strings.TrimSpace(el.Text()), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", strings.TrimPrefix(path, "./"), err)
	}
	return value, nil
}

func formatTicks(t timeline.Ticks) string {
	return strconv.FormatInt(int64(t), 10)
}
