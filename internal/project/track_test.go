package project

import (
	"strings"
	"testing"

	"multicam/internal/testsupport"
)

func TestClearItemsForgetsNestedObjects(t *testing.T) {
	xml := strings.Replace(testsupport.SampleProjectXML,
		"<MultiCamAngle>1</MultiCamAngle>",
		"<MultiCamAngle>1</MultiCamAngle>\n\t\t\t<Marker ObjectID=\"26\"/>", 1)
	doc, err := Parse(strings.NewReader(xml))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.object("26") == nil {
		t.Fatal("expected nested marker to be indexed")
	}
	track, err := doc.MulticamTrack()
	if err != nil {
		t.Fatalf("MulticamTrack: %v", err)
	}

	track.ClearItems()

	for _, id := range []string{"20", "26"} {
		if doc.object(id) != nil {
			t.Fatalf("expected object %s to leave the index", id)
		}
	}
	for _, id := range []string{"21", "30"} {
		if doc.object(id) == nil {
			t.Fatalf("expected object %s to stay indexed", id)
		}
	}
}
