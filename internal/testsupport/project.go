package testsupport

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

// SampleProjectXML is a minimal project with one plain video track followed
// by a multicam track. The multicam track (ObjectID 12) references clip item
// 20; the highest ObjectID in the document is 30.
const SampleProjectXML = `<?xml version="1.0" encoding="UTF-8" ?>
<PremiereData Version="3">
	<VideoClipTrack ObjectID="11">
		<ClipTrack Version="2">
			<ClipItems Version="3">
				<TrackItems Version="1">
					<TrackItem Index="0" ObjectRef="21"/>
				</TrackItems>
			</ClipItems>
		</ClipTrack>
	</VideoClipTrack>
	<VideoClipTrack ObjectID="12">
		<ClipTrack Version="2">
			<ClipItems Version="3">
				<TrackItems Version="1">
					<TrackItem Index="0" ObjectRef="20"/>
				</TrackItems>
			</ClipItems>
		</ClipTrack>
	</VideoClipTrack>
	<VideoClipTrackItem ObjectID="20">
		<ClipTrackItem Version="8">
			<TrackItem Version="4">
				<Start>0</Start>
				<End>2540160000000</End>
			</TrackItem>
			<SubClip ObjectRef="30"/>
			<MultiCamAngle>1</MultiCamAngle>
		</ClipTrackItem>
	</VideoClipTrackItem>
	<VideoClipTrackItem ObjectID="21">
		<ClipTrackItem Version="8">
			<TrackItem Version="4">
				<Start>0</Start>
				<End>2540160000000</End>
			</TrackItem>
			<SubClip ObjectRef="30"/>
		</ClipTrackItem>
	</VideoClipTrackItem>
	<SubClip ObjectID="30">
		<Name>Interview Multicam</Name>
	</SubClip>
</PremiereData>
`

// WriteProject writes SampleProjectXML to path, gzip-compressed like a real
// .prproj when compressed is true.
func WriteProject(t testing.TB, path string, compressed bool) {
	t.Helper()
	WriteProjectXML(t, path, SampleProjectXML, compressed)
}

// WriteProjectXML writes arbitrary project XML to path.
func WriteProjectXML(t testing.TB, path, xml string, compressed bool) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	data := []byte(xml)
	if compressed {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			t.Fatalf("gzip %s: %v", path, err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("gzip close %s: %v", path, err)
		}
		data = buf.Bytes()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
