package cutlist

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"multicam/internal/multicam"
	"multicam/internal/services"
	"multicam/internal/timeline"
)

// Cut is one camera switch in human-readable form.
type Cut struct {
	Index         int     `json:"index" yaml:"index"`
	Start         float64 `json:"start_seconds" yaml:"start_seconds"`
	End           float64 `json:"end_seconds" yaml:"end_seconds"`
	Duration      float64 `json:"duration_seconds" yaml:"duration_seconds"`
	StartTicks    int64   `json:"start_ticks" yaml:"start_ticks"`
	EndTicks      int64   `json:"end_ticks" yaml:"end_ticks"`
	StartTimecode string  `json:"start_timecode" yaml:"start_timecode"`
	EndTimecode   string  `json:"end_timecode" yaml:"end_timecode"`
	Track         int     `json:"track" yaml:"track"`
	Angle         int     `json:"angle" yaml:"angle"`
	Origin        string  `json:"origin" yaml:"origin"`
}

// TrackSummary aggregates the cuts of one track.
type TrackSummary struct {
	Track   int     `json:"track" yaml:"track"`
	Angle   int     `json:"angle" yaml:"angle"`
	Cuts    int     `json:"cuts" yaml:"cuts"`
	Seconds float64 `json:"seconds" yaml:"seconds"`
	Share   float64 `json:"share" yaml:"share"`
}

// Summary aggregates a whole cut list.
type Summary struct {
	Cuts    int            `json:"cuts" yaml:"cuts"`
	Seconds float64        `json:"seconds" yaml:"seconds"`
	Tracks  []TrackSummary `json:"tracks" yaml:"tracks"`
}

// Document is the exported form of a run's cut list.
type Document struct {
	RunID     string  `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	FrameRate string  `json:"frame_rate" yaml:"frame_rate"`
	Cuts      []Cut   `json:"cuts" yaml:"cuts"`
	Summary   Summary `json:"summary" yaml:"summary"`
}

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml, or yml.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", services.Wrap(services.ErrInvalidInput, "cutlist", "parse format",
			fmt.Sprintf("unknown format %q (want json or yaml)", value), nil)
	}
}

// FormatForPath picks the encoding from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// FromFrames builds the cut list in time order. Frames on tracks without an
// angle keep Angle 0.
func FromFrames(frames []timeline.Frame, angles multicam.Angles, rate timeline.Rate) []Cut {
	sorted := timeline.Sorted(frames)
	cuts := make([]Cut, 0, len(sorted))
	for i, f := range sorted {
		angle, _ := angles.Angle(f.Track)
		cuts = append(cuts, Cut{
			Index:         i + 1,
			Start:         round(f.InPoint.Seconds()),
			End:           round(f.OutPoint.Seconds()),
			Duration:      round(f.Duration().Seconds()),
			StartTicks:    int64(f.InPoint),
			EndTicks:      int64(f.OutPoint),
			StartTimecode: rate.Timecode(f.InPoint),
			EndTimecode:   rate.Timecode(f.OutPoint),
			Track:         f.Track,
			Angle:         angle,
			Origin:        f.Origin.String(),
		})
	}
	return cuts
}

// Summarize totals cuts per track, ordered by track index.
func Summarize(cuts []Cut) Summary {
	summary := Summary{Cuts: len(cuts), Tracks: []TrackSummary{}}
	byTrack := make(map[int]*TrackSummary)
	var totalTicks int64
	for _, c := range cuts {
		ts, ok := byTrack[c.Track]
		if !ok {
			ts = &TrackSummary{Track: c.Track, Angle: c.Angle}
			byTrack[c.Track] = ts
		}
		ts.Cuts++
		ts.Seconds += timeline.Ticks(c.EndTicks - c.StartTicks).Seconds()
		totalTicks += c.EndTicks - c.StartTicks
	}
	summary.Seconds = round(timeline.Ticks(totalTicks).Seconds())
	for _, ts := range byTrack {
		ts.Seconds = round(ts.Seconds)
		if summary.Seconds > 0 {
			ts.Share = round(ts.Seconds / summary.Seconds)
		}
		summary.Tracks = append(summary.Tracks, *ts)
	}
	sort.Slice(summary.Tracks, func(i, j int) bool { return summary.Tracks[i].Track < summary.Tracks[j].Track })
	return summary
}

// NewDocument assembles an export document for cuts.
func NewDocument(runID string, rate timeline.Rate, cuts []Cut) Document {
	if cuts == nil {
		cuts = []Cut{}
	}
	return Document{RunID: runID, FrameRate: rate.String(), Cuts: cuts, Summary: Summarize(cuts)}
}

// Encode writes doc to w in the requested format.
func Encode(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return services.Wrap(services.ErrIO, "cutlist", "encode json", "", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			_ = enc.Close()
			return services.Wrap(services.ErrIO, "cutlist", "encode yaml", "", err)
		}
		if err := enc.Close(); err != nil {
			return services.Wrap(services.ErrIO, "cutlist", "encode yaml", "", err)
		}
		return nil
	default:
		return services.Wrap(services.ErrInvalidInput, "cutlist", "encode",
			fmt.Sprintf("unknown format %q", format), nil)
	}
}

// Label renders a machine label such as "synthetic" or "speaker_two" for tables.
func Label(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", " "))
	if value == "" {
		return "-"
	}
	return cases.Title(language.English).String(value)
}

func round(v float64) float64 {
	if v < 0 {
		return -round(-v)
	}
	return float64(int64(v*1000+0.5)) / 1000
}
