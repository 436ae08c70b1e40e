package activity

import (
	"fmt"
	"math"
	"strings"

	"multicam/internal/services"
	"multicam/internal/timeline"
)

// EnvelopeKind selects how a window's amplitude is summarized.
type EnvelopeKind string

const (
	EnvelopePeak EnvelopeKind = "peak"
	EnvelopeRMS  EnvelopeKind = "rms"
)

// ParseEnvelope maps a config value onto an EnvelopeKind.
func ParseEnvelope(value string) (EnvelopeKind, error) {
	switch EnvelopeKind(strings.ToLower(strings.TrimSpace(value))) {
	case EnvelopePeak, "":
		return EnvelopePeak, nil
	case EnvelopeRMS:
		return EnvelopeRMS, nil
	default:
		return "", services.Wrap(services.ErrInvalidInput, "activity", "parse envelope",
			fmt.Sprintf("unknown envelope %q (want peak or rms)", value), nil)
	}
}

// Extractor detects activity on the project's frame grid.
type Extractor struct {
	rate         timeline.Rate
	windowFrames int64
	windowTicks  timeline.Ticks
	envelope     EnvelopeKind
}

// NewExtractor builds an extractor whose windows span windowFrames video frames.
func NewExtractor(rate timeline.Rate, windowFrames int, envelope EnvelopeKind) (*Extractor, error) {
	if windowFrames <= 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "activity", "configure",
			fmt.Sprintf("window must span at least one frame, got %d", windowFrames), nil)
	}
	tpf, err := rate.FrameTicks()
	if err != nil {
		return nil, err
	}
	if envelope == "" {
		envelope = EnvelopePeak
	}
	return &Extractor{
		rate:         rate,
		windowFrames: int64(windowFrames),
		windowTicks:  tpf * timeline.Ticks(windowFrames),
		envelope:     envelope,
	}, nil
}

// Rate returns the project frame rate the extractor aligns to.
func (e *Extractor) Rate() timeline.Rate {
	return e.rate
}

// Extract returns one Detected frame per run of windows whose envelope exceeds
// sensitivity. A silent waveform yields an empty, non-nil slice.
func (e *Extractor) Extract(w Waveform, sensitivity float64, track int) ([]timeline.Frame, error) {
	if math.IsNaN(sensitivity) || sensitivity <= 0 || sensitivity > 1 {
		return nil, services.Wrap(services.ErrInvalidInput, "activity", "extract",
			fmt.Sprintf("sensitivity %v is outside (0,1]", sensitivity), nil)
	}
	levels, err := e.Envelope(w)
	if err != nil {
		return nil, err
	}

	frames := make([]timeline.Frame, 0)
	start := -1
	for i, level := range levels {
		active := level > sensitivity
		switch {
		case active && start < 0:
			start = i
		case !active && start >= 0:
			frames = append(frames, e.frame(start, i, track))
			start = -1
		}
	}
	if start >= 0 {
		frames = append(frames, e.frame(start, len(levels), track))
	}
	return frames, nil
}

// Envelope returns the per-window amplitude summary of w.
func (e *Extractor) Envelope(w Waveform) ([]float64, error) {
	count, err := e.windowCount(w)
	if err != nil {
		return nil, err
	}
	levels := make([]float64, count)
	for i := int64(0); i < count; i++ {
		lo, hi := e.windowBounds(i, w.SampleRate, len(w.Samples))
		levels[i] = e.summarize(w.Samples[lo:hi])
	}
	return levels, nil
}

// Span returns the recording length in ticks, rounded up to a whole window.
func (e *Extractor) Span(w Waveform) (timeline.Ticks, error) {
	count, err := e.windowCount(w)
	if err != nil {
		return 0, err
	}
	return timeline.Ticks(count) * e.windowTicks, nil
}

func (e *Extractor) frame(startWindow, endWindow, track int) timeline.Frame {
	return timeline.Frame{
		InPoint:  timeline.Ticks(startWindow) * e.windowTicks,
		OutPoint: timeline.Ticks(endWindow) * e.windowTicks,
		Track:    track,
		Origin:   timeline.Detected,
	}
}

// samplesPerWindow numerator: a window holds windowFrames*sr*den/num samples.
func (e *Extractor) windowScale(sampleRate int) int64 {
	return e.windowFrames * int64(sampleRate) * e.rate.Den
}

func (e *Extractor) windowCount(w Waveform) (int64, error) {
	if len(w.Samples) == 0 {
		return 0, services.Wrap(services.ErrInvalidInput, "activity", "extract", "waveform is empty", nil)
	}
	if w.SampleRate <= 0 {
		return 0, services.Wrap(services.ErrInvalidInput, "activity", "extract",
			fmt.Sprintf("invalid sample rate %d", w.SampleRate), nil)
	}
	scale := e.windowScale(w.SampleRate)
	if scale < e.rate.Num {
		return 0, services.Wrap(services.ErrUnsupported, "activity", "extract",
			fmt.Sprintf("sample rate %d Hz is too low for %s fps windows", w.SampleRate, e.rate), nil)
	}
	total := int64(len(w.Samples)) * e.rate.Num
	return (total + scale - 1) / scale, nil
}

func (e *Extractor) windowBounds(i int64, sampleRate, length int) (int, int) {
	scale := e.windowScale(sampleRate)
	lo := i * scale / e.rate.Num
	hi := (i + 1) * scale / e.rate.Num
	if hi > int64(length) {
		hi = int64(length)
	}
	if lo > hi {
		lo = hi
	}
	return int(lo), int(hi)
}

func (e *Extractor) summarize(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	switch e.envelope {
	case EnvelopeRMS:
		var sum float64
		for _, s := range window {
			sum += s * s
		}
		return math.Sqrt(sum / float64(len(window)))
	default:
		var peak float64
		for _, s := range window {
			if a := math.Abs(s); a > peak {
				peak = a
			}
		}
		return peak
	}
}
