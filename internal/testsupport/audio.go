package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Segment describes a run of synthetic audio. Amplitude 0 produces silence.
type Segment struct {
	Seconds   float64
	Amplitude float64
}

// Speech renders segments as a square wave at the given sample rate, so the
// peak of each segment equals its amplitude.
func Speech(sampleRate int, segments ...Segment) []float64 {
	var out []float64
	for _, seg := range segments {
		n := int(seg.Seconds*float64(sampleRate) + 0.5)
		for i := 0; i < n; i++ {
			v := seg.Amplitude
			if i%2 == 1 {
				v = -v
			}
			out = append(out, v)
		}
	}
	return out
}

// WriteWAV encodes mono samples as 16-bit PCM at path.
func WriteWAV(t testing.TB, path string, sampleRate int, samples []float64) {
	t.Helper()
	writeWAV(t, path, sampleRate, 1, func(i int) [2]float64 {
		return [2]float64{samples[i], samples[i]}
	}, len(samples))
}

// WriteStereoWAV encodes two channels as 16-bit PCM at path. The shorter
// channel is padded with silence.
func WriteStereoWAV(t testing.TB, path string, sampleRate int, left, right []float64) {
	t.Helper()
	n := max(len(left), len(right))
	writeWAV(t, path, sampleRate, 2, func(i int) [2]float64 {
		var frame [2]float64
		if i < len(left) {
			frame[0] = left[i]
		}
		if i < len(right) {
			frame[1] = right[i]
		}
		return frame
	}, n)
}

func writeWAV(t testing.TB, path string, sampleRate, channels int, at func(int) [2]float64, total int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	pos := 0
	streamer := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for n < len(samples) && pos < total {
			samples[n] = at(pos)
			n++
			pos++
		}
		return n, true
	})
	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: channels,
		Precision:   2,
	}
	if err := wav.Encode(f, streamer, format); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}
