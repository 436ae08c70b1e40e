package activity

import "time"

// Waveform is a mono amplitude signal normalized to [-1, 1].
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration reports the signal length.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}
