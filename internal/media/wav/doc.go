// Package wav loads speaker recordings into activity.Waveform values.
//
// Decoding uses github.com/gopxl/beep/wav, so only PCM WAV files are accepted.
// Multi-channel input is folded to mono according to the configured channel
// mode. Missing or corrupt files fail with services.ErrInvalidInput; encodings
// the decoder cannot handle fail with services.ErrUnsupported.
package wav
