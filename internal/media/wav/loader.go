package wav

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gopxl/beep"
	beepwav "github.com/gopxl/beep/wav"

	"multicam/internal/activity"
	"multicam/internal/services"
)

// ChannelMode selects how stereo input is folded to mono.
type ChannelMode string

const (
	ChannelMix   ChannelMode = "mix"
	ChannelLeft  ChannelMode = "left"
	ChannelRight ChannelMode = "right"
	ChannelLoud  ChannelMode = "loudest"
)

// ParseChannelMode maps a config value onto a ChannelMode.
func ParseChannelMode(value string) (ChannelMode, error) {
	switch mode := ChannelMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return ChannelMix, nil
	case ChannelMix, ChannelLeft, ChannelRight, ChannelLoud:
		return mode, nil
	default:
		return "", services.Wrap(services.ErrInvalidInput, "wav", "parse channel mode",
			fmt.Sprintf("unknown channel mode %q (want mix, left, right, or loudest)", value), nil)
	}
}

// Info describes the decoded stream.
type Info struct {
	Path       string
	SampleRate int
	Channels   int
	Precision  int
	Samples    int
}

// Duration reports the decoded length.
func (i Info) Duration() time.Duration {
	if i.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(i.Samples) / float64(i.SampleRate) * float64(time.Second))
}

const streamChunk = 4096

// Load decodes path into a mono waveform, averaging the channels.
func Load(path string) (activity.Waveform, Info, error) {
	return LoadChannel(path, ChannelMix)
}

// LoadChannel decodes path into a mono waveform using mode to fold channels.
func LoadChannel(path string, mode ChannelMode) (activity.Waveform, Info, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return activity.Waveform{}, Info{}, services.Wrap(services.ErrInvalidInput, "wav", "load", "empty path", nil)
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return activity.Waveform{}, Info{}, services.Wrap(services.ErrInvalidInput, "wav", "load",
				fmt.Sprintf("%s does not exist", path), err)
		}
		return activity.Waveform{}, Info{}, services.Wrap(services.ErrInvalidInput, "wav", "load",
			fmt.Sprintf("open %s", path), err)
	}
	defer file.Close()

	stream, format, err := beepwav.Decode(file)
	if err != nil {
		return activity.Waveform{}, Info{}, classifyDecodeError(path, err)
	}
	defer stream.Close()

	samples, err := downmix(stream, mode)
	if err != nil {
		return activity.Waveform{}, Info{}, services.Wrap(services.ErrInvalidInput, "wav", "decode",
			fmt.Sprintf("read samples from %s", path), err)
	}
	info := Info{
		Path:       path,
		SampleRate: int(format.SampleRate),
		Channels:   format.NumChannels,
		Precision:  format.Precision,
		Samples:    len(samples),
	}
	if len(samples) == 0 {
		return activity.Waveform{}, info, services.Wrap(services.ErrInvalidInput, "wav", "decode",
			fmt.Sprintf("%s contains no samples", path), nil)
	}
	return activity.Waveform{Samples: samples, SampleRate: info.SampleRate}, info, nil
}

func downmix(stream beep.StreamSeekCloser, mode ChannelMode) ([]float64, error) {
	capacity := stream.Len()
	if capacity < 0 {
		capacity = 0
	}
	out := make([]float64, 0, capacity)
	buf := make([][2]float64, streamChunk)
	for {
		n, ok := stream.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, fold(buf[i], mode))
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func fold(sample [2]float64, mode ChannelMode) float64 {
	switch mode {
	case ChannelLeft:
		return sample[0]
	case ChannelRight:
		return sample[1]
	case ChannelLoud:
		if math.Abs(sample[1]) > math.Abs(sample[0]) {
			return sample[1]
		}
		return sample[0]
	default:
		return (sample[0] + sample[1]) / 2
	}
}

func classifyDecodeError(path string, err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unsupported") || strings.Contains(msg, "format") && strings.Contains(msg, "audio") {
		return services.Wrap(services.ErrUnsupported, "wav", "decode",
			fmt.Sprintf("%s uses an unsupported encoding", path), err)
	}
	return services.Wrap(services.ErrInvalidInput, "wav", "decode",
		fmt.Sprintf("%s is not a readable WAV file", path), err)
}
