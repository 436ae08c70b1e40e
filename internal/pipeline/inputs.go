package pipeline

import (
	"fmt"

	"multicam/internal/activity"
	"multicam/internal/media/wav"
)

// LoadSpeakers decodes both speaker recordings with the same channel mode.
func LoadSpeakers(path1, path2 string, mode wav.ChannelMode) (activity.Waveform, activity.Waveform, error) {
	speaker1, _, err := wav.LoadChannel(path1, mode)
	if err != nil {
		return activity.Waveform{}, activity.Waveform{}, fmt.Errorf("speaker1: %w", err)
	}
	speaker2, _, err := wav.LoadChannel(path2, mode)
	if err != nil {
		return activity.Waveform{}, activity.Waveform{}, fmt.Errorf("speaker2: %w", err)
	}
	return speaker1, speaker2, nil
}
