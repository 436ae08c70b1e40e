package pipeline

import (
	"fmt"

	"multicam/internal/activity"
	"multicam/internal/config"
	"multicam/internal/history"
	"multicam/internal/multicam"
	"multicam/internal/services"
	"multicam/internal/timeline"
)

// Settings are the resolved, tick-based parameters of one run.
type Settings struct {
	Rate          timeline.Rate
	WindowFrames  int
	Envelope      activity.EnvelopeKind
	Sensitivity1  float64
	Sensitivity2  float64
	MinNoise      timeline.Ticks
	MaxSilenceGap timeline.Ticks
	LongFrame     timeline.Ticks
	MinHold       timeline.Ticks
	Iterations    int

	PrimaryTrack   int
	SecondaryTrack int
	PrimaryAngle   int
	SecondaryAngle int
}

// SettingsFromConfig converts the seconds-based configuration into ticks.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	if cfg == nil {
		return Settings{}, services.Wrap(services.ErrConfiguration, "pipeline", "settings", "configuration unavailable", nil)
	}
	rate, err := timeline.ParseRate(cfg.Project.FrameRate)
	if err != nil {
		return Settings{}, services.Wrap(services.ErrConfiguration, "pipeline", "settings", "project.frame_rate", err)
	}
	envelope, err := activity.ParseEnvelope(cfg.Detection.Envelope)
	if err != nil {
		return Settings{}, services.Wrap(services.ErrConfiguration, "pipeline", "settings", "detection.envelope", err)
	}
	return Settings{
		Rate:           rate,
		WindowFrames:   cfg.Detection.WindowFrames,
		Envelope:       envelope,
		Sensitivity1:   cfg.Detection.Sensitivity1,
		Sensitivity2:   cfg.Detection.Sensitivity2,
		MinNoise:       timeline.Seconds(cfg.Sanitize.MinNoiseSeconds),
		MaxSilenceGap:  timeline.Seconds(cfg.Sanitize.MaxSilenceGapSeconds),
		LongFrame:      timeline.Seconds(cfg.Merge.LongFrameSeconds),
		MinHold:        timeline.Seconds(cfg.Dilution.MinHoldSeconds),
		Iterations:     cfg.Dilution.Iterations,
		PrimaryTrack:   cfg.Tracks.PrimaryIndex,
		SecondaryTrack: cfg.Tracks.SecondaryIndex,
		PrimaryAngle:   cfg.Tracks.PrimaryAngle,
		SecondaryAngle: cfg.Tracks.SecondaryAngle,
	}, nil
}

// Angles maps the speaker tracks to their multicam angles.
func (s Settings) Angles() multicam.Angles {
	return multicam.Angles{
		s.PrimaryTrack:   s.PrimaryAngle,
		s.SecondaryTrack: s.SecondaryAngle,
	}
}

// Params renders the settings for the history store.
func (s Settings) Params() history.Params {
	return history.Params{
		Sensitivity1:      s.Sensitivity1,
		Sensitivity2:      s.Sensitivity2,
		Envelope:          string(s.Envelope),
		WindowFrames:      s.WindowFrames,
		MinNoiseSeconds:   s.MinNoise.Seconds(),
		MaxSilenceSeconds: s.MaxSilenceGap.Seconds(),
		LongFrameSeconds:  s.LongFrame.Seconds(),
		Iterations:        s.Iterations,
		MinHoldSeconds:    s.MinHold.Seconds(),
		FrameRate:         s.Rate.String(),
		PrimaryIndex:      s.PrimaryTrack,
		SecondaryIndex:    s.SecondaryTrack,
		PrimaryAngle:      s.PrimaryAngle,
		SecondaryAngle:    s.SecondaryAngle,
	}
}

func (s Settings) validate() error {
	switch {
	case s.PrimaryTrack == s.SecondaryTrack:
		return services.Wrap(services.ErrInvalidInput, "pipeline", "settings",
			fmt.Sprintf("speakers share track %d", s.PrimaryTrack), nil)
	case s.MinNoise < 0 || s.MaxSilenceGap < 0 || s.LongFrame < 0 || s.MinHold < 0:
		return services.Wrap(services.ErrInvalidInput, "pipeline", "settings", "durations must be >= 0", nil)
	case s.Iterations < 0:
		return services.Wrap(services.ErrInvalidInput, "pipeline", "settings",
			fmt.Sprintf("iterations must be >= 0, got %d", s.Iterations), nil)
	}
	return nil
}
