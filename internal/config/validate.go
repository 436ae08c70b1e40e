package config

import (
	"errors"
	"fmt"
	"math"

	"multicam/internal/timeline"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateDurations(); err != nil {
		return err
	}
	if err := c.validateTracks(); err != nil {
		return err
	}
	if err := c.validateProject(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDetection() error {
	if err := checkSensitivity("detection.sensitivity1", c.Detection.Sensitivity1); err != nil {
		return err
	}
	if err := checkSensitivity("detection.sensitivity2", c.Detection.Sensitivity2); err != nil {
		return err
	}
	if c.Detection.WindowFrames < 1 {
		return errors.New("detection.window_frames must be >= 1")
	}
	switch c.Detection.Envelope {
	case "peak", "rms":
	default:
		return fmt.Errorf("detection.envelope must be peak or rms, got %q", c.Detection.Envelope)
	}
	switch c.Detection.Channel {
	case "mix", "left", "right", "loudest":
	default:
		return fmt.Errorf("detection.channel must be mix, left, right, or loudest, got %q", c.Detection.Channel)
	}
	return nil
}

func checkSensitivity(key string, value float64) error {
	if math.IsNaN(value) || value <= 0 || value > 1 {
		return fmt.Errorf("%s must be in (0,1], got %v", key, value)
	}
	return nil
}

func (c *Config) validateDurations() error {
	durations := []struct {
		key   string
		value float64
	}{
		{"sanitize.min_noise_seconds", c.Sanitize.MinNoiseSeconds},
		{"sanitize.max_silence_gap_seconds", c.Sanitize.MaxSilenceGapSeconds},
		{"merge.long_frame_seconds", c.Merge.LongFrameSeconds},
		{"dilution.min_hold_seconds", c.Dilution.MinHoldSeconds},
	}
	for _, d := range durations {
		if math.IsNaN(d.value) || math.IsInf(d.value, 0) || d.value < 0 {
			return fmt.Errorf("%s must be >= 0, got %v", d.key, d.value)
		}
	}
	if c.Dilution.Iterations < 0 {
		return errors.New("dilution.iterations must be >= 0")
	}
	return nil
}

func (c *Config) validateTracks() error {
	if c.Tracks.PrimaryIndex < 1 {
		return errors.New("tracks.primary_index must be >= 1")
	}
	if c.Tracks.SecondaryIndex < 1 {
		return errors.New("tracks.secondary_index must be >= 1")
	}
	if c.Tracks.PrimaryIndex == c.Tracks.SecondaryIndex {
		return errors.New("tracks.primary_index and tracks.secondary_index must differ")
	}
	if c.Tracks.PrimaryAngle < 1 {
		return errors.New("tracks.primary_angle must be >= 1")
	}
	if c.Tracks.SecondaryAngle < 1 {
		return errors.New("tracks.secondary_angle must be >= 1")
	}
	return nil
}

func (c *Config) validateProject() error {
	rate, err := timeline.ParseRate(c.Project.FrameRate)
	if err != nil {
		return fmt.Errorf("project.frame_rate: %w", err)
	}
	if _, err := rate.FrameTicks(); err != nil {
		return fmt.Errorf("project.frame_rate: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
}
