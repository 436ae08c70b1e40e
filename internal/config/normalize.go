package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDetection()
	c.Project.FrameRate = strings.TrimSpace(c.Project.FrameRate)
	if c.Project.FrameRate == "" {
		c.Project.FrameRate = defaultFrameRate
	}
	c.Project.TrackObjectID = strings.TrimSpace(c.Project.TrackObjectID)
	if c.History.Keep < 0 {
		c.History.Keep = 0
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDetection() {
	c.Detection.Envelope = strings.ToLower(strings.TrimSpace(c.Detection.Envelope))
	if c.Detection.Envelope == "" {
		c.Detection.Envelope = defaultEnvelope
	}
	c.Detection.Channel = strings.ToLower(strings.TrimSpace(c.Detection.Channel))
	if c.Detection.Channel == "" {
		c.Detection.Channel = defaultChannel
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("MULTICAM_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
