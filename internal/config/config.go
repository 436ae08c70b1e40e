package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir   string `toml:"log_dir"`
	StateDir string `toml:"state_dir"`
}

// Detection controls how speech activity is found in each waveform.
type Detection struct {
	Sensitivity1 float64 `toml:"sensitivity1"`
	Sensitivity2 float64 `toml:"sensitivity2"`
	WindowFrames int     `toml:"window_frames"`
	Envelope     string  `toml:"envelope"`
	Channel      string  `toml:"channel"`
}

// Sanitize holds the frame cleanup thresholds.
type Sanitize struct {
	MinNoiseSeconds      float64 `toml:"min_noise_seconds"`
	MaxSilenceGapSeconds float64 `toml:"max_silence_gap_seconds"`
}

// Merge holds the interjection cutoff used when splicing speaker 2 into the timeline.
type Merge struct {
	LongFrameSeconds float64 `toml:"long_frame_seconds"`
}

// Dilution controls flicker smoothing.
type Dilution struct {
	Iterations     int     `toml:"iterations"`
	MinHoldSeconds float64 `toml:"min_hold_seconds"`
}

// Tracks maps each speaker to a timeline track and a multicam angle.
type Tracks struct {
	PrimaryIndex   int `toml:"primary_index"`
	SecondaryIndex int `toml:"secondary_index"`
	PrimaryAngle   int `toml:"primary_angle"`
	SecondaryAngle int `toml:"secondary_angle"`
}

// Project describes the target Premiere project.
type Project struct {
	FrameRate     string `toml:"frame_rate"`
	TrackObjectID string `toml:"track_object_id"`
}

// History controls the run history database.
type History struct {
	Enabled bool `toml:"enabled"`
	Keep    int  `toml:"keep"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for multicam.
//
// Configuration sections by subsystem:
//   - Paths: log and state directories
//   - Detection: per-speaker activity thresholds and envelope
//   - Sanitize: noise and silence-gap durations
//   - Merge: interjection cutoff
//   - Dilution: smoothing passes and minimum hold
//   - Tracks: speaker to track and angle mapping
//   - Project: frame rate and multicam track selection
//   - History: run history database
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Detection Detection `toml:"detection"`
	Sanitize  Sanitize  `toml:"sanitize"`
	Merge     Merge     `toml:"merge"`
	Dilution  Dilution  `toml:"dilution"`
	Tracks    Tracks    `toml:"tracks"`
	Project   Project   `toml:"project"`
	History   History   `toml:"history"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("multicam.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and state directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.StateDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Encode writes the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
