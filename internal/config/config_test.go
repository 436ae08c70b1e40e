package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"multicam/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "multicam", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if want := filepath.Join(tempHome, ".local", "share", "multicam", "logs"); cfg.Paths.LogDir != want {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, want)
	}
	if want := filepath.Join(tempHome, ".local", "share", "multicam"); cfg.Paths.StateDir != want {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, want)
	}
	if cfg.Detection.Sensitivity1 != 0.055 || cfg.Detection.Sensitivity2 != 0.065 {
		t.Fatalf("unexpected sensitivities: %+v", cfg.Detection)
	}
	if cfg.Dilution.Iterations != 3 {
		t.Fatalf("expected 3 dilution iterations, got %d", cfg.Dilution.Iterations)
	}
	if cfg.Tracks.PrimaryIndex != 1 || cfg.Tracks.SecondaryIndex != 2 {
		t.Fatalf("unexpected track indices: %+v", cfg.Tracks)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, cfg.Paths.StateDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "multicam.toml")
	body := `
[detection]
sensitivity1 = 0.1
envelope = " RMS "

[dilution]
iterations = 0

[project]
frame_rate = "29.97"
track_object_id = " 42 "

[logging]
format = "JSON"
`
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Detection.Sensitivity1 != 0.1 {
		t.Fatalf("expected sensitivity1 override, got %v", cfg.Detection.Sensitivity1)
	}
	if cfg.Detection.Sensitivity2 != 0.065 {
		t.Fatalf("expected sensitivity2 default to survive, got %v", cfg.Detection.Sensitivity2)
	}
	if cfg.Detection.Envelope != "rms" {
		t.Fatalf("expected normalized envelope, got %q", cfg.Detection.Envelope)
	}
	if cfg.Dilution.Iterations != 0 {
		t.Fatalf("expected zero iterations to be honoured, got %d", cfg.Dilution.Iterations)
	}
	if cfg.Project.TrackObjectID != "42" {
		t.Fatalf("expected trimmed track id, got %q", cfg.Project.TrackObjectID)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "multicam.toml")
	if err := os.WriteFile(configPath, []byte("[detection]\nsensitivity = 0.2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestEnvOverridesLogLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("MULTICAM_LOG_LEVEL", " DEBUG ")
	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level from env, got %q", cfg.Logging.Level)
	}
}

func TestCreateSampleMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var sample config.Config
	if err := toml.Unmarshal(contents, &sample); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	def := config.Default()
	if sample.Detection != def.Detection {
		t.Fatalf("sample detection %+v differs from defaults %+v", sample.Detection, def.Detection)
	}
	if sample.Dilution != def.Dilution || sample.Tracks != def.Tracks || sample.Sanitize != def.Sanitize {
		t.Fatal("sample thresholds differ from defaults")
	}
	if !strings.Contains(sample.Paths.StateDir, "multicam") {
		t.Fatalf("expected state dir to contain multicam, got %q", sample.Paths.StateDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"zero sensitivity", func(c *config.Config) { c.Detection.Sensitivity1 = 0 }, "detection.sensitivity1"},
		{"sensitivity above one", func(c *config.Config) { c.Detection.Sensitivity2 = 1.5 }, "detection.sensitivity2"},
		{"window frames", func(c *config.Config) { c.Detection.WindowFrames = 0 }, "detection.window_frames"},
		{"envelope", func(c *config.Config) { c.Detection.Envelope = "mean" }, "detection.envelope"},
		{"channel", func(c *config.Config) { c.Detection.Channel = "center" }, "detection.channel"},
		{"negative noise", func(c *config.Config) { c.Sanitize.MinNoiseSeconds = -1 }, "sanitize.min_noise_seconds"},
		{"negative iterations", func(c *config.Config) { c.Dilution.Iterations = -1 }, "dilution.iterations"},
		{"same tracks", func(c *config.Config) { c.Tracks.SecondaryIndex = c.Tracks.PrimaryIndex }, "must differ"},
		{"zero angle", func(c *config.Config) { c.Tracks.SecondaryAngle = 0 }, "tracks.secondary_angle"},
		{"frame rate", func(c *config.Config) { c.Project.FrameRate = "fast" }, "project.frame_rate"},
		{"log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
