package testsupport

import (
	"path/filepath"
	"testing"

	"multicam/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config whose log and state directories live in
// a per-test temp directory, then applies opts.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Logging.Format = "json"
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithoutHistory disables the run history database.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithDilution overrides the smoothing passes and minimum hold.
func WithDilution(iterations int, minHoldSeconds float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Dilution.Iterations = iterations
		b.cfg.Dilution.MinHoldSeconds = minHoldSeconds
	}
}

// WithFrameRate overrides the project frame rate.
func WithFrameRate(rate string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Project.FrameRate = rate
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
