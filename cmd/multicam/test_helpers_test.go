package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"multicam/internal/config"
	"multicam/internal/testsupport"
)

const testSampleRate = 8000

type cliTestEnv struct {
	cfg        *config.Config
	baseDir    string
	configPath string
	project    string
	speaker1   string
	speaker2   string
}

// setupCLITestEnv writes a config, a compressed sample project, and two
// speakers that alternate: speaker 1 for three seconds, then speaker 2.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("MULTICAM_LOG_LEVEL", "")

	configPath := filepath.Join(base, "multicam.toml")
	writeTestConfig(t, configPath, cfg)

	env := &cliTestEnv{
		cfg:        cfg,
		baseDir:    base,
		configPath: configPath,
		project:    filepath.Join(base, "projects", "interview.prproj"),
		speaker1:   filepath.Join(base, "audio", "host.wav"),
		speaker2:   filepath.Join(base, "audio", "guest.wav"),
	}
	testsupport.WriteProject(t, env.project, true)
	testsupport.WriteWAV(t, env.speaker1, testSampleRate, testsupport.Speech(testSampleRate,
		testsupport.Segment{Seconds: 3, Amplitude: 0.5}, testsupport.Segment{Seconds: 3}))
	testsupport.WriteWAV(t, env.speaker2, testSampleRate, testsupport.Speech(testSampleRate,
		testsupport.Segment{Seconds: 3}, testsupport.Segment{Seconds: 3, Amplitude: 0.5}))
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nlog_dir = %q\nstate_dir = %q\n\n[logging]\nformat = \"json\"\nlevel = \"error\"\n",
		cfg.Paths.LogDir,
		cfg.Paths.StateDir,
	)
	testsupport.WriteFile(t, path, content)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// requireContainsFold ignores case; table headers and footers are upper-cased
// by the table style.
func requireContainsFold(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(strings.ToUpper(output), strings.ToUpper(substr)) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
