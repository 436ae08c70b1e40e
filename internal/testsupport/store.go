package testsupport

import (
	"context"
	"testing"
	"time"

	"multicam/internal/config"
	"multicam/internal/history"
)

// MustOpenHistory opens the history store under cfg's state directory and
// registers cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(context.Background(), cfg.Paths.StateDir)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RecordRun stores a minimal run with the given id, status, and start time.
func RecordRun(t testing.TB, store *history.Store, id string, status history.Status, started time.Time) history.Run {
	t.Helper()

	run := history.Run{
		ID:          id,
		StartedAt:   started,
		FinishedAt:  started.Add(1500 * time.Millisecond),
		ProjectPath: "/projects/interview.prproj",
		Status:      status,
		Counts:      history.StageCounts{Detected: 4, Sanitized: 3, Complement: 2, Merged: 5, Final: 4},
	}
	if status != history.StatusSucceeded {
		run.ErrorKind = "invalid_input"
		run.ErrorMessage = "speaker1: invalid input: wav: open: missing file"
	}
	if err := store.Record(context.Background(), run); err != nil {
		t.Fatalf("record run %s: %v", id, err)
	}
	return run
}
