package services_test

import (
	"errors"
	"strings"
	"testing"

	"multicam/internal/history"
	"multicam/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrUnsupported, "activity", "extract", "sample rate too low", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrUnsupported) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"activity", "extract", "sample rate too low"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected ErrIO default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestFailureStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want history.Status
	}{
		{"nil", nil, history.StatusSucceeded},
		{"invalid", services.Wrap(services.ErrInvalidInput, "activity", "extract", "empty", nil), history.StatusRejected},
		{"unsupported", services.Wrap(services.ErrUnsupported, "wav", "decode", "float", nil), history.StatusRejected},
		{"project", services.Wrap(services.ErrMalformedProject, "multicam", "locate", "missing", nil), history.StatusRejected},
		{"io", services.Wrap(services.ErrIO, "project", "save", "disk full", errors.New("enospc")), history.StatusFailed},
		{"plain", errors.New("other"), history.StatusFailed},
	}
	for _, tc := range cases {
		if got := services.FailureStatus(tc.err); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestKind(t *testing.T) {
	if got := services.Kind(services.Wrap(services.ErrMalformedProject, "", "", "x", nil)); got != "malformed_project" {
		t.Fatalf("unexpected kind %q", got)
	}
	if got := services.Kind(errors.New("x")); got != "internal" {
		t.Fatalf("unexpected kind %q", got)
	}
	if got := services.Kind(nil); got != "" {
		t.Fatalf("expected empty kind for nil, got %q", got)
	}
}
