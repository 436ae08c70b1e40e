package services

import (
	"errors"
	"fmt"
	"strings"

	"multicam/internal/history"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnsupported      = errors.New("unsupported")
	ErrMalformedProject = errors.New("malformed project")
	ErrConfiguration    = errors.New("configuration error")
	ErrIO               = errors.New("i/o failure")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later status classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus maps a pipeline error to the history status recorded for the run.
// Input, format, and project problems need the operator to change something, so
// they are recorded as rejected; everything else is a plain failure.
func FailureStatus(err error) history.Status {
	switch {
	case err == nil:
		return history.StatusSucceeded
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrUnsupported),
		errors.Is(err, ErrMalformedProject),
		errors.Is(err, ErrConfiguration):
		return history.StatusRejected
	default:
		return history.StatusFailed
	}
}

// Kind returns a short classification label for err, suitable for logs and JSON output.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrUnsupported):
		return "unsupported"
	case errors.Is(err, ErrMalformedProject):
		return "malformed_project"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "internal"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
