package history

import (
	"strings"
	"time"
)

// Status is the terminal outcome of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusRejected  Status = "rejected"
)

// ParseStatus normalizes a stored status value.
func ParseStatus(value string) (Status, bool) {
	switch status := Status(strings.ToLower(strings.TrimSpace(value))); status {
	case StatusSucceeded, StatusFailed, StatusRejected:
		return status, true
	default:
		return "", false
	}
}

// Params are the tuning values a run was executed with.
type Params struct {
	Sensitivity1      float64 `json:"sensitivity1"`
	Sensitivity2      float64 `json:"sensitivity2"`
	Envelope          string  `json:"envelope"`
	WindowFrames      int     `json:"window_frames"`
	MinNoiseSeconds   float64 `json:"min_noise_seconds"`
	MaxSilenceSeconds float64 `json:"max_silence_gap_seconds"`
	LongFrameSeconds  float64 `json:"long_frame_seconds"`
	Iterations        int     `json:"iterations"`
	MinHoldSeconds    float64 `json:"min_hold_seconds"`
	FrameRate         string  `json:"frame_rate"`
	PrimaryIndex      int     `json:"primary_index"`
	SecondaryIndex    int     `json:"secondary_index"`
	PrimaryAngle      int     `json:"primary_angle"`
	SecondaryAngle    int     `json:"secondary_angle"`
}

// StageCounts holds the number of frames produced by each stage.
type StageCounts struct {
	Detected   int `json:"detected"`
	Sanitized  int `json:"sanitized"`
	Complement int `json:"complement"`
	Merged     int `json:"merged"`
	Final      int `json:"final"`
}

// Run is one persisted pipeline execution.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	ProjectPath  string
	OutputPath   string
	Speaker1Path string
	Speaker2Path string
	DryRun       bool
	Params       Params
	Counts       StageCounts
	Status       Status
	ErrorKind    string
	ErrorMessage string
}

// Elapsed reports the wall time of the run.
func (r Run) Elapsed() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
