package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"multicam/internal/activity"
	"multicam/internal/history"
	"multicam/internal/logging"
	"multicam/internal/multicam"
	"multicam/internal/services"
	"multicam/internal/timeline"
)

// Stage names, in execution order.
const (
	StageExtract    = "extract"
	StageSanitize   = "sanitize"
	StageComplement = "complement"
	StageMerge      = "merge"
	StageDilute     = "dilute"
	StageWrite      = "write"
)

// Stages lists every stage Run executes.
var Stages = []string{StageExtract, StageSanitize, StageComplement, StageMerge, StageDilute, StageWrite}

// Progress reports that a stage finished.
type Progress struct {
	Stage  string
	Step   int
	Total  int
	Frames int
}

// Input carries everything one run needs.
type Input struct {
	// RunID is generated when empty.
	RunID    string
	Settings Settings
	Speaker1 activity.Waveform
	Speaker2 activity.Waveform
	// Document receives the cut list. A nil Document runs every stage but
	// the write, which is reported as skipped.
	Document multicam.Container
	Logger   *slog.Logger
	Progress func(Progress)
}

// Result summarizes a finished run.
type Result struct {
	RunID   string
	Span    timeline.Ticks
	Frames  []timeline.Frame
	Counts  history.StageCounts
	Written int
	Elapsed time.Duration
}

type runner struct {
	ctx    context.Context
	in     Input
	logger *slog.Logger
	step   int
}

// Run executes the full cut-list pipeline. Errors are classified with the
// services markers; nothing is written when any stage before the write fails.
func Run(ctx context.Context, in Input) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if in.RunID == "" {
		in.RunID = uuid.NewString()
	}
	ctx = services.WithRunID(ctx, in.RunID)
	started := time.Now()
	result := Result{RunID: in.RunID}

	r := &runner{
		ctx:    ctx,
		in:     in,
		logger: logging.WithContext(ctx, logging.NewComponentLogger(in.Logger, "pipeline")),
	}
	if err := in.Settings.validate(); err != nil {
		return result, err
	}
	extractor, err := activity.NewExtractor(in.Settings.Rate, in.Settings.WindowFrames, in.Settings.Envelope)
	if err != nil {
		return result, err
	}

	s := in.Settings
	var primary, secondary, complement, merged []timeline.Frame
	var silent bool

	err = r.stage(StageExtract, func(ctx context.Context, logger *slog.Logger) (int, error) {
		span1, err := extractor.Span(in.Speaker1)
		if err != nil {
			return 0, speakerError("speaker1", err)
		}
		span2, err := extractor.Span(in.Speaker2)
		if err != nil {
			return 0, speakerError("speaker2", err)
		}
		result.Span = max(span1, span2)
		if span1 != span2 {
			logging.WarnWithContext(logger, "speaker recordings differ in length", "span_mismatch",
				logging.Seconds("speaker1_seconds", span1.Seconds()),
				logging.Seconds("speaker2_seconds", span2.Seconds()),
				logging.String(logging.FieldErrorHint, "trim both recordings to the same start and length"),
				logging.String(logging.FieldImpact, "the shorter speaker is treated as silent after its end"),
			)
		}

		primary, err = extractor.Extract(in.Speaker1, s.Sensitivity1, s.PrimaryTrack)
		if err != nil {
			return 0, speakerError("speaker1", err)
		}
		secondary, err = extractor.Extract(in.Speaker2, s.Sensitivity2, s.SecondaryTrack)
		if err != nil {
			return 0, speakerError("speaker2", err)
		}
		logging.WithContext(services.WithSpeaker(ctx, "speaker1"), logger).Debug("activity detected",
			logging.Int("frames", len(primary)))
		logging.WithContext(services.WithSpeaker(ctx, "speaker2"), logger).Debug("activity detected",
			logging.Int("frames", len(secondary)))
		result.Counts.Detected = len(primary) + len(secondary)
		return result.Counts.Detected, nil
	})
	if err != nil {
		return finish(result, started), err
	}

	err = r.stage(StageSanitize, func(ctx context.Context, logger *slog.Logger) (int, error) {
		primary = sanitize(primary, s)
		secondary = sanitize(secondary, s)
		if err := timeline.CheckNonOverlap(primary); err != nil {
			return 0, err
		}
		if err := timeline.CheckNonOverlap(secondary); err != nil {
			return 0, err
		}
		result.Counts.Sanitized = len(primary) + len(secondary)
		silent = result.Counts.Sanitized == 0
		return result.Counts.Sanitized, nil
	})
	if err != nil {
		return finish(result, started), err
	}

	err = r.stage(StageComplement, func(ctx context.Context, logger *slog.Logger) (int, error) {
		if silent {
			logger.Debug("both speakers silent; cut list left empty")
			return 0, nil
		}
		complement = timeline.Complement(primary, result.Span, s.SecondaryTrack)
		result.Counts.Complement = len(complement)
		return len(complement), nil
	})
	if err != nil {
		return finish(result, started), err
	}

	err = r.stage(StageMerge, func(ctx context.Context, logger *slog.Logger) (int, error) {
		if silent {
			return 0, nil
		}
		seed := timeline.Seed(primary, complement)
		if err := timeline.CheckCoverage(seed, result.Span); err != nil {
			return 0, err
		}
		shorts := timeline.ShortFrames(secondary, s.LongFrame)
		merged = timeline.Splice(seed, shorts, result.Span)
		if err := timeline.CheckCoverage(merged, result.Span); err != nil {
			return 0, err
		}
		logger.Debug("interjections spliced", logging.Int("short_frames", len(shorts)))
		result.Counts.Merged = len(merged)
		return len(merged), nil
	})
	if err != nil {
		return finish(result, started), err
	}

	err = r.stage(StageDilute, func(ctx context.Context, logger *slog.Logger) (int, error) {
		if silent {
			return 0, nil
		}
		final, err := timeline.DiluteN(merged, s.MinHold, s.Iterations)
		if err != nil {
			return 0, err
		}
		if err := timeline.CheckCoverage(final, result.Span); err != nil {
			return 0, err
		}
		result.Frames = final
		result.Counts.Final = len(final)
		return len(final), nil
	})
	if err != nil {
		return finish(result, started), err
	}

	err = r.stage(StageWrite, func(ctx context.Context, logger *slog.Logger) (int, error) {
		if in.Document == nil {
			logger.Info("project write skipped", logging.String(logging.FieldEventType, "write_skipped"))
			return 0, nil
		}
		if len(result.Frames) == 0 {
			logging.WarnWithContext(logger, "no speech detected; project left unchanged", "empty_cut_list",
				logging.String(logging.FieldErrorHint, "lower the detection sensitivities or check both recordings"),
				logging.String(logging.FieldImpact, "multicam track keeps its existing items"),
			)
		}
		written, err := multicam.Write(in.Document, result.Frames, s.Angles())
		result.Written = written
		return written, err
	})
	result = finish(result, started)
	if err != nil {
		return result, err
	}

	r.logger.Info("cut list complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("cuts", len(result.Frames)),
		logging.Int("written", result.Written),
		logging.Seconds("span_seconds", result.Span.Seconds()),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// stage runs fn under the stage's context and logger, checking cancellation
// first and reporting progress after.
func (r *runner) stage(name string, fn func(context.Context, *slog.Logger) (int, error)) error {
	if err := r.ctx.Err(); err != nil {
		return fmt.Errorf("pipeline canceled before %s: %w", name, err)
	}
	ctx := services.WithStage(r.ctx, name)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(r.in.Logger, "pipeline"))
	began := time.Now()
	logger.Debug("stage started", logging.String(logging.FieldEventType, "stage_start"))

	frames, err := fn(ctx, logger)
	if err != nil {
		logging.ErrorWithContext(logger, "stage failed", "stage_failure",
			logging.String(logging.FieldErrorKind, services.Kind(err)),
			logging.String(logging.FieldErrorHint, failureHint(err)),
			logging.Error(err),
		)
		return err
	}

	r.step++
	logger.Debug("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Int("frames", frames),
		logging.Duration("elapsed", time.Since(began)),
	)
	if r.in.Progress != nil {
		r.in.Progress(Progress{Stage: name, Step: r.step, Total: len(Stages), Frames: frames})
	}
	return nil
}

func sanitize(frames []timeline.Frame, s Settings) []timeline.Frame {
	return timeline.MergeThroughSilence(timeline.RemoveNoise(frames, s.MinNoise), s.MaxSilenceGap)
}

func speakerError(speaker string, err error) error {
	return fmt.Errorf("%s: %w", speaker, err)
}

func finish(result Result, started time.Time) Result {
	result.Elapsed = time.Since(started)
	return result
}

func failureHint(err error) string {
	switch {
	case errors.Is(err, services.ErrMalformedProject):
		return "open the project in Premiere and check it holds a multicam sequence"
	case errors.Is(err, services.ErrUnsupported):
		return "convert the recordings to PCM WAV with a higher sample rate"
	case errors.Is(err, services.ErrInvalidInput):
		return "check the speaker recordings and detection settings"
	default:
		return "check logs for details"
	}
}
