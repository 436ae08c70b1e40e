package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"multicam/internal/config"
	"multicam/internal/cutlist"
	"multicam/internal/history"
	"multicam/internal/logging"
	"multicam/internal/media/wav"
	"multicam/internal/pipeline"
	"multicam/internal/project"
	"multicam/internal/services"
)

type runOptions struct {
	projectPath string
	speaker1    string
	speaker2    string
	outputPath  string
	cutsOut     string
	overwrite   bool
	dryRun      bool
	jsonOutput  bool
	overrides   detectionOverrides
}

type runSummary struct {
	RunID          string              `json:"run_id"`
	Status         history.Status      `json:"status"`
	Project        string              `json:"project"`
	Output         string              `json:"output,omitempty"`
	Saved          bool                `json:"saved"`
	DryRun         bool                `json:"dry_run"`
	CutsFile       string              `json:"cuts_file,omitempty"`
	SpanSeconds    float64             `json:"span_seconds"`
	ElapsedSeconds float64             `json:"elapsed_seconds"`
	Counts         history.StageCounts `json:"counts"`
	Summary        cutlist.Summary     `json:"summary"`
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the cut list and write it into the project's multicam track",
		Long: "Loads the project and both speaker recordings, derives the cut list, and saves\n" +
			"the edited project. The input project is never overwritten unless --overwrite is set.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMulticam(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.projectPath, "project", "p", "", "Premiere project (.prproj) containing the multicam track")
	cmd.Flags().StringVar(&opts.speaker1, "speaker1", "", "WAV recording of speaker 1 (primary)")
	cmd.Flags().StringVar(&opts.speaker2, "speaker2", "", "WAV recording of speaker 2 (secondary)")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Destination project (default <project>-multicam.prproj)")
	cmd.Flags().StringVar(&opts.cutsOut, "cuts-out", "", "Also export the cut list (.json, .yaml, or .yml)")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "Allow the output to replace the input project")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Run every stage but do not save the project")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the run summary as JSON")
	opts.overrides.register(cmd)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("speaker1")
	_ = cmd.MarkFlagRequired("speaker2")

	return cmd
}

func runMulticam(cmd *cobra.Command, ctx *commandContext, opts *runOptions) error {
	base, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	cfg, err := opts.overrides.apply(cmd, base)
	if err != nil {
		return err
	}
	settings, err := pipeline.SettingsFromConfig(&cfg)
	if err != nil {
		return err
	}

	run := history.Run{
		ID:           uuid.NewString(),
		StartedAt:    time.Now().UTC(),
		ProjectPath:  absPath(opts.projectPath),
		Speaker1Path: absPath(opts.speaker1),
		Speaker2Path: absPath(opts.speaker2),
		DryRun:       opts.dryRun,
		Params:       settings.Params(),
	}
	summary, runErr := executeRun(cmd, &cfg, settings, logger, opts, run.ID)

	run.FinishedAt = time.Now().UTC()
	run.OutputPath = summary.Output
	run.Counts = summary.Counts
	run.Status = services.FailureStatus(runErr)
	if runErr != nil {
		run.ErrorKind = services.Kind(runErr)
		run.ErrorMessage = runErr.Error()
	}
	recordHistory(cmd.Context(), &cfg, logger, run)

	if runErr != nil {
		return runErr
	}
	summary.Status = run.Status
	summary.ElapsedSeconds = run.Elapsed().Seconds()
	if opts.jsonOutput {
		return writeJSON(cmd, summary)
	}
	printRunSummary(cmd, summary)
	return nil
}

func executeRun(cmd *cobra.Command, cfg *config.Config, settings pipeline.Settings, logger *slog.Logger, opts *runOptions, runID string) (runSummary, error) {
	summary := runSummary{RunID: runID, Project: absPath(opts.projectPath), DryRun: opts.dryRun}

	output, err := resolveOutputPath(opts.projectPath, opts.outputPath, opts.overwrite)
	if err != nil {
		return summary, err
	}
	summary.Output = output

	mode, err := wav.ParseChannelMode(cfg.Detection.Channel)
	if err != nil {
		return summary, err
	}
	doc, err := project.Load(opts.projectPath, project.WithTrackObjectID(cfg.Project.TrackObjectID))
	if err != nil {
		return summary, err
	}
	speaker1, speaker2, err := pipeline.LoadSpeakers(opts.speaker1, opts.speaker2, mode)
	if err != nil {
		return summary, err
	}

	progress := newStageProgress(cmd.ErrOrStderr(), !opts.jsonOutput && shouldColorize(cmd.ErrOrStderr()))
	result, err := pipeline.Run(cmd.Context(), pipeline.Input{
		RunID:    runID,
		Settings: settings,
		Speaker1: speaker1,
		Speaker2: speaker2,
		Document: doc,
		Logger:   logger,
		Progress: progress.report,
	})
	progress.finish()
	summary.Counts = result.Counts
	summary.SpanSeconds = result.Span.Seconds()
	if err != nil {
		return summary, err
	}

	cuts := cutlist.FromFrames(result.Frames, settings.Angles(), settings.Rate)
	summary.Summary = cutlist.Summarize(cuts)

	if !opts.dryRun && result.Written > 0 {
		if err := project.Save(output, doc); err != nil {
			return summary, err
		}
		summary.Saved = true
	}
	if opts.cutsOut != "" {
		path := absPath(opts.cutsOut)
		if err := writeCutsFile(path, cutlist.NewDocument(runID, settings.Rate, cuts)); err != nil {
			return summary, err
		}
		summary.CutsFile = path
	}
	return summary, nil
}

// resolveOutputPath defaults to <project>-multicam<ext> beside the input and
// refuses to replace the input unless overwrite is set.
func resolveOutputPath(projectPath, output string, overwrite bool) (string, error) {
	src, err := filepath.Abs(projectPath)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidInput, "run", "resolve output", "", err)
	}
	if strings.TrimSpace(output) == "" {
		ext := filepath.Ext(src)
		if ext == "" {
			ext = ".prproj"
		}
		return strings.TrimSuffix(src, filepath.Ext(src)) + "-multicam" + ext, nil
	}
	expanded, err := config.ExpandPath(strings.TrimSpace(output))
	if err != nil {
		return "", services.Wrap(services.ErrInvalidInput, "run", "resolve output", "", err)
	}
	dst, err := filepath.Abs(expanded)
	if err != nil {
		return "", services.Wrap(services.ErrInvalidInput, "run", "resolve output", "", err)
	}
	if dst == src && !overwrite {
		return "", services.Wrap(services.ErrInvalidInput, "run", "resolve output",
			"output would replace the input project; pass --overwrite to allow it", nil)
	}
	return dst, nil
}

func writeCutsFile(path string, doc cutlist.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return services.Wrap(services.ErrIO, "cutlist", "export", "", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return services.Wrap(services.ErrIO, "cutlist", "export", "", err)
	}
	if err := cutlist.Encode(file, doc, cutlist.FormatForPath(path)); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return services.Wrap(services.ErrIO, "cutlist", "export", "", err)
	}
	return nil
}

// recordHistory stores the run and prunes old rows. Failures are logged and
// never change the command's result.
func recordHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger, run history.Run) {
	if !cfg.History.Enabled {
		return
	}
	ctx = context.WithoutCancel(ctx)
	store, err := history.Open(ctx, cfg.Paths.StateDir)
	if err != nil {
		logging.WarnWithContext(logger, "run history unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.state_dir permissions"),
			logging.String(logging.FieldImpact, "this run is not listed by multicam history"),
		)
		return
	}
	defer store.Close()

	if err := store.Record(ctx, run); err != nil {
		logging.WarnWithContext(logger, "failed to record run", "history_record_failed", logging.Error(err))
		return
	}
	if cfg.History.Keep > 0 {
		removed, err := store.Prune(ctx, cfg.History.Keep)
		if err != nil {
			logging.WarnWithContext(logger, "failed to prune run history", "history_prune_failed", logging.Error(err))
			return
		}
		if removed > 0 {
			logger.Debug("run history pruned", logging.Int64("removed", removed), logging.Int("keep", cfg.History.Keep))
		}
	}
}

func printRunSummary(cmd *cobra.Command, summary runSummary) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader("Multicam run", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderField("Run", summary.RunID))
	fmt.Fprintln(out, renderStatusLine("Status", runOutcomeKind(summary), runOutcomeMessage(summary), colorize))
	fmt.Fprintln(out, renderField("Project", summary.Project))
	if summary.Saved {
		fmt.Fprintln(out, renderField("Output", summary.Output))
	}
	if summary.CutsFile != "" {
		fmt.Fprintln(out, renderField("Cut list", summary.CutsFile))
	}
	fmt.Fprintln(out, renderField("Span", formatSeconds(summary.SpanSeconds)))
	fmt.Fprintln(out, renderField("Elapsed", formatSeconds(summary.ElapsedSeconds)))
	fmt.Fprintln(out, renderField("Dry run", yesNo(summary.DryRun)))
	if summary.Summary.Cuts > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderSummaryTable(summary.Summary))
	}
}

func runOutcomeKind(summary runSummary) statusKind {
	if summary.Summary.Cuts == 0 {
		return statusWarn
	}
	return statusOK
}

func runOutcomeMessage(summary runSummary) string {
	switch {
	case summary.Summary.Cuts == 0:
		return "no speech detected; project not written"
	case summary.DryRun:
		return fmt.Sprintf("%d cuts (dry run, project not written)", summary.Summary.Cuts)
	default:
		return fmt.Sprintf("%d cuts written", summary.Summary.Cuts)
	}
}

func absPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.2fs", seconds)
}
