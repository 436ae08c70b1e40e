package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"multicam/internal/cutlist"
	"multicam/internal/history"
	"multicam/internal/services"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd, ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				views := make([]historyView, 0, len(runs))
				for _, run := range runs {
					views = append(views, newHistoryView(run))
				}
				return writeJSON(cmd, views)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(runs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run's parameters and stage counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd, ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Get(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if run == nil {
				return services.Wrap(services.ErrInvalidInput, "history", "show",
					fmt.Sprintf("run %q not found", args[0]), nil)
			}
			if jsonOutput {
				return writeJSON(cmd, newHistoryView(*run))
			}
			printRunDetail(cmd, *run)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run as JSON")
	return cmd
}

func openHistory(cmd *cobra.Command, ctx *commandContext) (*history.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, services.Wrap(services.ErrConfiguration, "history", "open",
			"run history is disabled (history.enabled = false)", nil)
	}
	store, err := history.Open(cmd.Context(), cfg.Paths.StateDir)
	if err != nil {
		return nil, err
	}
	return store, nil
}

type historyView struct {
	ID             string              `json:"id"`
	Status         history.Status      `json:"status"`
	StartedAt      time.Time           `json:"started_at"`
	FinishedAt     time.Time           `json:"finished_at,omitzero"`
	ElapsedSeconds float64             `json:"elapsed_seconds"`
	Project        string              `json:"project"`
	Output         string              `json:"output,omitempty"`
	Speaker1       string              `json:"speaker1,omitempty"`
	Speaker2       string              `json:"speaker2,omitempty"`
	DryRun         bool                `json:"dry_run"`
	Params         history.Params      `json:"params"`
	Counts         history.StageCounts `json:"counts"`
	ErrorKind      string              `json:"error_kind,omitempty"`
	Error          string              `json:"error,omitempty"`
}

func newHistoryView(run history.Run) historyView {
	return historyView{
		ID:             run.ID,
		Status:         run.Status,
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
		ElapsedSeconds: run.Elapsed().Seconds(),
		Project:        run.ProjectPath,
		Output:         run.OutputPath,
		Speaker1:       run.Speaker1Path,
		Speaker2:       run.Speaker2Path,
		DryRun:         run.DryRun,
		Params:         run.Params,
		Counts:         run.Counts,
		ErrorKind:      run.ErrorKind,
		Error:          run.ErrorMessage,
	}
}

func renderHistoryTable(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortRunID(run.ID),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			cutlist.Label(string(run.Status)),
			strconv.Itoa(run.Counts.Final),
			formatSeconds(run.Elapsed().Seconds()),
			displayPath(run.ProjectPath),
		})
	}
	return renderTable(tableSpec{
		Headers: []string{"Run", "Started", "Status", "Cuts", "Elapsed", "Project"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	})
}

func printRunDetail(cmd *cobra.Command, run history.Run) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader("Run "+shortRunID(run.ID), colorize) {
		fmt.Fprintln(out, line)
	}
	message := ""
	if run.ErrorMessage != "" {
		message = run.ErrorMessage
	}
	fmt.Fprintln(out, renderStatusLine("Status", runStatusKind(run.Status), message, colorize))
	fmt.Fprintln(out, renderField("Started", run.StartedAt.Local().Format(time.RFC3339)))
	fmt.Fprintln(out, renderField("Elapsed", formatSeconds(run.Elapsed().Seconds())))
	fmt.Fprintln(out, renderField("Project", run.ProjectPath))
	if run.OutputPath != "" {
		fmt.Fprintln(out, renderField("Output", run.OutputPath))
	}
	fmt.Fprintln(out, renderField("Dry run", yesNo(run.DryRun)))
	fmt.Fprintln(out)

	p := run.Params
	fmt.Fprintln(out, renderTable(tableSpec{
		Title:   "Parameters",
		Headers: []string{"Setting", "Value"},
		Rows: [][]string{
			{"sensitivity1", strconv.FormatFloat(p.Sensitivity1, 'g', -1, 64)},
			{"sensitivity2", strconv.FormatFloat(p.Sensitivity2, 'g', -1, 64)},
			{"envelope", p.Envelope},
			{"frame_rate", p.FrameRate},
			{"min_noise_seconds", formatSeconds(p.MinNoiseSeconds)},
			{"max_silence_gap_seconds", formatSeconds(p.MaxSilenceSeconds)},
			{"long_frame_seconds", formatSeconds(p.LongFrameSeconds)},
			{"iterations", strconv.Itoa(p.Iterations)},
			{"min_hold_seconds", formatSeconds(p.MinHoldSeconds)},
		},
	}))
	c := run.Counts
	fmt.Fprintln(out, renderTable(tableSpec{
		Title:   "Frames per stage",
		Headers: []string{"Detected", "Sanitized", "Complement", "Merged", "Final"},
		Rows: [][]string{{
			strconv.Itoa(c.Detected), strconv.Itoa(c.Sanitized), strconv.Itoa(c.Complement),
			strconv.Itoa(c.Merged), strconv.Itoa(c.Final),
		}},
		Aligns: []columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
	}))
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func displayPath(path string) string {
	if path == "" {
		return "-"
	}
	return path
}
