package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"multicam/internal/cutlist"
	"multicam/internal/media/wav"
	"multicam/internal/pipeline"
)

type cutsOptions struct {
	speaker1  string
	speaker2  string
	format    string
	overrides detectionOverrides
}

func newCutsCommand(ctx *commandContext) *cobra.Command {
	opts := &cutsOptions{}

	cmd := &cobra.Command{
		Use:   "cuts",
		Short: "Print the cut list for two speaker recordings without touching a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCuts(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.speaker1, "speaker1", "", "WAV recording of speaker 1 (primary)")
	cmd.Flags().StringVar(&opts.speaker2, "speaker2", "", "WAV recording of speaker 2 (secondary)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format: table, json, or yaml")
	opts.overrides.register(cmd)
	_ = cmd.MarkFlagRequired("speaker1")
	_ = cmd.MarkFlagRequired("speaker2")

	return cmd
}

func runCuts(cmd *cobra.Command, ctx *commandContext, opts *cutsOptions) error {
	format := strings.ToLower(strings.TrimSpace(opts.format))
	var encoding cutlist.Format
	if format != "table" {
		parsed, err := cutlist.ParseFormat(format)
		if err != nil {
			return err
		}
		encoding = parsed
	}

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
	mode, err := wav.ParseChannelMode(cfg.Detection.Channel)
	if err != nil {
		return err
	}
	speaker1, speaker2, err := pipeline.LoadSpeakers(opts.speaker1, opts.speaker2, mode)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cmd.Context(), pipeline.Input{
		RunID:    uuid.NewString(),
		Settings: settings,
		Speaker1: speaker1,
		Speaker2: speaker2,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	cuts := cutlist.FromFrames(result.Frames, settings.Angles(), settings.Rate)
	doc := cutlist.NewDocument(result.RunID, settings.Rate, cuts)
	if format != "table" {
		return cutlist.Encode(cmd.OutOrStdout(), doc, encoding)
	}

	out := cmd.OutOrStdout()
	if len(cuts) == 0 {
		fmt.Fprintln(out, "No speech detected; the cut list is empty")
		return nil
	}
	fmt.Fprintln(out, renderCutTable(cuts))
	fmt.Fprintln(out, renderSummaryTable(doc.Summary))
	return nil
}

func renderCutTable(cuts []cutlist.Cut) string {
	rows := make([][]string, 0, len(cuts))
	for _, c := range cuts {
		rows = append(rows, []string{
			strconv.Itoa(c.Index),
			c.StartTimecode,
			c.EndTimecode,
			formatSeconds(c.Duration),
			strconv.Itoa(c.Track),
			strconv.Itoa(c.Angle),
			cutlist.Label(c.Origin),
		})
	}
	return renderTable(tableSpec{
		Title:   "Cut list",
		Headers: []string{"#", "Start", "End", "Length", "Track", "Angle", "Origin"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	})
}

func renderSummaryTable(summary cutlist.Summary) string {
	rows := make([][]string, 0, len(summary.Tracks))
	for _, ts := range summary.Tracks {
		rows = append(rows, []string{
			strconv.Itoa(ts.Track),
			strconv.Itoa(ts.Angle),
			strconv.Itoa(ts.Cuts),
			formatSeconds(ts.Seconds),
			fmt.Sprintf("%.1f%%", ts.Share*100),
		})
	}
	return renderTable(tableSpec{
		Title:   "Screen time",
		Headers: []string{"Track", "Angle", "Cuts", "Time", "Share"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
		Footer:  []string{"Total", "", strconv.Itoa(summary.Cuts), formatSeconds(summary.Seconds), ""},
	})
}
