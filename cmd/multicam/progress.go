package main

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"multicam/internal/pipeline"
)

// stageProgress draws one bar step per pipeline stage. A nil *stageProgress
// is valid and draws nothing.
type stageProgress struct {
	bar *progressbar.ProgressBar
}

func newStageProgress(w io.Writer, enabled bool) *stageProgress {
	if !enabled {
		return nil
	}
	bar := progressbar.NewOptions(len(pipeline.Stages),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("loading"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return &stageProgress{bar: bar}
}

func (p *stageProgress) report(update pipeline.Progress) {
	if p == nil {
		return
	}
	p.bar.Describe(update.Stage)
	_ = p.bar.Set(update.Step)
}

func (p *stageProgress) finish() {
	if p == nil {
		return
	}
	_ = p.bar.Finish()
}
