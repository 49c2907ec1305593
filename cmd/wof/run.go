package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/work-order-flow/internal/cli"
	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/config"
	"github.com/Veraticus/work-order-flow/internal/pipeline"
	"github.com/Veraticus/work-order-flow/internal/service"
	"github.com/spf13/cobra"
)

// interruptState reports whether a run was stopped by the user.
type interruptState interface {
	WasInterrupted() bool
}

// progressFunc returns a pipeline progress callback that draws a bar on the
// command's error stream once the total is known.
func progressFunc(cmd *cobra.Command, description string) pipeline.ProgressFunc {
	var bar *cli.Progress
	return func(done, total int) {
		if bar == nil {
			bar = cli.NewProgress(cmd.ErrOrStderr(), total, description)
		}
		bar.Update(done, total)
	}
}

// finishRun reports the outcome of a pipeline run.
func finishRun(cmd *cobra.Command, handler interruptState, title string, stats *service.CompletionStats, err error) error {
	out := cmd.OutOrStdout()

	switch {
	case errors.Is(err, common.ErrNoDocuments):
		fmt.Fprintln(out, cli.FormatInfo("Nothing to do: no pending documents."))
		return nil
	case handler.WasInterrupted():
		if stats != nil {
			fmt.Fprintln(out, cli.RenderStats(title+" (interrupted)", stats))
		}
		return nil
	case stats == nil:
		return err
	}

	fmt.Fprintln(out, cli.RenderStats(title, stats))
	if err != nil {
		return fmt.Errorf("%s failed: %w", title, err)
	}
	if stats.Failed > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d documents failed; see the log for details. Run again to retry them.", stats.Failed)))
	}
	return nil
}

// loadPipelineConfig reads pipeline settings, letting --workers override them.
func loadPipelineConfig(cmd *cobra.Command) (config.PipelineConfig, error) {
	cfg, err := config.LoadPipelineConfig()
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("workers") {
		workers, _ := cmd.Flags().GetInt("workers")
		if workers <= 0 {
			return cfg, fmt.Errorf("%w: --workers must be positive", common.ErrInvalidConfig)
		}
		cfg.Workers = workers
	}
	return cfg, nil
}
