package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/work-order-flow/internal/cli"
	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/config"
	"github.com/Veraticus/work-order-flow/internal/llm"
	"github.com/Veraticus/work-order-flow/internal/pipeline"
	"github.com/spf13/cobra"
)

func categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Categorize extracted work orders",
		Long: `Categorize every stored work order that has not been categorized yet.

Each work order is routed to the category profile for its company. The
model's answer is validated against the profile taxonomy, rewritten where
the profile allows it, and consolidated into one entry per category.
Work orders from companies without a profile are recorded as unrouted.`,
		RunE: runCategorize,
	}

	cmd.Flags().Int("workers", config.DefaultWorkers, "Work orders processed concurrently")

	return cmd
}

func runCategorize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	pipeCfg, err := loadPipelineConfig(cmd)
	if err != nil {
		return err
	}
	llmCfg, err := config.LoadLLMConfig()
	if err != nil {
		return err
	}
	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	runID := common.NewRunID()
	logger := common.RunLogger(slog.Default(), runID)

	client, err := llm.NewClient(llmCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "categorize")
	ctx = handler.HandleInterrupts(ctx, true)

	p, err := pipeline.New(pipeline.Config{
		Storage:  store,
		Oracle:   client,
		Registry: registry,
		Logger:   slog.Default(),
		Options: pipeline.Options{
			Workers:   pipeCfg.Workers,
			BatchSize: pipeCfg.BatchSize,
			Progress:  progressFunc(cmd, "Categorizing work orders..."),
		},
	})
	if err != nil {
		return err
	}

	slog.Info(cli.FormatTitle("Categorizing work orders"), "run_id", runID)
	stats, err := p.Categorize(ctx, runID)
	return finishRun(cmd, handler, "Categorization", stats, err)
}
