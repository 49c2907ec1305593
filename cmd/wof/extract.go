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
	"github.com/spf13/viper"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract work orders from scanned documents",
		Long: `Read every scanned work order (PDF, JPEG or PNG) from a local directory
or a Cloud Storage bucket, extract its fields and service lines, and store
the result. Documents that were already extracted are skipped, so an
interrupted run can simply be started again.`,
		RunE: runExtract,
	}

	cmd.Flags().String("dir", "", "Local directory of scanned work orders")
	cmd.Flags().String("bucket", "", "Cloud Storage bucket of scanned work orders")
	cmd.Flags().String("prefix", "", "Object prefix within the bucket")
	cmd.Flags().Int("workers", config.DefaultWorkers, "Documents processed concurrently")

	_ = viper.BindPFlag("source.dir", cmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("source.bucket", cmd.Flags().Lookup("bucket"))
	_ = viper.BindPFlag("source.prefix", cmd.Flags().Lookup("prefix"))

	return cmd
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	srcCfg, err := config.LoadSourceConfig()
	if err != nil {
		return err
	}
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
	corrector, err := config.LoadCorrector(registry)
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

	src, err := initSource(ctx, srcCfg, logger)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(llmCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "extract")
	ctx = handler.HandleInterrupts(ctx, true)

	p, err := pipeline.New(pipeline.Config{
		Storage:   store,
		Reader:    client,
		Registry:  registry,
		Corrector: corrector,
		Logger:    slog.Default(),
		Options: pipeline.Options{
			Workers:   pipeCfg.Workers,
			BatchSize: pipeCfg.BatchSize,
			Progress:  progressFunc(cmd, "Extracting work orders..."),
		},
	})
	if err != nil {
		return err
	}

	slog.Info(cli.FormatTitle("Extracting work orders"), "run_id", runID)
	stats, err := p.Extract(ctx, src, runID)
	return finishRun(cmd, handler, "Extraction", stats, err)
}
