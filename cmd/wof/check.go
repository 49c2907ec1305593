package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/Veraticus/work-order-flow/internal/cli"
	"github.com/Veraticus/work-order-flow/internal/quality"
	"github.com/Veraticus/work-order-flow/internal/service"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run data quality checks over stored work orders",
		Long: `Check the stored work orders for missing work order numbers, a low
average data quality score and work orders that were never categorized.

Exits with an error when any check fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			minCompleteness, _ := cmd.Flags().GetFloat64("min-completeness")

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			return runChecks(ctx, cmd.OutOrStdout(), store, minCompleteness)
		},
	}

	cmd.Flags().Float64("min-completeness", quality.DefaultMinCompleteness, "Lowest acceptable average quality score")

	return cmd
}

func runChecks(ctx context.Context, w io.Writer, store service.Storage, minCompleteness float64) error {
	report, err := quality.Run(ctx, store, minCompleteness, slog.Default())
	if err != nil {
		return err
	}

	fmt.Fprintln(w, cli.FormatTitle(fmt.Sprintf("Data quality (%d work orders)", report.WorkOrders)))
	for _, c := range report.Checks {
		line := fmt.Sprintf("%s (value: %s)", c.Name, strconv.FormatFloat(c.Value, 'f', -1, 64))
		if c.Passed {
			fmt.Fprintln(w, cli.FormatSuccess(line))
		} else {
			fmt.Fprintln(w, cli.FormatError(line))
		}
	}
	return report.Err()
}
