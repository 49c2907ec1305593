package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/work-order-flow/internal/cli"
	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/config"
	"github.com/Veraticus/work-order-flow/internal/export"
	"github.com/Veraticus/work-order-flow/internal/service"
	"github.com/Veraticus/work-order-flow/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export work orders and categories",
		Long: `Export stored work orders with their categorizations, either to an Excel
workbook or to a Google Sheets spreadsheet. Both destinations get a
"Work Orders" tab with one row per work order and a "Categories" tab with
one row per category entry.`,
		RunE: runExport,
	}

	cmd.Flags().String("format", "xlsx", "Export format (xlsx, sheets)")
	cmd.Flags().StringP("output", "o", "work-orders.xlsx", "Output file for xlsx exports")
	cmd.Flags().String("company", "", "Only export work orders from this company")
	cmd.Flags().String("since", "", "Only export work orders extracted on or after this date (2006-01-02)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	filter, err := exportFilter(cmd)
	if err != nil {
		return err
	}

	writer, destination, err := newReportWriter(cmd, format, output)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	rows, err := reportRows(ctx, store, filter)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("No work orders to export."))
		return nil
	}

	if err := writer.Write(ctx, rows); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d work orders to %s", len(rows), destination)))
	return nil
}

func exportFilter(cmd *cobra.Command) (service.WorkOrderFilter, error) {
	company, _ := cmd.Flags().GetString("company")
	since, _ := cmd.Flags().GetString("since")

	filter := service.WorkOrderFilter{Company: company}
	if since != "" {
		t, err := time.Parse(time.DateOnly, since)
		if err != nil {
			return filter, common.NewUserError("--since must be a date like 2024-05-16", err)
		}
		filter.Since = &t
	}
	return filter, nil
}

func newReportWriter(cmd *cobra.Command, format, output string) (service.ReportWriter, string, error) {
	switch format {
	case "xlsx":
		w, err := export.NewXLSXWriter(config.ExpandPath(output), slog.Default())
		return w, output, err
	case "sheets":
		sheetsCfg, err := config.LoadSheetsConfig()
		if err != nil {
			return nil, "", err
		}
		w, err := sheets.NewWriter(cmd.Context(), *sheetsCfg, slog.Default())
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Google Sheets writer: %w", err)
		}
		return w, "Google Sheets", nil
	default:
		return nil, "", fmt.Errorf("%w: unknown export format %q (want xlsx or sheets)", common.ErrInvalidConfig, format)
	}
}
