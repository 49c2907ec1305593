package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/work-order-flow/internal/service"
	"github.com/xuri/excelize/v2"
)

// Sheet names used in the workbook.
const (
	WorkOrdersSheet = "Work Orders"
	CategoriesSheet = "Categories"
)

// XLSXWriter writes the work-order report to an Excel workbook.
type XLSXWriter struct {
	logger *slog.Logger
	path   string
}

// NewXLSXWriter creates a writer that saves to path, replacing any existing file.
func NewXLSXWriter(path string, logger *slog.Logger) (*XLSXWriter, error) {
	if path == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{path: path, logger: logger}, nil
}

// Write implements service.ReportWriter.
func (w *XLSXWriter) Write(ctx context.Context, rows []service.ReportRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), WorkOrdersSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(CategoriesSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return fmt.Errorf("failed to create body style: %w", err)
	}

	tables := []struct {
		values [][]any
		name   string
	}{
		{name: WorkOrdersSheet, values: Table(rows)},
		{name: CategoriesSheet, values: CategoryTable(rows)},
	}

	for _, t := range tables {
		if err := writeSheet(f, t.name, t.values, bold, wrap); err != nil {
			return err
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}

	w.logger.Info("wrote xlsx report", "path", w.path, "work_orders", len(rows))
	return nil
}

func writeSheet(f *excelize.File, sheet string, values [][]any, headerStyle, bodyStyle int) error {
	for i, row := range values {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}

	if len(values) == 0 || len(values[0]) == 0 {
		return nil
	}

	lastCol, err := excelize.ColumnNumberToName(len(values[0]))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}
	if len(values) > 1 {
		end := fmt.Sprintf("%s%d", lastCol, len(values))
		if err := f.SetCellStyle(sheet, "A2", end, bodyStyle); err != nil {
			return fmt.Errorf("failed to style body of %s: %w", sheet, err)
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
