package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/Veraticus/work-order-flow/internal/service"
)

const workOrderColumns = `
	w.id, w.number, w.builder_name, w.project_name, w.month, w.year,
	w.company_name, w.company_raw, w.description, w.file_url, w.service_status,
	w.quality_score, w.extracted_at`

// SaveWorkOrder stores a work order and replaces its service lines. A
// different work order with the same file URL is a duplicate.
func (s *SQLiteStorage) SaveWorkOrder(ctx context.Context, order *model.WorkOrder) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateWorkOrder(order); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveWorkOrderTx(ctx, tx, order); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) saveWorkOrderTx(ctx context.Context, tx *sql.Tx, order *model.WorkOrder) error {
	var year sql.NullInt64
	if order.Year != nil {
		year = sql.NullInt64{Int64: int64(*order.Year), Valid: true}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO work_orders (
			id, number, builder_name, project_name, month, year,
			company_name, company_raw, description, file_url, service_status,
			quality_score, extracted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			number = excluded.number,
			builder_name = excluded.builder_name,
			project_name = excluded.project_name,
			month = excluded.month,
			year = excluded.year,
			company_name = excluded.company_name,
			company_raw = excluded.company_raw,
			description = excluded.description,
			file_url = excluded.file_url,
			service_status = excluded.service_status,
			quality_score = excluded.quality_score,
			extracted_at = excluded.extracted_at
	`,
		order.ID,
		order.Number,
		order.BuilderName,
		order.ProjectName,
		order.Month,
		year,
		order.CompanyName,
		order.CompanyRaw,
		order.Description,
		order.FileURL,
		string(order.ServiceStatus),
		order.QualityScore,
		order.ExtractedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("work order for %s: %w", order.FileURL, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to save work order: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM service_lines WHERE work_order_id = ?`, order.ID); err != nil {
		return fmt.Errorf("failed to clear service lines: %w", err)
	}

	if len(order.Services) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO service_lines (
			work_order_id, position, slot, line, service_type, date, quantity, hours
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, item := range order.Services {
		if _, err := stmt.ExecContext(ctx,
			order.ID, i, item.Slot, item.Line, item.ServiceType, item.Date,
			nullFloat(item.Quantity), nullFloat(item.Hours),
		); err != nil {
			return fmt.Errorf("failed to save service line %d: %w", i, err)
		}
	}
	return nil
}

// GetWorkOrder returns one work order with its service lines.
func (s *SQLiteStorage) GetWorkOrder(ctx context.Context, id string) (*model.WorkOrder, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+workOrderColumns+` FROM work_orders w WHERE w.id = ?`, id)
	order, err := scanWorkOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("work order", id)
	}
	if err != nil {
		return nil, err
	}

	services, err := s.getServiceLines(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Services = services
	return order, nil
}

// GetWorkOrders lists work orders matching filter, oldest extraction first.
func (s *SQLiteStorage) GetWorkOrders(ctx context.Context, filter service.WorkOrderFilter) ([]model.WorkOrder, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	query := `SELECT ` + workOrderColumns + ` FROM work_orders w`
	if filter.Uncategorized {
		query += ` LEFT JOIN categorizations c ON c.work_order_id = w.id`
		where = append(where, `c.work_order_id IS NULL`)
	}
	if filter.Company != "" {
		where = append(where, `LOWER(w.company_name) = LOWER(?)`)
		args = append(args, strings.TrimSpace(filter.Company))
	}
	if filter.Since != nil {
		where = append(where, `w.extracted_at >= ?`)
		args = append(args, filter.Since.UTC())
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY w.extracted_at, w.id`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query work orders: %w", err)
	}

	var orders []model.WorkOrder
	for rows.Next() {
		order, scanErr := scanWorkOrder(rows)
		if scanErr != nil {
			_ = rows.Close()
			return nil, scanErr
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("failed to iterate work orders: %w", err)
	}
	// The single connection must be released before loading service lines.
	_ = rows.Close()

	for i := range orders {
		services, err := s.getServiceLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Services = services
	}
	return orders, nil
}

// HasFileURL reports whether a work order was already extracted from fileURL.
func (s *SQLiteStorage) HasFileURL(ctx context.Context, fileURL string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(fileURL, "fileURL"); err != nil {
		return false, err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM work_orders WHERE file_url = ?)`, fileURL,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check file URL: %w", err)
	}
	return exists, nil
}

func (s *SQLiteStorage) getServiceLines(ctx context.Context, workOrderID string) ([]model.ServiceLineItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slot, line, service_type, date, quantity, hours
		FROM service_lines
		WHERE work_order_id = ?
		ORDER BY position
	`, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query service lines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.ServiceLineItem
	for rows.Next() {
		var (
			item            model.ServiceLineItem
			quantity, hours sql.NullFloat64
		)
		if err := rows.Scan(&item.Slot, &item.Line, &item.ServiceType, &item.Date, &quantity, &hours); err != nil {
			return nil, fmt.Errorf("failed to scan service line: %w", err)
		}
		item.Quantity = floatPtr(quantity)
		item.Hours = floatPtr(hours)
		items = append(items, item)
	}
	return items, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkOrder(row scanner) (*model.WorkOrder, error) {
	var (
		order       model.WorkOrder
		year        sql.NullInt64
		status      string
		extractedAt time.Time
	)
	err := row.Scan(
		&order.ID,
		&order.Number,
		&order.BuilderName,
		&order.ProjectName,
		&order.Month,
		&year,
		&order.CompanyName,
		&order.CompanyRaw,
		&order.Description,
		&order.FileURL,
		&status,
		&order.QualityScore,
		&extractedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan work order: %w", err)
	}
	if year.Valid {
		y := int(year.Int64)
		order.Year = &y
	}
	order.ServiceStatus = model.ServiceStatus(status)
	order.ExtractedAt = extractedAt.UTC()
	return &order, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
