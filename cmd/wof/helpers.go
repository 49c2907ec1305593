package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/config"
	"github.com/Veraticus/work-order-flow/internal/service"
	"github.com/Veraticus/work-order-flow/internal/source"
	"github.com/Veraticus/work-order-flow/internal/storage"
)

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initSource builds the document source selected by cfg.
func initSource(ctx context.Context, cfg config.SourceConfig, logger *slog.Logger) (service.DocumentSource, error) {
	if cfg.Bucket != "" {
		return source.NewGCSSource(ctx, cfg.Bucket, cfg.Prefix, cfg.CredentialsFile, logger)
	}
	return source.NewLocalSource(cfg.Dir, logger)
}

// reportRows loads work orders and pairs each with its categorization, if any.
func reportRows(ctx context.Context, store service.Storage, filter service.WorkOrderFilter) ([]service.ReportRow, error) {
	orders, err := store.GetWorkOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load work orders: %w", err)
	}

	rows := make([]service.ReportRow, 0, len(orders))
	for _, order := range orders {
		c, err := store.GetCategorization(ctx, order.ID)
		switch {
		case errors.Is(err, common.ErrNotFound):
			c = nil
		case err != nil:
			return nil, fmt.Errorf("failed to load categorization for %s: %w", order.ID, err)
		}
		rows = append(rows, service.ReportRow{WorkOrder: order, Categorization: c})
	}
	return rows, nil
}
