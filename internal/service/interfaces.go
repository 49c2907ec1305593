// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/work-order-flow/internal/model"
)

// WorkOrderFilter defines filtering options for work order queries.
type WorkOrderFilter struct {
	Since         *time.Time
	Company       string
	Limit         int
	Offset        int
	Uncategorized bool
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Work order operations
	SaveWorkOrder(ctx context.Context, order *model.WorkOrder) error
	GetWorkOrder(ctx context.Context, id string) (*model.WorkOrder, error)
	GetWorkOrders(ctx context.Context, filter WorkOrderFilter) ([]model.WorkOrder, error)
	HasFileURL(ctx context.Context, fileURL string) (bool, error)

	// Categorization operations
	SaveCategorization(ctx context.Context, categorization *model.Categorization) error
	GetCategorization(ctx context.Context, workOrderID string) (*model.Categorization, error)

	// Run tracking
	SaveRun(ctx context.Context, run *model.Run) error
	GetLatestRun(ctx context.Context, stage model.Stage) (*model.Run, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// DocumentSource lists and fetches scanned work orders.
type DocumentSource interface {
	List(ctx context.Context) ([]string, error)
	Fetch(ctx context.Context, url string) (model.Document, error)
}

// FieldReader turns a scanned work order into numbered field text.
type FieldReader interface {
	ExtractFields(ctx context.Context, doc model.Document) (string, error)
}

// CategoryOracle answers a categorization prompt with narrative text.
type CategoryOracle interface {
	Categorize(ctx context.Context, prompt string) (string, error)
}

// ReportRow is one work order with its categorization, as exported.
type ReportRow struct {
	Categorization *model.Categorization
	WorkOrder      model.WorkOrder
}

// ReportWriter writes categorized work orders to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, rows []ReportRow) error
}

// CompletionStats shows the results of a pipeline run.
type CompletionStats struct {
	Total     int
	Processed int
	Skipped   int
	Failed    int
	Empty     int
	Duration  time.Duration
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
