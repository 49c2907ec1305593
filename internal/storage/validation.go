// Package storage provides the SQLite persistence layer for work orders,
// their categorizations, and pipeline runs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/work-order-flow/internal/model"
)

// Validation errors.
var (
	ErrNilContext            = errors.New("context cannot be nil")
	ErrEmptyString           = errors.New("string parameter cannot be empty")
	ErrNilParameter          = errors.New("parameter cannot be nil")
	ErrInvalidWorkOrder      = errors.New("invalid work order")
	ErrInvalidCategorization = errors.New("invalid categorization")
	ErrInvalidRun            = errors.New("invalid run")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateWorkOrder(order *model.WorkOrder) error {
	if order == nil {
		return fmt.Errorf("%w: work order", ErrNilParameter)
	}
	if strings.TrimSpace(order.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidWorkOrder)
	}
	if strings.TrimSpace(order.FileURL) == "" {
		return fmt.Errorf("%w: missing file URL", ErrInvalidWorkOrder)
	}
	if order.ExtractedAt.IsZero() {
		return fmt.Errorf("%w: missing extraction time", ErrInvalidWorkOrder)
	}
	switch order.ServiceStatus {
	case model.ServicesFound, model.ServicesNone, model.ServicesPending:
	default:
		return fmt.Errorf("%w: unknown service status %q", ErrInvalidWorkOrder, order.ServiceStatus)
	}
	if order.QualityScore < 0 || order.QualityScore > 1 {
		return fmt.Errorf("%w: quality score %v out of range", ErrInvalidWorkOrder, order.QualityScore)
	}
	return nil
}

func validateCategorization(c *model.Categorization) error {
	if c == nil {
		return fmt.Errorf("%w: categorization", ErrNilParameter)
	}
	if strings.TrimSpace(c.WorkOrderID) == "" {
		return fmt.Errorf("%w: missing work order ID", ErrInvalidCategorization)
	}
	if c.Text == "" {
		return fmt.Errorf("%w: missing text", ErrInvalidCategorization)
	}
	return nil
}

func validateRun(run *model.Run) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRun)
	}
	switch run.Stage {
	case model.StageExtract, model.StageCategorize:
	default:
		return fmt.Errorf("%w: unknown stage %q", ErrInvalidRun, run.Stage)
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidRun)
	}
	return nil
}
