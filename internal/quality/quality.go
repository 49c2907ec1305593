// Package quality runs data quality checks over stored work orders.
package quality

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/Veraticus/work-order-flow/internal/service"
)

// ErrChecksFailed is returned by Report.Err when at least one check failed.
var ErrChecksFailed = errors.New("data quality checks failed")

// DefaultMinCompleteness is the lowest acceptable average quality score.
const DefaultMinCompleteness = 0.8

// Check names.
const (
	CheckNullNumbers  = "no_null_work_order_numbers"
	CheckCompleteness = "data_completeness_above_80_percent"
	CheckCategorized  = "all_records_have_categorization"
)

// Check is the outcome of one quality check. Value is the count or average
// the check was decided on.
type Check struct {
	Name   string
	Passed bool
	Value  float64
}

// Report holds the outcome of a quality run.
type Report struct {
	WorkOrders int
	Checks     []Check
}

// Failed returns the names of the checks that did not pass.
func (r Report) Failed() []string {
	var names []string
	for _, c := range r.Checks {
		if !c.Passed {
			names = append(names, c.Name)
		}
	}
	return names
}

// Err returns ErrChecksFailed naming the failed checks, or nil.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrChecksFailed, strings.Join(failed, ", "))
}

// Run checks every stored work order. A store with no work orders passes
// every check. minCompleteness of 0 means DefaultMinCompleteness.
func Run(ctx context.Context, store service.Storage, minCompleteness float64, logger *slog.Logger) (Report, error) {
	if minCompleteness == 0 {
		minCompleteness = DefaultMinCompleteness
	}
	if logger == nil {
		logger = slog.Default()
	}

	orders, err := store.GetWorkOrders(ctx, service.WorkOrderFilter{})
	if err != nil {
		return Report{}, fmt.Errorf("failed to load work orders: %w", err)
	}
	uncategorized, err := store.GetWorkOrders(ctx, service.WorkOrderFilter{Uncategorized: true})
	if err != nil {
		return Report{}, fmt.Errorf("failed to load uncategorized work orders: %w", err)
	}

	nullNumbers := 0
	total := 0.0
	for _, o := range orders {
		if missingNumber(o.Number) {
			nullNumbers++
		}
		total += o.QualityScore
	}
	average := 0.0
	if len(orders) > 0 {
		average = total / float64(len(orders))
	}

	report := Report{
		WorkOrders: len(orders),
		Checks: []Check{
			{Name: CheckNullNumbers, Passed: nullNumbers == 0, Value: float64(nullNumbers)},
			{Name: CheckCompleteness, Passed: len(orders) == 0 || average >= minCompleteness, Value: average},
			{Name: CheckCategorized, Passed: len(uncategorized) == 0, Value: float64(len(uncategorized))},
		},
	}

	for _, c := range report.Checks {
		if c.Passed {
			logger.Info("Quality check passed", "check", c.Name, "value", c.Value)
		} else {
			logger.Warn("Quality check failed", "check", c.Name, "value", c.Value)
		}
	}
	return report, nil
}

func missingNumber(n string) bool {
	n = strings.TrimSpace(n)
	return n == "" || strings.EqualFold(n, model.Placeholder)
}
