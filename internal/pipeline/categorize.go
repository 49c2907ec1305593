package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/work-order-flow/internal/categorize"
	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/Veraticus/work-order-flow/internal/service"
)

// Categorize categorizes every stored work order that has no categorization
// yet. Orders without a description are skipped and stay uncategorized.
func (p *Pipeline) Categorize(ctx context.Context, runID string) (*service.CompletionStats, error) {
	if p.oracle == nil {
		return nil, fmt.Errorf("%w: category oracle is required for categorization", common.ErrMissingConfig)
	}

	orders, err := p.store.GetWorkOrders(ctx, service.WorkOrderFilter{Uncategorized: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load work orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, common.ErrNoDocuments
	}

	byID := make(map[string]model.WorkOrder, len(orders))
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}

	return p.run(ctx, runID, model.StageCategorize, ids, func(ctx context.Context, logger *slog.Logger, id string) result {
		return p.categorizeOne(ctx, logger, byID[id])
	})
}

func (p *Pipeline) categorizeOne(ctx context.Context, logger *slog.Logger, order model.WorkOrder) result {
	if !order.HasDescription() {
		logger.Debug("skipping work order without description", "work_order_id", order.ID)
		return skipped(order.ID)
	}

	res, err := p.CategorizeOrder(ctx, order)
	if err != nil {
		return failed(order.ID, err)
	}

	categorization := res.Categorization(order.ID, p.now())
	if err := p.store.SaveCategorization(ctx, &categorization); err != nil {
		return failed(order.ID, fmt.Errorf("failed to save categorization: %w", err))
	}

	logger.Info("categorized work order",
		"work_order_id", order.ID,
		"profile", res.Profile,
		"categories", res.Map.Len(),
		"caveats", len(res.Caveats))

	return processed(order.ID, res.Empty())
}

// CategorizeOrder routes order to its company's profile, asks the oracle and
// runs the categorization core on the answer. Orders from unknown companies
// get the unrouted result without an oracle call.
func (p *Pipeline) CategorizeOrder(ctx context.Context, order model.WorkOrder) (categorize.Result, error) {
	profile, ok := p.registry.Resolve(order.CompanyName)
	if !ok {
		return categorize.Unrouted(order.CompanyLabel()), nil
	}

	if p.oracle == nil {
		return categorize.Result{}, fmt.Errorf("%w: category oracle is required for categorization", common.ErrMissingConfig)
	}

	response, err := p.oracle.Categorize(ctx, categorize.BuildPrompt(profile, order.Description))
	if err != nil {
		return categorize.Result{}, err
	}

	return categorize.Categorize(response, profile), nil
}
