package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/extract"
	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/Veraticus/work-order-flow/internal/service"
)

// Extract reads every new document from src, parses it into a work order
// and stores it. Documents whose file URL is already stored are skipped.
func (p *Pipeline) Extract(ctx context.Context, src service.DocumentSource, runID string) (*service.CompletionStats, error) {
	if p.reader == nil {
		return nil, fmt.Errorf("%w: field reader is required for extraction", common.ErrMissingConfig)
	}

	urls, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if len(urls) == 0 {
		return nil, common.ErrNoDocuments
	}

	return p.run(ctx, runID, model.StageExtract, urls, func(ctx context.Context, logger *slog.Logger, url string) result {
		return p.extractOne(ctx, logger, src, url)
	})
}

func (p *Pipeline) extractOne(ctx context.Context, logger *slog.Logger, src service.DocumentSource, url string) result {
	exists, err := p.store.HasFileURL(ctx, url)
	if err != nil {
		return failed(url, fmt.Errorf("failed to check %s: %w", url, err))
	}
	if exists {
		logger.Debug("skipping already extracted document", "url", url)
		return skipped(url)
	}

	doc, err := src.Fetch(ctx, url)
	if err != nil {
		return failed(url, err)
	}

	text, err := p.reader.ExtractFields(ctx, doc)
	if err != nil {
		return failed(url, err)
	}

	order := extract.BuildWorkOrder(extract.ParseFields(text), p.layout, doc.URL, p.now())
	order = p.corrector.Apply(order)

	if err := p.saveWorkOrder(ctx, &order); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			return skipped(url)
		}
		return failed(url, err)
	}

	logger.Info("extracted work order",
		"work_order_id", order.ID,
		"url", url,
		"company", order.CompanyName,
		"services", len(order.Services),
		"quality", order.QualityScore)

	return processed(url, order.ServiceStatus == model.ServicesNone)
}

// saveWorkOrder stores order, moving its id forward a millisecond at a time
// while another document already owns it.
func (p *Pipeline) saveWorkOrder(ctx context.Context, order *model.WorkOrder) error {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	for {
		existing, err := p.store.GetWorkOrder(ctx, order.ID)
		if errors.Is(err, common.ErrNotFound) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to check work order %s: %w", order.ID, err)
		}
		if existing.FileURL == order.FileURL {
			break
		}
		order.ExtractedAt = order.ExtractedAt.Add(time.Millisecond)
		order.ID = fmt.Sprintf("%s_%d", order.Number, order.ExtractedAt.UnixMilli())
	}

	if err := p.store.SaveWorkOrder(ctx, order); err != nil {
		return fmt.Errorf("failed to save work order %s: %w", order.ID, err)
	}
	return nil
}
