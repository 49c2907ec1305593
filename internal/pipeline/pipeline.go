// Package pipeline runs the extraction and categorization stages over many
// documents. Each document goes through its own independent pass of the
// parsing and categorization core; a bounded worker pool runs documents in
// parallel.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/work-order-flow/internal/categorize"
	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/correct"
	"github.com/Veraticus/work-order-flow/internal/extract"
	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/Veraticus/work-order-flow/internal/service"
)

// ErrAllFailed is returned when a run had documents and every one failed.
var ErrAllFailed = errors.New("every document failed")

// ProgressFunc is called after each document with the number finished so far.
type ProgressFunc func(done, total int)

// Options configures a pipeline run.
type Options struct {
	Progress ProgressFunc
	// Workers is the number of documents processed concurrently.
	Workers int
	// BatchSize is how many finished documents go by between run checkpoints.
	BatchSize int
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Workers:   4,
		BatchSize: 5,
	}
}

// Config wires a Pipeline to its collaborators. Reader is only needed for
// extraction and Oracle only for categorization. Corrector defaults to the
// built-in correction rules.
type Config struct {
	Storage   service.Storage
	Reader    service.FieldReader
	Oracle    service.CategoryOracle
	Registry  *categorize.Registry
	Corrector *correct.Corrector
	Logger    *slog.Logger
	Now       func() time.Time
	Layout    extract.Layout
	Options   Options
}

// Pipeline orchestrates extraction and categorization.
type Pipeline struct {
	store     service.Storage
	reader    service.FieldReader
	oracle    service.CategoryOracle
	registry  *categorize.Registry
	corrector *correct.Corrector
	logger    *slog.Logger
	now       func() time.Time
	layout    extract.Layout
	opts      Options
	saveMu    sync.Mutex
}

// New validates cfg and creates a Pipeline.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Storage == nil {
		return nil, fmt.Errorf("%w: storage is required", common.ErrMissingConfig)
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("%w: profile registry is required", common.ErrMissingConfig)
	}
	if cfg.Corrector == nil {
		cfg.Corrector = correct.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Layout == nil {
		cfg.Layout = extract.DefaultLayout()
	}
	if err := cfg.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if cfg.Options.Workers <= 0 {
		cfg.Options.Workers = DefaultOptions().Workers
	}
	if cfg.Options.BatchSize <= 0 {
		cfg.Options.BatchSize = DefaultOptions().BatchSize
	}

	return &Pipeline{
		store:     cfg.Storage,
		reader:    cfg.Reader,
		oracle:    cfg.Oracle,
		registry:  cfg.Registry,
		corrector: cfg.Corrector,
		logger:    cfg.Logger,
		now:       cfg.Now,
		layout:    cfg.Layout,
		opts:      cfg.Options,
	}, nil
}

type outcome int

const (
	outcomeProcessed outcome = iota
	outcomeSkipped
	outcomeFailed
)

// result is the outcome of one document.
type result struct {
	err     error
	item    string
	outcome outcome
	empty   bool
}

func processed(item string, empty bool) result {
	return result{item: item, outcome: outcomeProcessed, empty: empty}
}

func skipped(item string) result {
	return result{item: item, outcome: outcomeSkipped}
}

func failed(item string, err error) result {
	return result{item: item, outcome: outcomeFailed, err: err}
}

// run processes items with the worker pool, tracks the run record and
// returns the completion stats.
func (p *Pipeline) run(
	ctx context.Context,
	runID string,
	stage model.Stage,
	items []string,
	work func(ctx context.Context, logger *slog.Logger, item string) result,
) (*service.CompletionStats, error) {
	logger := common.RunLogger(p.logger, runID).With("stage", string(stage))
	start := p.now()

	record := &model.Run{
		ID:        runID,
		Stage:     stage,
		StartedAt: start,
		Total:     len(items),
	}
	if err := p.store.SaveRun(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record run start: %w", err)
	}

	logger.Info("starting run", "documents", len(items), "workers", p.opts.Workers)

	stats := &service.CompletionStats{Total: len(items)}
	done := 0

	for res := range p.processParallel(ctx, logger, items, work) {
		done++
		switch res.outcome {
		case outcomeProcessed:
			stats.Processed++
			if res.empty {
				stats.Empty++
			}
		case outcomeSkipped:
			stats.Skipped++
		case outcomeFailed:
			stats.Failed++
			logger.Warn("document failed", "item", res.item, "error", res.err)
		}

		if p.opts.Progress != nil {
			p.opts.Progress(done, len(items))
		}

		if done%p.opts.BatchSize == 0 {
			p.checkpoint(ctx, logger, record, stats, nil)
		}
	}

	finished := p.now()
	stats.Duration = finished.Sub(start)
	// The caller's context may already be canceled; the run record is still
	// written.
	p.checkpoint(context.WithoutCancel(ctx), logger, record, stats, &finished)

	logger.Info("run completed",
		"total", stats.Total,
		"processed", stats.Processed,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"empty", stats.Empty,
		"duration", stats.Duration)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if stats.Total > 0 && stats.Failed == stats.Total {
		return stats, ErrAllFailed
	}
	return stats, nil
}

func (p *Pipeline) checkpoint(ctx context.Context, logger *slog.Logger, record *model.Run, stats *service.CompletionStats, finished *time.Time) {
	record.Processed = stats.Processed
	record.Skipped = stats.Skipped
	record.Failed = stats.Failed
	record.FinishedAt = finished
	if err := p.store.SaveRun(ctx, record); err != nil {
		logger.Warn("failed to save run checkpoint", "error", err)
	}
}

// processParallel fans items out to the workers and streams their results.
func (p *Pipeline) processParallel(
	ctx context.Context,
	logger *slog.Logger,
	items []string,
	work func(ctx context.Context, logger *slog.Logger, item string) result,
) <-chan result {
	workChan := make(chan string, len(items))
	for _, item := range items {
		workChan <- item
	}
	close(workChan)

	resultsChan := make(chan result, len(items))

	workers := min(p.opts.Workers, max(len(items), 1))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(workerID int) {
			defer wg.Done()
			workerLogger := logger.With("worker_id", workerID)
			for item := range workChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				resultsChan <- work(ctx, workerLogger, item)
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	return resultsChan
}
