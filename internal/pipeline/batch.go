package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/wikiextract/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchStats summarizes one batch run.
type BatchStats struct {
	// Processed is the number of documents that went through the
	// pipeline, including skipped and timed out ones.
	Processed int

	// Skipped is the number of documents rejected by the complexity
	// guard.
	Skipped int

	// TimedOut is the number of documents whose parsing hit the timeout.
	TimedOut int

	// Failed is the number of documents whose pipeline returned an
	// error.
	Failed int
}

// BatchProcessor handles concurrent processing of corpus documents.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-document execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each document.
	// We use a factory to ensure each document gets a fresh pipeline
	// instance.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of documents processed at once.
	concurrency int

	// progressEvery controls how often batch progress is logged, in
	// documents. Zero disables progress logging.
	progressEvery int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// stats accumulates counters across goroutines.
	// Access is synchronized via mutex.
	stats BatchStats
	mu    sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of documents processed
// concurrently. Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithProgressEvery sets how often batch progress is logged, in
// documents. Zero disables progress logging.
func WithProgressEvery(n int) BatchOption {
	return func(b *BatchProcessor) {
		b.progressEvery = n
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each document to create a
// fresh pipeline instance. This ensures that pipeline state doesn't leak
// between documents and allows for per-document customization if needed.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
		progressEvery:   100,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch runs the pipeline over all documents concurrently,
// modifying them in place. It respects the configured concurrency limit
// and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each document gets its own goroutine, but only 'concurrency'
// goroutines run simultaneously.
//
// Pipeline errors are recorded in the documents and counted; they do not
// abort the batch. The error return indicates cancellation.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, docs []*model.Document) (BatchStats, error) {
	bp.logger.Info("starting batch processing",
		"total_documents", len(docs),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	bp.stats = BatchStats{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for _, doc := range docs {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Debug("processing document",
				"row", doc.Row,
				"page_id", doc.PageID,
				"title", doc.Title,
			)

			pipeline := bp.pipelineFactory()
			err := pipeline.Execute(ctx, doc)

			bp.mu.Lock()
			bp.stats.Processed++
			if doc.Skipped {
				bp.stats.Skipped++
			}
			if doc.TimedOut {
				bp.stats.TimedOut++
			}
			if err != nil {
				bp.stats.Failed++
			}
			done := bp.stats.Processed
			bp.mu.Unlock()

			if err != nil {
				// The error is recorded in the document; keep processing
				// the other documents.
				bp.logger.Warn("document failed",
					"row", doc.Row,
					"page_id", doc.PageID,
					"error", err,
				)
				return nil
			}

			if bp.progressEvery > 0 && done%bp.progressEvery == 0 {
				bp.logger.Info("batch progress",
					"processed", done,
					"total", len(docs),
				)
			}

			return nil
		})
	}

	// Wait for all documents to complete
	err := g.Wait()

	elapsed := time.Since(startTime)
	bp.logger.Info("batch processing complete",
		"total_documents", len(docs),
		"skipped", bp.stats.Skipped,
		"timed_out", bp.stats.TimedOut,
		"failed", bp.stats.Failed,
		"elapsed", elapsed,
	)

	return bp.stats, err
}

// ProcessBatchWithCallback runs the pipeline over all documents and
// calls a callback for each completed document. This is useful for
// streaming results.
//
// The callback receives the document and its index in the original
// slice. The callback is called from the goroutine that processed the
// document, so it should be thread-safe if it accesses shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	docs []*model.Document,
	callback func(doc *model.Document, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total_documents", len(docs),
		"concurrency", bp.concurrency,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, doc := range docs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			pipeline := bp.pipelineFactory()
			_ = pipeline.Execute(ctx, doc) //nolint:errcheck // Error is stored in the document

			// Call the callback with the result
			callback(doc, i)

			return nil
		})
	}

	return g.Wait()
}
