package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/Sternrassler/catalog-client/pkg/model"
	"github.com/Sternrassler/catalog-client/pkg/result"
	"github.com/rs/zerolog/log"
)

// BatchConfig holds batch loader configuration.
type BatchConfig struct {
	// MaxConcurrency is the maximum number of parallel item fetches.
	MaxConcurrency int
	// Timeout per item fetch.
	Timeout time.Duration
}

// DefaultBatchConfig returns conservative defaults for a public API.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxConcurrency: 4,
		Timeout:        15 * time.Second,
	}
}

// ItemResult is the outcome of loading one id.
type ItemResult struct {
	ID     int
	Result result.Result[model.ItemDetail]
}

// BatchLoader loads many item details in parallel. Each id goes through the
// gateway exactly once; failures are reported per id, never retried.
type BatchLoader struct {
	source ItemSource
	config BatchConfig
}

// NewBatchLoader creates a batch loader.
func NewBatchLoader(source ItemSource, config BatchConfig) *BatchLoader {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = DefaultBatchConfig().MaxConcurrency
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultBatchConfig().Timeout
	}
	return &BatchLoader{source: source, config: config}
}

type indexedID struct {
	index int
	id    int
}

// LoadItems fetches every id and returns the results in input order.
// Ids not attempted because ctx was cancelled come back as network failures
// carrying ctx.Err().
func (b *BatchLoader) LoadItems(ctx context.Context, ids []int) []ItemResult {
	start := time.Now()
	results := make([]ItemResult, len(ids))
	if len(ids) == 0 {
		return results
	}

	workers := b.config.MaxConcurrency
	if workers > len(ids) {
		workers = len(ids)
	}

	log.Info().
		Int("items", len(ids)).
		Int("workers", workers).
		Msg("Starting parallel item load")

	queue := make(chan indexedID, len(ids))
	for i, id := range ids {
		queue <- indexedID{index: i, id: id}
	}
	close(queue)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go b.worker(ctx, queue, results, &wg, w)
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if !r.Result.IsSuccess() {
			failed++
		}
	}

	log.Info().
		Int("items", len(ids)).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("Item load complete")

	return results
}

// worker drains the queue. Each index is written by exactly one worker.
func (b *BatchLoader) worker(ctx context.Context, queue <-chan indexedID, results []ItemResult, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()
	processed := 0

	for job := range queue {
		if err := ctx.Err(); err != nil {
			results[job.index] = ItemResult{
				ID:     job.id,
				Result: result.Failure[model.ItemDetail](result.Classify(result.Outcome{Err: err}), err),
			}
			continue
		}

		itemCtx, cancel := context.WithTimeout(ctx, b.config.Timeout)
		res := b.source.Item(itemCtx, job.id)
		cancel()

		results[job.index] = ItemResult{ID: job.id, Result: res}
		processed++
	}

	if processed > 0 {
		log.Debug().
			Int("worker_id", workerID).
			Int("items_processed", processed).
			Msg("Worker completed")
	}
}
