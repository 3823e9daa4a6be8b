package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/productagent/backend/internal/domain"
)

// ProgressFunc receives (completed, total) after each batch item finishes.
// Calls arrive in completion order, which is advisory only.
type ProgressFunc func(completed, total int)

// ProcessBatch resolves every input concurrently, bounded by the configured
// concurrency cap, with all tasks sharing the one rate limiter. The returned
// slice has exactly one result per input, in input order regardless of
// completion order, and a failed item never aborts the batch.
func (s *LookupService) ProcessBatch(ctx context.Context, inputs []string, progress ProgressFunc) []domain.BatchItemResult {
	results := make([]domain.BatchItemResult, len(inputs))

	var (
		wg        sync.WaitGroup
		completed atomic.Int32
	)
	semaphore := make(chan struct{}, s.concurrency)

	log.Infof("processing batch of %d inputs (concurrency %d)", len(inputs), s.concurrency)

	for i, raw := range inputs {
		wg.Add(1)

		go func(i int, raw string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			record, err := s.Lookup(ctx, raw)
			if err != nil {
				results[i] = domain.BatchItemResult{
					Input:   raw,
					Failure: domain.FailureFromError(raw, err),
				}
			} else {
				results[i] = domain.BatchItemResult{Input: raw, Record: record}
			}

			done := int(completed.Add(1))
			if progress != nil {
				progress(done, len(inputs))
			}
		}(i, raw)
	}

	wg.Wait()
	return results
}
