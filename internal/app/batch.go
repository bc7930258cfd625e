package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/telerisk/internal/domain/batch"
	"github.com/okian/telerisk/internal/domain/dedupe"
	"github.com/okian/telerisk/pkg/logger"
	"github.com/okian/telerisk/pkg/metrics"
)

// BatchResult holds one result per request, in request order.
type BatchResult struct {
	BatchID string
	Results []batch.Result
}

// AssessBatch assesses every request on the worker pool and waits for all
// results or for ctx or the batch timeout to expire. A project_id repeated
// within the batch is reported as a duplicate and not assessed again. Each
// batch tracks its own project ids, so nothing is retained after the call
// returns and concurrent batches cannot evict each other's entries.
func (s *Service) AssessBatch(ctx context.Context, reqs []batch.Request) (*BatchResult, error) {
	s.mu.RLock()
	started, q, timeout, limit := s.started, s.jobQueue, s.batchTimeout, s.maxBatchSize
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}
	if len(reqs) > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(reqs), limit)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	batchID := uuid.NewString()
	out := &BatchResult{BatchID: batchID, Results: make([]batch.Result, len(reqs))}
	filled := make([]bool, len(reqs))
	done := make(chan batch.Result, len(reqs))

	// unbounded: a batch never holds more than limit keys
	d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))

	pending := 0
	for i, req := range reqs {
		metrics.RecordBatchRequest()
		projectID := req.Project.ProjectID

		if projectID != "" {
			key := dedupe.Key(batchID, projectID)
			if d.SeenAndRecord(ctx, key) {
				metrics.RecordBatchDuplicate()
				out.Results[i] = batch.Result{Index: i, ProjectID: projectID, Duplicate: true, Err: ErrDuplicateProject}
				filled[i] = true
				continue
			}
		}

		job := batch.Job{BatchID: batchID, Index: i, Request: req, Done: done}
		if !q.Enqueue(ctx, job) {
			if projectID != "" {
				d.Forget(ctx, dedupe.Key(batchID, projectID))
			}
			out.Results[i] = batch.Result{Index: i, ProjectID: projectID, Err: ErrBackpressure}
			filled[i] = true
			continue
		}
		pending++
	}

	for pending > 0 {
		select {
		case r := <-done:
			out.Results[r.Index] = r
			filled[r.Index] = true
			pending--
		case <-ctx.Done():
			for i, ok := range filled {
				if !ok {
					out.Results[i] = batch.Result{Index: i, ProjectID: reqs[i].Project.ProjectID, Err: ctx.Err()}
				}
			}
			s.logger.Warn(ctx, "batch incomplete",
				logger.String("batch", batchID),
				logger.Int("pending", pending),
				logger.Error(ctx.Err()),
			)
			return out, nil
		}
	}

	s.logger.Debug(ctx, "batch assessed",
		logger.String("batch", batchID),
		logger.Int("items", len(reqs)),
	)
	return out, nil
}
