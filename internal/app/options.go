package service

import (
	"time"

	"github.com/okian/telerisk/internal/domain/risk"
	"github.com/okian/telerisk/internal/domain/sectors"
	"github.com/okian/telerisk/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of batch workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the batch job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithMaxBatchSize caps the number of requests AssessBatch accepts.
func WithMaxBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxBatchSize = size
		}
	}
}

// WithTopRiskLimit caps the ranked risk factors of each report.
func WithTopRiskLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.topRiskLimit = limit
		}
	}
}

// WithRecommendationLimit caps the priority recommendations of each report.
func WithRecommendationLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.recommendationLimit = limit
		}
	}
}

// WithBatchTimeout bounds how long AssessBatch waits for results.
func WithBatchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.batchTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScorer replaces the scorer of a configured sector.
func WithScorer(id string, sc sectors.Scorer) Option {
	return func(s *Service) {
		s.riskOpts = append(s.riskOpts, risk.WithScorer(id, sc))
	}
}

// WithClock sets the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
