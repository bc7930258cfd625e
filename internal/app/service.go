// Package service wires the sector catalog, the risk aggregator and the batch
// pipeline into the operations exposed by the HTTP API and the CLI.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/okian/telerisk/internal/adapters/mq/queue"
	"github.com/okian/telerisk/internal/adapters/mq/worker"
	"github.com/okian/telerisk/internal/domain/catalog"
	"github.com/okian/telerisk/internal/domain/model"
	"github.com/okian/telerisk/internal/domain/report"
	"github.com/okian/telerisk/internal/domain/risk"
	"github.com/okian/telerisk/pkg/logger"
	"github.com/okian/telerisk/pkg/metrics"
)

const stopTimeout = 10 * time.Second

// Service implements the assessment operations. Single-project assessment is
// synchronous and available without Start; batches need the worker pool.
type Service struct {
	mu sync.RWMutex

	catalog  *catalog.Catalog
	risk     *risk.Manager
	riskOpts []risk.Option

	// Batch pipeline, built by Start
	jobQueue   *queue.InMemoryQueue
	workerPool *worker.Pool
	cancel     context.CancelFunc

	// Configuration
	workerCount         int
	queueSize           int
	maxBatchSize        int
	topRiskLimit        int
	recommendationLimit int
	batchTimeout        time.Duration

	started bool
	now     func() time.Time
	logger  logger.Logger
}

// New constructs a Service over c.
func New(c *catalog.Catalog, opts ...Option) *Service {
	s := &Service{
		catalog:             c,
		workerCount:         runtime.NumCPU(),
		queueSize:           1_000,
		maxBatchSize:        500,
		topRiskLimit:        10,
		recommendationLimit: 15,
		batchTimeout:        30 * time.Second,
		now:                 func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	s.risk = risk.NewManager(c, append([]risk.Option{risk.WithLogger(s.logger.Named("risk"))}, s.riskOpts...)...)
	return s
}

// Start builds the batch job queue and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting assessment service...")

	s.jobQueue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.workerPool = worker.NewPool(s.workerCount, s.jobQueue, s)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.workerPool.Start(runCtx)

	s.started = true
	s.logger.Info(ctx, "assessment service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("maxBatchSize", s.maxBatchSize),
		logger.Int("sectors", len(s.catalog.IDs())),
	)
	return nil
}

// Stop drains the worker pool and releases the batch pipeline.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping assessment service...")
	if err := s.workerPool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown incomplete", logger.Error(err))
	}
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "assessment service stopped")
}

// AssessProject validates p, selects the relevant sectors (or uses
// sectorIDs), scores them and assembles the report. Validation failures are
// returned before any scorer runs.
func (s *Service) AssessProject(ctx context.Context, p model.ProjectData, sectorIDs []string) (*report.Report, error) {
	start := time.Now()

	if err := p.Validate(); err != nil {
		metrics.RecordValidationFailure()
		return nil, err
	}

	ids := risk.RelevantSectors(p, sectorIDs)
	assessments := s.risk.AssessProjectRisk(ctx, p, ids)
	overall := s.risk.OverallRisk(assessments)

	rep := report.New(
		p,
		assessments,
		overall,
		s.risk.TopRiskFactors(assessments, s.topRiskLimit),
		s.risk.PriorityRecommendations(assessments, s.recommendationLimit),
		s.now(),
	)

	latency := time.Since(start)
	metrics.RecordAssessment(float64(latency.Milliseconds()), overall, string(rep.Category))
	s.logger.Debug(ctx, "project assessed",
		logger.String("project", p.ProjectID),
		logger.Float64("overallRisk", overall),
		logger.String("category", string(rep.Category)),
		logger.Int("sectors", len(assessments)),
		logger.Any("latency", latency),
	)
	return rep, nil
}

// Catalog returns the sector catalog the service was built with.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	goroutines := runtime.NumGoroutine()
	metrics.UpdateSystemMemoryUsage(mem.HeapAlloc)
	metrics.UpdateSystemGoroutineCount(goroutines)

	stats := map[string]any{
		"started":             s.started,
		"workerCount":         s.workerCount,
		"queueSize":           s.queueSize,
		"maxBatchSize":        s.maxBatchSize,
		"sectors":             len(s.catalog.IDs()),
		"topRiskLimit":        s.topRiskLimit,
		"recommendationLimit": s.recommendationLimit,
		"heapAllocBytes":      mem.HeapAlloc,
		"goroutines":          goroutines,
	}
	if s.started {
		stats["queueLength"] = s.jobQueue.Len(context.Background())
	}
	return stats
}
