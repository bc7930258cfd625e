package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/telerisk/internal/config"
	"github.com/okian/telerisk/internal/domain/catalog"
)

// FromConfig loads the sector catalog named by cfg (or the embedded one) and
// builds a Service with the configured limits. extra options are applied last.
func FromConfig(ctx context.Context, cfg *config.Config, extra ...Option) (*Service, error) {
	var catOpts []catalog.Option
	if cfg.SectorsFile != "" {
		catOpts = append(catOpts, catalog.WithFile(cfg.SectorsFile))
	}
	c, err := catalog.Load(ctx, catOpts...)
	if err != nil {
		return nil, fmt.Errorf("load sector catalog: %w", err)
	}

	opts := []Option{
		WithWorkerCount(cfg.WorkerCount),
		WithQueueSize(cfg.QueueSize),
		WithMaxBatchSize(cfg.MaxBatchSize),
		WithTopRiskLimit(cfg.TopRiskLimit),
		WithRecommendationLimit(cfg.RecommendationLimit),
		WithBatchTimeout(time.Duration(cfg.BatchTimeoutMS) * time.Millisecond),
	}
	return New(c, append(opts, extra...)...), nil
}
