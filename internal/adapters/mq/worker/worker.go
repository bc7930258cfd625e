// Package worker runs batch assessment jobs pulled from the job queue.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/telerisk/internal/domain/batch"
	"github.com/okian/telerisk/internal/domain/model"
	"github.com/okian/telerisk/internal/domain/report"
	"github.com/okian/telerisk/pkg/logger"
	"github.com/okian/telerisk/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Assessor produces a report for one project.
type Assessor interface {
	AssessProject(ctx context.Context, p model.ProjectData, sectorIDs []string) (*report.Report, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan batch.Job
}

// Worker processes jobs until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled, the queue closes, or
	// Shutdown is called.
	Run(ctx context.Context)

	// Shutdown stops the worker once the jobs already queued are done.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue    Queue
	assessor Assessor
	name     string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker with configuration options.
func NewInMemoryWorker(q Queue, assessor Assessor, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		assessor: assessor,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Named(w.name)
	}
	return w
}

func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			w.drain(ctx, jobs)
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, j)
		}
	}
}

// drain processes jobs still waiting so every accepted job reports a result.
// Once the queue is closed it reads until the channel closes; otherwise it
// stops at the first empty read.
func (w *InMemoryWorker) drain(ctx context.Context, jobs <-chan batch.Job) {
	closed, _ := w.queue.(interface{ IsClosed() bool })
	for {
		if closed != nil && closed.IsClosed() {
			j, ok := <-jobs
			if !ok {
				return
			}
			w.process(ctx, j)
			continue
		}
		select {
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, j)
		default:
			return
		}
	}
}

func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process assesses one job and delivers its result. Done is sized by the
// batch, so the send never blocks.
func (w *InMemoryWorker) process(ctx context.Context, j batch.Job) { //nolint:gocritic // hugeParam: jobs are passed by value over channels
	start := time.Now()
	rep, err := w.assessor.AssessProject(ctx, j.Request.Project, j.Request.Sectors)
	metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))

	if err != nil {
		metrics.RecordWorkerError()
		w.logger.Warn(ctx, "batch item failed",
			logger.String("batch", j.BatchID),
			logger.Int("index", j.Index),
			logger.String("project", j.Request.Project.ProjectID),
			logger.Error(err),
		)
	}

	j.Done <- batch.Result{
		Index:     j.Index,
		ProjectID: j.Request.Project.ProjectID,
		Report:    rep,
		Err:       err,
	}
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers. A non-positive count uses
// one worker per CPU.
func NewPool(workerCount int, q Queue, assessor Assessor) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(q, assessor, WithName("worker-"+strconv.Itoa(i)))
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	metrics.UpdateWorkerActiveCount(len(p.workers))
}

// Shutdown closes the queue, then waits for every worker to stop.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var firstErr error
	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	metrics.UpdateWorkerActiveCount(0)
	return firstErr
}
