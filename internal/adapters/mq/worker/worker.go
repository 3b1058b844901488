// Package worker runs player analyses on a fixed pool of goroutines.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/scout/internal/adapters/mq/queue"
	"github.com/okian/scout/internal/domain/attributes"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

const (
	queuePerWorker      = 64
	poolShutdownTimeout = 30 * time.Second
)

// Sentinel errors.
var (
	ErrNotStarted = errors.New("worker pool not started")
	ErrStopped    = errors.New("worker pool stopped")
)

// Analyzer computes one analysis. Implementations must be safe for
// concurrent use.
type Analyzer interface {
	Analyze(s *attributes.Snapshot) scoring.Analysis
}

// job is one snapshot of a batch; the worker writes into out.
type job struct {
	ctx      context.Context
	snapshot *attributes.Snapshot
	out      *scoring.Analysis
	wg       *sync.WaitGroup
}

type analysisWorker struct {
	name     string
	queue    *queue.InMemoryQueue[job]
	analyzer Analyzer
	done     chan struct{}
	logger   logger.Logger
}

func (w *analysisWorker) run(ctx context.Context, shutdown <-chan struct{}) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-shutdown:
			return
		case <-w.queue.Done():
			return
		case j := <-w.queue.Dequeue():
			w.process(j)
		}
	}
}

func (w *analysisWorker) process(j job) {
	defer j.wg.Done()
	if j.ctx.Err() != nil {
		return
	}
	*j.out = w.analyzer.Analyze(j.snapshot)
}

// Pool manages the analysis workers.
type Pool struct {
	name     string
	workers  []*analysisWorker
	queue    *queue.InMemoryQueue[job]
	analyzer Analyzer
	capacity int

	started  atomic.Bool
	shutdown chan struct{}
	stopOnce sync.Once

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers; values below one use the
// number of CPUs.
func NewPool(workerCount int, analyzer Analyzer, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		name:     "analysis-pool",
		analyzer: analyzer,
		capacity: workerCount * queuePerWorker,
		shutdown: make(chan struct{}),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named(p.name)
	p.queue = queue.New[job](queue.WithCapacity(p.capacity))

	p.workers = make([]*analysisWorker, workerCount)
	for i := range p.workers {
		p.workers[i] = &analysisWorker{
			name:     "worker-" + strconv.Itoa(i),
			queue:    p.queue,
			analyzer: analyzer,
			done:     make(chan struct{}),
			logger:   p.logger,
		}
	}
	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start launches the workers. They exit when ctx is cancelled or the pool is
// shut down. Calling Start twice is a no-op.
func (p *Pool) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	for _, w := range p.workers {
		go w.run(ctx, p.shutdown)
	}
	p.logger.Info(ctx, "analysis workers started", logger.Int("workers", len(p.workers)))
}

// Analyze runs every snapshot through the analyzer and returns the analyses in
// input order. Nil snapshots yield the empty analysis.
func (p *Pool) Analyze(ctx context.Context, snapshots []*attributes.Snapshot) ([]scoring.Analysis, error) {
	if !p.started.Load() {
		return nil, ErrNotStarted
	}
	if len(snapshots) == 0 {
		return []scoring.Analysis{}, nil
	}

	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]scoring.Analysis, len(snapshots))
	var wg sync.WaitGroup
	var enqueueErr error
	for i, s := range snapshots {
		wg.Add(1)
		if err := p.queue.Enqueue(ctx, job{ctx: ctx, snapshot: s, out: &results[i], wg: &wg}); err != nil {
			wg.Done()
			enqueueErr = err
			// Queued jobs see the cancelled context and finish without work.
			cancel()
			break
		}
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-p.shutdown:
		return nil, ErrStopped
	case <-ctx.Done():
		if enqueueErr == nil {
			enqueueErr = ctx.Err()
		}
	}

	if enqueueErr == nil {
		enqueueErr = ctx.Err()
	}
	if enqueueErr != nil {
		if errors.Is(enqueueErr, queue.ErrClosed) {
			enqueueErr = ErrStopped
		}
		metrics.RecordErrorByComponent("worker", "batch_aborted")
		return nil, fmt.Errorf("analyze batch of %d: %w", len(snapshots), enqueueErr)
	}

	metrics.RecordBatch(len(snapshots), float64(time.Since(start).Microseconds())/1000)
	return results, nil
}

// Shutdown stops the workers and waits for them to exit.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.shutdown)
		_ = p.queue.Close()
	})
	if !p.started.Load() {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("shutdown timed out: %w", shutdownCtx.Err())
		}
	}
	return nil
}
