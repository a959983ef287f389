// Package batch provides a bounded worker pool for scoring candidate
// pools in parallel. Each candidate's score is independent and
// side-effect-free, so a request fans its candidates out across the pool
// and waits for all of them before ranking.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/tribe-app/matchd/pkg/logger"
	"github.com/tribe-app/matchd/pkg/metrics"
)

// Default pool configuration constants.
const (
	defaultQueueCapacity = 4096
	shutdownTimeout      = 5 * time.Second
)

// job is one unit of work flowing through the pool.
type job func()

// Pool runs scoring jobs on a fixed set of worker goroutines shared
// across requests.
type Pool struct {
	workers  int
	capacity int
	jobs     chan job

	started  bool
	mu       sync.RWMutex
	shutdown chan struct{}
	done     sync.WaitGroup

	logger logger.Logger
}

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithQueueCapacity bounds the pending-job channel.
func WithQueueCapacity(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.capacity = n
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a pool with default configuration.
func New(opts ...Option) *Pool {
	p := &Pool{
		workers:  runtime.NumCPU(),
		capacity: defaultQueueCapacity,
		shutdown: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("batch")
	}
	p.jobs = make(chan job, p.capacity)
	return p
}

// Start launches the workers. Starting twice is a no-op.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	select {
	case <-p.shutdown:
		// Restart after a Stop: the old signal channel is spent.
		p.shutdown = make(chan struct{})
	default:
	}

	stop := p.shutdown
	for i := 0; i < p.workers; i++ {
		p.done.Add(1)
		go p.run(stop)
	}
	metrics.UpdateBatchWorkerCount(p.workers)
	p.logger.Debug(ctx, "batch pool started", logger.Int("workers", p.workers))
}

// run is the worker loop. Workers exit only through Stop: on shutdown
// they first drain the queue so every submitted job still executes.
func (p *Pool) run(stop <-chan struct{}) {
	defer p.done.Done()
	for {
		select {
		case <-stop:
			for {
				select {
				case j := <-p.jobs:
					j()
				default:
					return
				}
			}
		case j := <-p.jobs:
			start := time.Now()
			j()
			metrics.RecordBatchJobLatency(float64(time.Since(start).Milliseconds()))
		}
	}
}

// Stop signals the workers and waits for them, bounded by a timeout.
// The shutdown signal is only raised once no submission loop is in
// flight, so no job can be queued after the workers drain and exit.
func (p *Pool) Stop() error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil
	}
	p.started = false
	close(p.shutdown)
	p.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		p.done.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-time.After(shutdownTimeout):
		return fmt.Errorf("batch pool shutdown timed out after %s", shutdownTimeout)
	}
}

// ForEach runs n index-addressed jobs and waits for all of them. On a
// pool that is not running, the jobs execute inline on the calling
// goroutine so callers still get a complete result set. When ctx is
// cancelled before every job could be submitted, the remaining indexes
// are skipped and ctx.Err() is returned.
func (p *Pool) ForEach(ctx context.Context, n int, fn func(i int)) error {
	p.mu.RLock()
	if !p.started {
		p.mu.RUnlock()
		return runInline(ctx, n, fn)
	}

	// Holding the read lock for the whole submission loop keeps Stop
	// from closing shutdown between a queue send and its pickup.
	var wg sync.WaitGroup
	var submitErr error
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		j := job(func() {
			defer wg.Done()
			fn(i)
		})
		select {
		case p.jobs <- j:
			metrics.UpdateBatchQueueDepth(len(p.jobs))
		case <-ctx.Done():
			wg.Done()
			submitErr = fmt.Errorf("batch submit cancelled: %w", ctx.Err())
		}
		if submitErr != nil {
			break
		}
	}
	p.mu.RUnlock()

	wg.Wait()
	return submitErr
}

// runInline executes the batch on the calling goroutine.
func runInline(ctx context.Context, n int, fn func(i int)) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("batch submit cancelled: %w", err)
		}
		fn(i)
	}
	return nil
}
