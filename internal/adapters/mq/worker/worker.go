// Package worker runs season jobs off a queue with a fixed set of goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/careersim/pkg/logger"
	"github.com/okian/careersim/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	poolShutdownTimeout     = 30 * time.Second
)

// Handler processes one job. Errors are logged and counted; they never stop
// the worker.
type Handler[T any] interface {
	Handle(ctx context.Context, job T) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[T any] func(ctx context.Context, job T) error

// Handle implements Handler.
func (f HandlerFunc[T]) Handle(ctx context.Context, job T) error { return f(ctx, job) }

// Queue defines how workers receive jobs.
type Queue[T any] interface {
	Dequeue(ctx context.Context) <-chan T
}

// Worker processes jobs from a queue until stopped.
type Worker[T any] struct {
	name    string
	queue   Queue[T]
	handler Handler[T]

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

func newWorker[T any](name string, q Queue[T], h Handler[T], l logger.Logger) *Worker[T] {
	return &Worker[T]{
		name:     name,
		queue:    q,
		handler:  h,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   l.Named(name),
	}
}

// Run starts the worker loop. It returns when ctx is cancelled, the worker is
// shut down, or the queue is closed and drained.
func (w *Worker[T]) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, job)
		}
	}
}

func (w *Worker[T]) process(ctx context.Context, job T) {
	start := time.Now()
	err := w.handler.Handle(ctx, job)
	status := "ok"
	if err != nil {
		status = "error"
		w.logger.Warn(ctx, "job failed", logger.Error(err))
	}
	metrics.RecordJobProcessed(status, time.Since(start))
}

// Pool manages multiple workers sharing one queue.
type Pool[T any] struct {
	workers []*Worker[T]
	queue   Queue[T]

	stopOnce sync.Once
	logger   logger.Logger
}

// NewPool creates a pool of workerCount workers. A count below one defaults
// to twice the CPU count.
func NewPool[T any](workerCount int, q Queue[T], h Handler[T], opts ...Option) *Pool[T] {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}
	s := settings{name: "worker", logger: logger.Nop()}
	for _, opt := range opts {
		opt(&s)
	}

	p := &Pool[T]{
		workers: make([]*Worker[T], workerCount),
		queue:   q,
		logger:  s.logger.Named(s.name + "-pool"),
	}
	for i := range p.workers {
		p.workers[i] = newWorker(s.name+"-"+strconv.Itoa(i), q, h, s.logger)
	}
	return p
}

// Size returns the number of workers.
func (p *Pool[T]) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool[T]) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	metrics.UpdateWorkersRunning(len(p.workers))
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Shutdown closes the queue when it supports it, signals every worker, and
// waits for them to return or ctx to expire.
func (p *Pool[T]) Shutdown(ctx context.Context) error {
	var err error
	p.stopOnce.Do(func() {
		if closer, ok := p.queue.(interface{ Close() error }); ok {
			if cerr := closer.Close(); cerr != nil {
				p.logger.Error(ctx, "error closing queue", logger.Error(cerr))
			}
		}
		for _, w := range p.workers {
			close(w.shutdown)
		}

		shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
		defer cancel()
		for i, w := range p.workers {
			select {
			case <-w.done:
			case <-shutdownCtx.Done():
				p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
				err = fmt.Errorf("shutdown timed out: %w", shutdownCtx.Err())
			}
		}
		metrics.UpdateWorkersRunning(0)
	})
	return err
}
