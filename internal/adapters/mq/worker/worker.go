// Package worker drains the notification outbox and hands each notification
// to a Deliverer.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/shiftsync/shiftsync/internal/adapters/mq/queue"
	"github.com/shiftsync/shiftsync/pkg/logger"
	"github.com/shiftsync/shiftsync/pkg/metrics"
)

const defaultShutdownTimeout = 10 * time.Second

// Deliverer sends one notification to its recipient. Implementations decide
// the channel (email, push, or just a log line in this service).
type Deliverer interface {
	Deliver(ctx context.Context, n queue.Notification) error
}

// DeliverFunc adapts a function to the Deliverer interface.
type DeliverFunc func(ctx context.Context, n queue.Notification) error

func (f DeliverFunc) Deliver(ctx context.Context, n queue.Notification) error {
	return f(ctx, n)
}

// Source defines how workers receive notifications.
type Source interface {
	Dequeue(ctx context.Context) <-chan queue.Notification
}

// Worker processes notifications until its source closes or shutdown is
// requested.
type Worker struct {
	source    Source
	deliverer Deliverer
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a worker with configuration options.
func NewWorker(source Source, deliverer Deliverer, opts ...Option) *Worker {
	w := &Worker{
		source:    source,
		deliverer: deliverer,
		name:      "notifier",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("notifier"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run consumes notifications until ctx is canceled, shutdown is signaled or
// the source closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	ch := w.source.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			w.deliver(ctx, n)
		}
	}
}

// Shutdown stops the worker, waiting for the in-flight notification.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker %s shutdown timed out: %w", w.name, ctx.Err())
	}
}

func (w *Worker) deliver(ctx context.Context, n queue.Notification) {
	start := time.Now()
	err := w.deliverer.Deliver(ctx, n)
	metrics.RecordDeliveryLatency(float64(time.Since(start).Microseconds()) / 1000.0)

	if err != nil {
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "notification delivery failed",
			logger.String("notification_id", n.ID),
			logger.String("talent_id", n.TalentID),
			logger.Error(err),
		)
		return
	}
	metrics.RecordNotificationDelivered()
}

// Pool runs a fixed set of workers over one source.
type Pool struct {
	workers []*Worker
	logger  logger.Logger
}

// NewPool creates count workers over source; count below one defaults to one.
func NewPool(count int, source Source, deliverer Deliverer) *Pool {
	if count < 1 {
		count = 1
	}

	p := &Pool{
		workers: make([]*Worker, count),
		logger:  logger.Get().Named("notifier-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewWorker(source, deliverer, WithName("notifier-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(count)
	return p
}

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	p.logger.Info(ctx, "notification workers started", logger.Int("count", len(p.workers)))
}

// Stop shuts the pool down, bounded by defaultShutdownTimeout.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, w := range p.workers {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			if err := w.Shutdown(ctx); err != nil {
				p.logger.Warn(ctx, "worker shutdown incomplete", logger.Error(err))
			}
		}(w)
	}
	wg.Wait()

	metrics.UpdateWorkerCount(0)
}
