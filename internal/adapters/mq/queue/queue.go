// Package queue provides the bounded in-memory notification outbox.
//
// Invitations created by auto-fill fan out here; enqueue is non-blocking so
// notification backpressure can never fail a matching call.
package queue

import (
	"context"
	"sync"

	"github.com/shiftsync/shiftsync/internal/domain/model"
	"github.com/shiftsync/shiftsync/pkg/metrics"
)

const defaultCapacity = 4096

// Notification is the payload type flowing through the queue.
type Notification = model.Notification

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a notification. Returns false when the queue is full.
	Enqueue(ctx context.Context, n Notification) bool

	// Dequeue returns a channel delivering notifications as they arrive.
	// The channel closes when the queue closes.
	Dequeue(ctx context.Context) <-chan Notification

	// Len returns the number of queued notifications.
	Len(ctx context.Context) int

	// Close stops the queue; no further enqueues succeed.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue on a buffered channel.
type InMemoryQueue struct {
	notifications chan Notification
	capacity      int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a queue with the configured capacity.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.notifications = make(chan Notification, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

func (q *InMemoryQueue) Enqueue(_ context.Context, n Notification) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.notifications <- n:
		metrics.RecordNotificationEnqueued()
		metrics.UpdateQueueSize(len(q.notifications))
		return true
	default:
		metrics.RecordNotificationDropped()
		return false
	}
}

func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Notification {
	return q.notifications
}

func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.notifications)
}

func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	close(q.notifications)
	return nil
}

func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
