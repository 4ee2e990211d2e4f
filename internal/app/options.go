package service

import (
	notifyqueue "github.com/shiftsync/shiftsync/internal/adapters/mq/queue"
	"github.com/shiftsync/shiftsync/internal/adapters/payments"
	repository "github.com/shiftsync/shiftsync/internal/adapters/repository"
	"github.com/shiftsync/shiftsync/internal/domain/matching"
	"github.com/shiftsync/shiftsync/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the storage backend. Defaults to the in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRanker sets a custom candidate ranker.
func WithRanker(r *matching.Ranker) Option {
	return func(s *Service) {
		if r != nil {
			s.ranker = r
		}
	}
}

// WithNotificationQueue sets the outbox queue backend.
func WithNotificationQueue(q notifyqueue.Queue) Option {
	return func(s *Service) {
		if q != nil {
			s.queue = q
		}
	}
}

// WithWorkerCount sets the number of notification workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize bounds the notification outbox.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithMaxAutofillCount caps the headcount one auto-fill call may request.
func WithMaxAutofillCount(max int) Option {
	return func(s *Service) {
		if max > 0 {
			s.maxAutofillCount = max
		}
	}
}

// WithMaxListLimit caps list query sizes.
func WithMaxListLimit(max int) Option {
	return func(s *Service) {
		if max > 0 {
			s.maxListLimit = max
		}
	}
}

// WithPaymentSimulator sets the payment backend.
func WithPaymentSimulator(sim *payments.Simulator) Option {
	return func(s *Service) {
		if sim != nil {
			s.simulator = sim
		}
	}
}

// WithDescriber enables the AI description endpoint.
func WithDescriber(d Describer) Option {
	return func(s *Service) {
		if d != nil {
			s.describer = d
		}
	}
}
