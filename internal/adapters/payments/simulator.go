// Package payments provides a simulated payment processor. No real charges
// happen anywhere in this service; the simulator exists so the booking flow
// can be exercised end to end.
package payments

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shiftsync/shiftsync/internal/domain/dedupe"
	"github.com/shiftsync/shiftsync/pkg/metrics"
)

// Default processor configuration constants.
const (
	defaultMinLatency = 40 * time.Millisecond
	defaultMaxLatency = 120 * time.Millisecond
	defaultRandomSeed = 42
	defaultCacheSize  = 10000
)

// Request describes a capture to simulate.
type Request struct {
	ShiftID        string
	AmountCents    int64
	IdempotencyKey string
}

// Receipt is the simulated processor response. Replayed is true when the
// idempotency key was seen before and the original receipt was returned.
type Receipt struct {
	PaymentID   string
	ShiftID     string
	AmountCents int64
	Status      string
	ProcessedAt time.Time
	Replayed    bool
}

// Simulator implements the fake processor with simulated network latency and
// idempotency-key replay.
type Simulator struct {
	minLatency time.Duration
	maxLatency time.Duration
	rng        *rand.Rand
	keys       dedupe.KeyStore
	now        func() time.Time
}

// NewSimulator creates a Simulator with configuration options.
func NewSimulator(opts ...SimOption) *Simulator {
	s := &Simulator{
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
		rng:        rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic simulation
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.keys == nil {
		s.keys = dedupe.NewInMemoryKeyStore(dedupe.WithMaxSize(defaultCacheSize))
	}
	return s
}

// Capture validates and "processes" the payment. A repeated idempotency key
// replays the original receipt instead of charging again.
func (s *Simulator) Capture(ctx context.Context, req Request) (Receipt, error) {
	if strings.TrimSpace(req.ShiftID) == "" {
		return Receipt{}, ErrMissingShift
	}
	if req.AmountCents <= 0 {
		return Receipt{}, ErrInvalidAmount
	}
	if strings.TrimSpace(req.IdempotencyKey) == "" {
		return Receipt{}, ErrMissingIdempotencyKey
	}

	// Simulate processor round-trip latency, honoring cancellation.
	latency := s.minLatency
	if s.maxLatency > s.minLatency {
		latency += time.Duration(s.rng.Int63n(int64(s.maxLatency - s.minLatency)))
	}
	select {
	case <-ctx.Done():
		return Receipt{}, fmt.Errorf("payment canceled: %w", ctx.Err())
	case <-time.After(latency):
	}

	receipt := Receipt{
		PaymentID:   uuid.NewString(),
		ShiftID:     req.ShiftID,
		AmountCents: req.AmountCents,
		Status:      "captured",
		ProcessedAt: s.now(),
	}

	stored, seen := s.keys.PutIfAbsent(ctx, req.IdempotencyKey, receipt)
	if seen {
		original, ok := stored.(Receipt)
		if !ok {
			return Receipt{}, ErrCorruptCache
		}
		original.Replayed = true
		metrics.RecordPaymentReplay()
		return original, nil
	}

	metrics.RecordPaymentSimulated()
	return receipt, nil
}
