// Package service provides the core business service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	notifyqueue "github.com/shiftsync/shiftsync/internal/adapters/mq/queue"
	notifyworker "github.com/shiftsync/shiftsync/internal/adapters/mq/worker"
	"github.com/shiftsync/shiftsync/internal/adapters/payments"
	repository "github.com/shiftsync/shiftsync/internal/adapters/repository"
	"github.com/shiftsync/shiftsync/internal/domain/matching"
	"github.com/shiftsync/shiftsync/internal/domain/model"
	"github.com/shiftsync/shiftsync/pkg/logger"
	"github.com/shiftsync/shiftsync/pkg/metrics"
)

// Describer generates shift posting descriptions. Nil when no AI backend is
// configured.
type Describer interface {
	DescribeShift(ctx context.Context, req DescribeRequest) (string, error)
}

// DescribeRequest mirrors the attributes the description endpoint accepts.
type DescribeRequest struct {
	RoleType   model.RoleType
	Location   string
	HourlyRate float64
}

// InvitedTalent is one selected candidate in an auto-fill result.
type InvitedTalent struct {
	ID     string
	Name   string
	Rating float64
	Score  float64
}

// AutoFillResult reports the outcome of one auto-fill invocation. Invited can
// be lower than requested: the candidate fetch is capped at twice the
// requested headcount before skill filtering, so a heavily filtered pool
// under-fills even when more eligible talent exists.
type AutoFillResult struct {
	Invited int
	Talent  []InvitedTalent
}

// Service implements the API dependencies for the marketplace backend.
type Service struct {
	mu sync.RWMutex

	store     repository.Store
	ranker    *matching.Ranker
	queue     notifyqueue.Queue
	pool      *notifyworker.Pool
	simulator *payments.Simulator
	describer Describer

	workerCount      int
	queueSize        int
	maxAutofillCount int
	maxListLimit     int

	started bool

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:      2,
		queueSize:        4096,
		maxAutofillCount: 100,
		maxListLimit:     100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes any components not supplied via options and launches the
// notification workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory store")
	}
	if s.ranker == nil {
		s.ranker = matching.NewRanker()
	}
	if s.simulator == nil {
		s.simulator = payments.NewSimulator()
	}
	if s.queue == nil {
		s.queue = notifyqueue.NewInMemoryQueue(notifyqueue.WithCapacity(s.queueSize))
	}
	if s.pool == nil {
		s.pool = notifyworker.NewPool(s.workerCount, s.queue, s.logDeliverer())
	}
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.Int("notification_workers", s.workerCount),
		logger.Bool("ai_enabled", s.describer != nil),
	)
	return nil
}

// Stop gracefully shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping matching service...")

	if q, ok := s.queue.(*notifyqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(ctx, "store close failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "matching service stopped")
}

// AutoFill selects up to count best-fit candidates for the shift and creates
// one invitation per selection. Reads and the final bulk write are not
// wrapped in a transaction; the store's (shift, talent) uniqueness constraint
// is the backstop against concurrent double invites.
func (s *Service) AutoFill(ctx context.Context, shiftID string, count int) (AutoFillResult, error) {
	start := time.Now()
	defer func() { metrics.RecordAutofillDuration(float64(time.Since(start).Microseconds()) / 1000.0) }()

	// The ranker, store and notification pool are resolved in Start; running
	// before that would hit nil collaborators.
	s.mu.RLock()
	ready := s.started
	s.mu.RUnlock()
	if !ready {
		metrics.RecordAutofillRequest("error")
		return AutoFillResult{}, ErrNotStarted
	}

	if strings.TrimSpace(shiftID) == "" {
		metrics.RecordAutofillRequest("invalid")
		return AutoFillResult{}, fmt.Errorf("%w: shift id is required", ErrInvalidArgument)
	}
	if count <= 0 {
		metrics.RecordAutofillRequest("invalid")
		return AutoFillResult{}, fmt.Errorf("%w: count must be a positive integer", ErrInvalidArgument)
	}
	if count > s.maxAutofillCount {
		metrics.RecordAutofillRequest("invalid")
		return AutoFillResult{}, fmt.Errorf("%w: count must not exceed %d", ErrInvalidArgument, s.maxAutofillCount)
	}

	shift, err := s.store.GetShift(ctx, shiftID)
	if err != nil {
		if errors.Is(err, repository.ErrShiftNotFound) {
			metrics.RecordAutofillRequest("not_found")
			return AutoFillResult{}, err
		}
		metrics.RecordAutofillRequest("error")
		return AutoFillResult{}, fmt.Errorf("load shift: %w", err)
	}

	// Exclusion set: talent already linked to the shift through any
	// assignment status, computed once per call.
	exclude, err := s.store.TalentIDsForShift(ctx, shiftID)
	if err != nil {
		metrics.RecordAutofillRequest("error")
		return AutoFillResult{}, fmt.Errorf("load exclusion set: %w", err)
	}

	pool, err := s.store.Candidates(ctx, repository.CandidateQuery{
		MaxHourlyRate: shift.HourlyRate,
		Exclude:       exclude,
		Limit:         matching.Overfetch * count,
	})
	if err != nil {
		metrics.RecordAutofillRequest("error")
		return AutoFillResult{}, fmt.Errorf("query candidates: %w", err)
	}
	metrics.RecordAutofillPoolSize(len(pool))

	selected := s.ranker.Rank(shift.RoleType, pool, count)
	if len(selected) == 0 {
		// "No one available" is an expected business outcome, not a fault.
		metrics.RecordAutofillRequest("empty")
		return AutoFillResult{Invited: 0, Talent: []InvitedTalent{}}, nil
	}

	invitations := make([]model.Assignment, len(selected))
	for i, c := range selected {
		invitations[i] = model.Assignment{
			ShiftID:  shiftID,
			TalentID: c.Profile.ID,
			Status:   model.StatusInvited,
		}
	}
	created, err := s.store.CreateAssignments(ctx, invitations)
	if err != nil {
		metrics.RecordAutofillRequest("error")
		return AutoFillResult{}, fmt.Errorf("create invitations: %w", err)
	}

	s.notifyInvited(ctx, shift, selected, created)

	result := AutoFillResult{
		Invited: len(selected),
		Talent:  make([]InvitedTalent, len(selected)),
	}
	for i, c := range selected {
		result.Talent[i] = InvitedTalent{
			ID:     c.Profile.ID,
			Name:   c.Profile.DisplayName,
			Rating: c.Profile.Rating,
			Score:  c.Score,
		}
	}

	metrics.RecordAutofillRequest("ok")
	metrics.RecordInvitations(result.Invited)
	if result.Invited < count {
		metrics.RecordAutofillUnderfill()
	}
	return result, nil
}

// notifyInvited fans invitation notifications out to the outbox. Best-effort:
// a full queue is logged and dropped, never surfaced to the caller.
func (s *Service) notifyInvited(ctx context.Context, shift model.Shift, selected []matching.Candidate, created []model.Assignment) {
	for i, c := range selected {
		n := model.Notification{
			TalentID: c.Profile.ID,
			ShiftID:  shift.ID,
			RoleType: shift.RoleType,
			Message:  fmt.Sprintf("You have been invited to a %s shift at $%.2f/hr", shift.RoleType, shift.HourlyRate),
		}
		if i < len(created) {
			n.ID = created[i].ID
		}
		if !s.queue.Enqueue(ctx, n) {
			s.logger.Warn(ctx, "notification queue full, dropping invite notification",
				logger.String("shift_id", shift.ID),
				logger.String("talent_id", c.Profile.ID),
			)
		}
	}
}

// CreateShift validates and stores a new shift posting.
func (s *Service) CreateShift(ctx context.Context, shift model.Shift) (model.Shift, error) {
	created, err := s.store.CreateShift(ctx, shift)
	if err != nil {
		return model.Shift{}, fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}
	s.logger.Info(ctx, "shift created",
		logger.String("shift_id", created.ID),
		logger.String("role", string(created.RoleType)),
		logger.Float64("rate", created.HourlyRate),
	)
	return created, nil
}

// GetShift loads one shift.
func (s *Service) GetShift(ctx context.Context, id string) (model.Shift, error) {
	return s.store.GetShift(ctx, id)
}

// ListShifts returns up to limit shifts in creation order. The limit is
// clamped to the configured maximum.
func (s *Service) ListShifts(ctx context.Context, limit int) ([]model.Shift, error) {
	if limit <= 0 || limit > s.maxListLimit {
		limit = s.maxListLimit
	}
	return s.store.ListShifts(ctx, limit)
}

// CreateProfile validates and stores a talent profile.
func (s *Service) CreateProfile(ctx context.Context, profile model.TalentProfile) (model.TalentProfile, error) {
	created, err := s.store.CreateProfile(ctx, profile)
	if err != nil {
		return model.TalentProfile{}, fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}
	return created, nil
}

// GetProfile loads one talent profile.
func (s *Service) GetProfile(ctx context.Context, id string) (model.TalentProfile, error) {
	return s.store.GetProfile(ctx, id)
}

// ListAssignments returns the assignments for a shift, oldest first.
func (s *Service) ListAssignments(ctx context.Context, shiftID string) ([]model.Assignment, error) {
	if _, err := s.store.GetShift(ctx, shiftID); err != nil {
		return nil, err
	}
	return s.store.ListAssignments(ctx, shiftID)
}

// SimulatePayment runs a fake capture through the payment simulator.
func (s *Service) SimulatePayment(ctx context.Context, req payments.Request) (payments.Receipt, error) {
	return s.simulator.Capture(ctx, req)
}

// DescribeShift drafts a posting description via the configured AI backend.
func (s *Service) DescribeShift(ctx context.Context, req DescribeRequest) (string, error) {
	s.mu.RLock()
	describer := s.describer
	s.mu.RUnlock()

	if describer == nil {
		return "", ErrAINotConfigured
	}
	if !req.RoleType.Valid() {
		return "", fmt.Errorf("%w: unknown role type %q", ErrInvalidArgument, req.RoleType)
	}
	return describer.DescribeShift(ctx, req)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":             s.started,
		"notificationWorkers": s.workerCount,
		"aiEnabled":           s.describer != nil,
	}

	if s.started {
		counts := s.store.Count(ctx)
		stats["totalShifts"] = counts.Shifts
		stats["totalProfiles"] = counts.Profiles
		stats["totalAssignments"] = counts.Assignments
		stats["notificationQueueLength"] = s.queue.Len(ctx)

		metrics.UpdateTotalShifts(counts.Shifts)
		metrics.UpdateTotalProfiles(counts.Profiles)
		metrics.UpdateTotalAssignments(counts.Assignments)
		metrics.UpdateQueueSize(s.queue.Len(ctx))
	}
	return stats
}

func (s *Service) logDeliverer() notifyworker.Deliverer {
	log := s.logger.Named("delivery")
	return notifyworker.DeliverFunc(func(ctx context.Context, n notifyqueue.Notification) error {
		log.Info(ctx, "invitation notification sent",
			logger.String("talent_id", n.TalentID),
			logger.String("shift_id", n.ShiftID),
			logger.String("message", n.Message),
		)
		return nil
	})
}
