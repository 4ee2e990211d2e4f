package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shiftsync/shiftsync/internal/domain/model"
	"github.com/shiftsync/shiftsync/pkg/metrics"
)

// MemoryStore is the default Store backend: mutex-guarded maps with
// insertion-ordered profile iteration so candidate ties stay deterministic.
//
// The (shift, talent) uniqueness check runs inside the write lock, which
// closes the concurrent double-invite window for this backend: two racing
// auto-fills serialize on the lock and the loser's batch fails.
type MemoryStore struct {
	mu sync.RWMutex

	shifts  map[string]model.Shift
	shiftID []string // insertion order

	profiles  map[string]model.TalentProfile
	profileID []string // insertion order

	assignments map[string][]model.Assignment         // shift id -> rows
	pairs       map[string]map[string]struct{}        // shift id -> talent ids
	now         func() time.Time
}

// MemoryOption applies a configuration option to the MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the timestamp source. Used by tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		shifts:      make(map[string]model.Shift),
		profiles:    make(map[string]model.TalentProfile),
		assignments: make(map[string][]model.Assignment),
		pairs:       make(map[string]map[string]struct{}),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) CreateShift(_ context.Context, shift model.Shift) (model.Shift, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreWriteLatency(msSince(start)) }()

	if err := shift.Validate(); err != nil {
		return model.Shift{}, err
	}
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if shift.CreatedAt.IsZero() {
		shift.CreatedAt = s.now()
	}
	if _, exists := s.shifts[shift.ID]; !exists {
		s.shiftID = append(s.shiftID, shift.ID)
	}
	s.shifts[shift.ID] = shift
	return shift, nil
}

func (s *MemoryStore) GetShift(_ context.Context, id string) (model.Shift, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	shift, ok := s.shifts[id]
	if !ok {
		return model.Shift{}, ErrShiftNotFound
	}
	return shift, nil
}

func (s *MemoryStore) ListShifts(_ context.Context, limit int) ([]model.Shift, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Shift, 0, len(s.shiftID))
	for _, id := range s.shiftID {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, s.shifts[id])
	}
	return out, nil
}

func (s *MemoryStore) CreateProfile(_ context.Context, profile model.TalentProfile) (model.TalentProfile, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreWriteLatency(msSince(start)) }()

	if err := profile.Validate(); err != nil {
		return model.TalentProfile{}, err
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = s.now()
	}
	if _, exists := s.profiles[profile.ID]; !exists {
		s.profileID = append(s.profileID, profile.ID)
	}
	s.profiles[profile.ID] = profile
	return profile, nil
}

func (s *MemoryStore) GetProfile(_ context.Context, id string) (model.TalentProfile, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[id]
	if !ok {
		return model.TalentProfile{}, ErrProfileNotFound
	}
	return profile, nil
}

func (s *MemoryStore) Candidates(_ context.Context, q CandidateQuery) ([]model.TalentProfile, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	if q.Limit <= 0 {
		return nil, ErrInvalidQuery
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	pool := make([]model.TalentProfile, 0, len(s.profileID))
	for _, id := range s.profileID {
		p := s.profiles[id]
		if !p.AvailableNow {
			continue
		}
		if p.MinHourlyRate > q.MaxHourlyRate {
			continue
		}
		if _, excluded := q.Exclude[p.ID]; excluded {
			continue
		}
		pool = append(pool, p)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Rating != pool[j].Rating {
			return pool[i].Rating > pool[j].Rating
		}
		return pool[i].CompletedShifts > pool[j].CompletedShifts
	})

	if q.Limit < len(pool) {
		pool = pool[:q.Limit]
	}
	return pool, nil
}

func (s *MemoryStore) TalentIDsForShift(_ context.Context, shiftID string) (map[string]struct{}, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]struct{}, len(s.pairs[shiftID]))
	for talentID := range s.pairs[shiftID] {
		out[talentID] = struct{}{}
	}
	return out, nil
}

func (s *MemoryStore) CreateAssignments(_ context.Context, assignments []model.Assignment) ([]model.Assignment, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreWriteLatency(msSince(start)) }()

	if len(assignments) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching state, including duplicates
	// inside the batch itself.
	batchPairs := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		key := a.ShiftID + "\x00" + a.TalentID
		if _, dup := batchPairs[key]; dup {
			return nil, ErrDuplicateAssignment
		}
		batchPairs[key] = struct{}{}
		if _, dup := s.pairs[a.ShiftID][a.TalentID]; dup {
			return nil, ErrDuplicateAssignment
		}
	}

	created := make([]model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = s.now()
		}
		s.assignments[a.ShiftID] = append(s.assignments[a.ShiftID], a)
		if s.pairs[a.ShiftID] == nil {
			s.pairs[a.ShiftID] = make(map[string]struct{})
		}
		s.pairs[a.ShiftID][a.TalentID] = struct{}{}
		created = append(created, a)
	}
	return created, nil
}

func (s *MemoryStore) ListAssignments(_ context.Context, shiftID string) ([]model.Assignment, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Assignment, len(s.assignments[shiftID]))
	copy(out, s.assignments[shiftID])
	return out, nil
}

func (s *MemoryStore) Count(_ context.Context) Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, rows := range s.assignments {
		total += len(rows)
	}
	return Counts{
		Shifts:      len(s.shifts),
		Profiles:    len(s.profiles),
		Assignments: total,
	}
}

func (s *MemoryStore) Close() error {
	return nil
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
