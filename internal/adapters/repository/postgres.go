package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shiftsync/shiftsync/internal/domain/model"
	"github.com/shiftsync/shiftsync/pkg/metrics"
)

// Row types are private to this backend; the rest of the service only sees
// domain models.

type shiftRow struct {
	ID            string `gorm:"primaryKey"`
	BusinessID    string `gorm:"index"`
	RoleType      string
	HourlyRate    float64
	WorkersNeeded int
	Location      string
	StartsAt      time.Time
	EndsAt        time.Time
	CreatedAt     time.Time
}

func (shiftRow) TableName() string { return "shifts" }

type profileRow struct {
	ID              string `gorm:"primaryKey"`
	DisplayName     string
	AvailableNow    bool `gorm:"index"`
	MinHourlyRate   float64
	Rating          float64
	CompletedShifts int
	Skills          []string `gorm:"serializer:json"`
	CreatedAt       time.Time
}

func (profileRow) TableName() string { return "talent_profiles" }

type assignmentRow struct {
	ID        string `gorm:"primaryKey"`
	ShiftID   string `gorm:"uniqueIndex:idx_shift_talent;index"`
	TalentID  string `gorm:"uniqueIndex:idx_shift_talent"`
	Status    string
	CreatedAt time.Time
}

func (assignmentRow) TableName() string { return "assignments" }

// PostgresStore implements Store on a hosted Postgres database through GORM.
// The unique composite index on (shift_id, talent_id) is the storage-level
// backstop against concurrent double invites: racing auto-fills both pass the
// stale exclusion read, but the second bulk insert fails on the index.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore opens the database and migrates the three tables.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&shiftRow{}, &profileRow{}, &assignmentRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) CreateShift(ctx context.Context, shift model.Shift) (model.Shift, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreWriteLatency(msSince(start)) }()

	if err := shift.Validate(); err != nil {
		return model.Shift{}, err
	}
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	if shift.CreatedAt.IsZero() {
		shift.CreatedAt = time.Now()
	}

	row := shiftRowFrom(shift)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Shift{}, fmt.Errorf("create shift: %w", err)
	}
	return shift, nil
}

func (s *PostgresStore) GetShift(ctx context.Context, id string) (model.Shift, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	var row shiftRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shift{}, ErrShiftNotFound
	}
	if err != nil {
		return model.Shift{}, fmt.Errorf("get shift: %w", err)
	}
	return row.toModel(), nil
}

func (s *PostgresStore) ListShifts(ctx context.Context, limit int) ([]model.Shift, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	q := s.db.WithContext(ctx).Order("created_at")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []shiftRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	out := make([]model.Shift, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}

func (s *PostgresStore) CreateProfile(ctx context.Context, profile model.TalentProfile) (model.TalentProfile, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreWriteLatency(msSince(start)) }()

	if err := profile.Validate(); err != nil {
		return model.TalentProfile{}, err
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}

	row := profileRowFrom(profile)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.TalentProfile{}, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

func (s *PostgresStore) GetProfile(ctx context.Context, id string) (model.TalentProfile, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	var row profileRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.TalentProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return model.TalentProfile{}, fmt.Errorf("get profile: %w", err)
	}
	return row.toModel(), nil
}

func (s *PostgresStore) Candidates(ctx context.Context, q CandidateQuery) ([]model.TalentProfile, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	if q.Limit <= 0 {
		return nil, ErrInvalidQuery
	}

	query := s.db.WithContext(ctx).
		Where("available_now = ?", true).
		Where("min_hourly_rate <= ?", q.MaxHourlyRate).
		Order("rating DESC, completed_shifts DESC").
		Limit(q.Limit)

	if len(q.Exclude) > 0 {
		ids := make([]string, 0, len(q.Exclude))
		for id := range q.Exclude {
			ids = append(ids, id)
		}
		query = query.Where("id NOT IN ?", ids)
	}

	var rows []profileRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	out := make([]model.TalentProfile, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}

func (s *PostgresStore) TalentIDsForShift(ctx context.Context, shiftID string) (map[string]struct{}, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	var ids []string
	err := s.db.WithContext(ctx).
		Model(&assignmentRow{}).
		Where("shift_id = ?", shiftID).
		Pluck("talent_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load exclusion set: %w", err)
	}
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func (s *PostgresStore) CreateAssignments(ctx context.Context, assignments []model.Assignment) ([]model.Assignment, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreWriteLatency(msSince(start)) }()

	if len(assignments) == 0 {
		return nil, nil
	}

	rows := make([]assignmentRow, len(assignments))
	created := make([]model.Assignment, len(assignments))
	for i, a := range assignments {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now()
		}
		rows[i] = assignmentRow{
			ID:        a.ID,
			ShiftID:   a.ShiftID,
			TalentID:  a.TalentID,
			Status:    string(a.Status),
			CreatedAt: a.CreatedAt,
		}
		created[i] = a
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateAssignment
	}
	if err != nil {
		return nil, fmt.Errorf("create assignments: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) ListAssignments(ctx context.Context, shiftID string) ([]model.Assignment, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	var rows []assignmentRow
	err := s.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	out := make([]model.Assignment, len(rows))
	for i, row := range rows {
		out[i] = model.Assignment{
			ID:        row.ID,
			ShiftID:   row.ShiftID,
			TalentID:  row.TalentID,
			Status:    model.AssignmentStatus(row.Status),
			CreatedAt: row.CreatedAt,
		}
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) Counts {
	var shifts, profiles, assignments int64
	s.db.WithContext(ctx).Model(&shiftRow{}).Count(&shifts)
	s.db.WithContext(ctx).Model(&profileRow{}).Count(&profiles)
	s.db.WithContext(ctx).Model(&assignmentRow{}).Count(&assignments)
	return Counts{
		Shifts:      int(shifts),
		Profiles:    int(profiles),
		Assignments: int(assignments),
	}
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql db: %w", err)
	}
	return sqlDB.Close()
}

func shiftRowFrom(s model.Shift) shiftRow {
	return shiftRow{
		ID:            s.ID,
		BusinessID:    s.BusinessID,
		RoleType:      string(s.RoleType),
		HourlyRate:    s.HourlyRate,
		WorkersNeeded: s.WorkersNeeded,
		Location:      s.Location,
		StartsAt:      s.StartsAt,
		EndsAt:        s.EndsAt,
		CreatedAt:     s.CreatedAt,
	}
}

func (r shiftRow) toModel() model.Shift {
	return model.Shift{
		ID:            r.ID,
		BusinessID:    r.BusinessID,
		RoleType:      model.RoleType(r.RoleType),
		HourlyRate:    r.HourlyRate,
		WorkersNeeded: r.WorkersNeeded,
		Location:      r.Location,
		StartsAt:      r.StartsAt,
		EndsAt:        r.EndsAt,
		CreatedAt:     r.CreatedAt,
	}
}

func profileRowFrom(p model.TalentProfile) profileRow {
	return profileRow{
		ID:              p.ID,
		DisplayName:     p.DisplayName,
		AvailableNow:    p.AvailableNow,
		MinHourlyRate:   p.MinHourlyRate,
		Rating:          p.Rating,
		CompletedShifts: p.CompletedShifts,
		Skills:          p.Skills,
		CreatedAt:       p.CreatedAt,
	}
}

func (r profileRow) toModel() model.TalentProfile {
	return model.TalentProfile{
		ID:              r.ID,
		DisplayName:     r.DisplayName,
		AvailableNow:    r.AvailableNow,
		MinHourlyRate:   r.MinHourlyRate,
		Rating:          r.Rating,
		CompletedShifts: r.CompletedShifts,
		Skills:          r.Skills,
		CreatedAt:       r.CreatedAt,
	}
}
