package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/qr/model"
)

// StatsRange optional session_time bounds, From inclusive and To exclusive
type StatsRange struct {
	From *time.Time
	To   *time.Time
}

// SessionRepository attendance sessions
type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	// ListByUser newest first
	ListByUser(ctx context.Context, userID uint) ([]model.Session, error)
	// Stats counts sessions per subject, shift, teacher and weekday, busiest first
	Stats(ctx context.Context, rng StatsRange) ([]model.AttendanceStat, error)
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo creates a SessionRepository
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID uint) ([]model.Session, error) {
	var list []model.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("session_time DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *sessionRepo) Stats(ctx context.Context, rng StatsRange) ([]model.AttendanceStat, error) {
	query := r.db.WithContext(ctx).Model(&model.Session{}).
		Select("subject_id, shift_id, teacher_id, day_of_week, COUNT(*) AS attendance_count")
	if rng.From != nil {
		query = query.Where("session_time >= ?", *rng.From)
	}
	if rng.To != nil {
		query = query.Where("session_time < ?", *rng.To)
	}

	var rows []model.AttendanceStat
	err := query.
		Group("subject_id, shift_id, teacher_id, day_of_week").
		Order("attendance_count DESC, subject_id, shift_id, teacher_id, day_of_week").
		Scan(&rows).Error
	return rows, err
}
