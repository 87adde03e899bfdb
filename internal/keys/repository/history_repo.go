package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/keys/model"
)

// HistoryRepository key movements
type HistoryRepository interface {
	Create(ctx context.Context, h *model.KeyHistory) error
	// ListByKey, ListByTeacher and List return newest first
	ListByKey(ctx context.Context, keyID uint) ([]model.KeyHistory, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]model.KeyHistory, error)
	// List a page of the whole history; limit < 0 means no limit
	List(ctx context.Context, limit, offset int) ([]model.KeyHistory, int64, error)

	ActionCounts(ctx context.Context) ([]model.CountRow, error)
	// TopTeachers teachers appearing on either side of the most rows
	TopTeachers(ctx context.Context, limit int) ([]model.TeacherActivity, error)
	// TopKeys keys with the most transfer rows
	TopKeys(ctx context.Context, limit int) ([]model.KeyTransferCount, error)
}

type historyRepo struct {
	db *gorm.DB
}

// NewHistoryRepo creates a HistoryRepository
func NewHistoryRepo(db *gorm.DB) HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Create(ctx context.Context, h *model.KeyHistory) error {
	return r.db.WithContext(ctx).Omit("Key").Create(h).Error
}

func (r *historyRepo) newest(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Key").Order("timestamp DESC, id DESC")
}

func (r *historyRepo) ListByKey(ctx context.Context, keyID uint) ([]model.KeyHistory, error) {
	var list []model.KeyHistory
	err := r.newest(ctx).Where("key_id = ?", keyID).Find(&list).Error
	return list, err
}

func (r *historyRepo) ListByTeacher(ctx context.Context, teacherID uint) ([]model.KeyHistory, error) {
	var list []model.KeyHistory
	err := r.newest(ctx).
		Where("from_teacher_id = ? OR to_teacher_id = ?", teacherID, teacherID).
		Find(&list).Error
	return list, err
}

func (r *historyRepo) List(ctx context.Context, limit, offset int) ([]model.KeyHistory, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.KeyHistory{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.KeyHistory
	err := r.newest(ctx).Offset(offset).Limit(limit).Find(&list).Error
	return list, total, err
}

// ────────────────────── stats ──────────────────────

func (r *historyRepo) ActionCounts(ctx context.Context) ([]model.CountRow, error) {
	var rows []model.CountRow
	err := r.db.WithContext(ctx).Model(&model.KeyHistory{}).
		Select("action AS label, COUNT(*) AS count").
		Group("action").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *historyRepo) TopTeachers(ctx context.Context, limit int) ([]model.TeacherActivity, error) {
	var rows []model.TeacherActivity
	err := r.db.WithContext(ctx).Raw(`
		SELECT teacher_id, COUNT(*) AS count FROM (
			SELECT from_teacher_id AS teacher_id FROM key_history WHERE from_teacher_id IS NOT NULL
			UNION ALL
			SELECT to_teacher_id AS teacher_id FROM key_history WHERE to_teacher_id IS NOT NULL
		)
		GROUP BY teacher_id
		ORDER BY count DESC, teacher_id
		LIMIT ?`, limit).
		Scan(&rows).Error
	return rows, err
}

func (r *historyRepo) TopKeys(ctx context.Context, limit int) ([]model.KeyTransferCount, error) {
	var rows []model.KeyTransferCount
	err := r.db.WithContext(ctx).Table("key_history kh").
		Select("k.id, k.key_code, k.room_number, k.building, COUNT(*) AS transfer_count").
		Joins("JOIN keys k ON k.id = kh.key_id").
		Where("kh.action = ?", model.ActionTransfer).
		Group("k.id, k.key_code, k.room_number, k.building").
		Order("transfer_count DESC, k.id").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
