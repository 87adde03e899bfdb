package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/keys/model"
)

// TransferFilter optional List conditions; zero values are ignored
type TransferFilter struct {
	Status        string
	FromTeacherID uint
	ToTeacherID   uint
	Limit         int
}

// TransferRepository key transfer requests
type TransferRepository interface {
	Create(ctx context.Context, t *model.KeyTransfer) error
	GetByID(ctx context.Context, id uint) (*model.KeyTransfer, error)
	HasPending(ctx context.Context, keyID uint) (bool, error)
	// List newest first
	List(ctx context.Context, f TransferFilter) ([]model.KeyTransfer, error)
	// Finish moves a pending transfer to status; gorm.ErrRecordNotFound when
	// it is no longer pending
	Finish(ctx context.Context, id uint, status string, at time.Time, notes string) error

	StatusCounts(ctx context.Context) ([]model.CountRow, error)
	// ApprovedSince completion times of transfers approved at or after since
	ApprovedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

type transferRepo struct {
	db *gorm.DB
}

// NewTransferRepo creates a TransferRepository
func NewTransferRepo(db *gorm.DB) TransferRepository {
	return &transferRepo{db: db}
}

func (r *transferRepo) Create(ctx context.Context, t *model.KeyTransfer) error {
	return r.db.WithContext(ctx).Omit("Key").Create(t).Error
}

func (r *transferRepo) GetByID(ctx context.Context, id uint) (*model.KeyTransfer, error) {
	var t model.KeyTransfer
	if err := r.db.WithContext(ctx).Preload("Key").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transferRepo) HasPending(ctx context.Context, keyID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.KeyTransfer{}).
		Where("key_id = ? AND status = ?", keyID, model.TransferPending).
		Count(&n).Error
	return n > 0, err
}

func (r *transferRepo) List(ctx context.Context, f TransferFilter) ([]model.KeyTransfer, error) {
	query := r.db.WithContext(ctx).Model(&model.KeyTransfer{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.FromTeacherID != 0 {
		query = query.Where("from_teacher_id = ?", f.FromTeacherID)
	}
	if f.ToTeacherID != 0 {
		query = query.Where("to_teacher_id = ?", f.ToTeacherID)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var list []model.KeyTransfer
	err := query.Preload("Key").
		Order("requested_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *transferRepo) Finish(ctx context.Context, id uint, status string, at time.Time, notes string) error {
	res := r.db.WithContext(ctx).Model(&model.KeyTransfer{}).
		Where("id = ? AND status = ?", id, model.TransferPending).
		Updates(map[string]interface{}{
			"status":       status,
			"completed_at": at,
			"notes":        notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ────────────────────── stats ──────────────────────

func (r *transferRepo) StatusCounts(ctx context.Context) ([]model.CountRow, error) {
	var rows []model.CountRow
	err := r.db.WithContext(ctx).Model(&model.KeyTransfer{}).
		Select("status AS label, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *transferRepo) ApprovedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var list []model.KeyTransfer
	err := r.db.WithContext(ctx).
		Select("completed_at").
		Where("status = ? AND completed_at >= ?", model.TransferApproved, since).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	times := make([]time.Time, 0, len(list))
	for _, t := range list {
		if t.CompletedAt != nil {
			times = append(times, *t.CompletedAt)
		}
	}
	return times, nil
}
