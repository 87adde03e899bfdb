package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yerk0w/EduLifeFor-merge/internal/document/model"
)

// RegistrationRepository registration requests
type RegistrationRepository interface {
	Create(ctx context.Context, req *model.RegistrationRequest) error
	GetByID(ctx context.Context, id uint) (*model.RegistrationRequest, error)
	// List newest first; an empty status lists everything
	List(ctx context.Context, status string) ([]model.RegistrationRequest, error)
	HasPending(ctx context.Context, userID uint) (bool, error)
	Update(ctx context.Context, req *model.RegistrationRequest) error
}

type registrationRepo struct {
	db *gorm.DB
}

// NewRegistrationRepo creates a RegistrationRepository
func NewRegistrationRepo(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) Create(ctx context.Context, req *model.RegistrationRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error
}

func (r *registrationRepo) GetByID(ctx context.Context, id uint) (*model.RegistrationRequest, error) {
	var req model.RegistrationRequest
	if err := r.db.WithContext(ctx).Preload("User").First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *registrationRepo) List(ctx context.Context, status string) ([]model.RegistrationRequest, error) {
	query := r.db.WithContext(ctx).Preload("User")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var list []model.RegistrationRequest
	err := query.Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *registrationRepo) HasPending(ctx context.Context, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RegistrationRequest{}).
		Where("user_id = ? AND status = ?", userID, model.StatusPending).
		Count(&n).Error
	return n > 0, err
}

func (r *registrationRepo) Update(ctx context.Context, req *model.RegistrationRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(req).Error
}
