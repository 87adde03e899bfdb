package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/keys/model"
)

// AssignmentRepository key holders
type AssignmentRepository interface {
	Create(ctx context.Context, a *model.KeyAssignment) error
	// Active the current holder of keyID, gorm.ErrRecordNotFound when nobody holds it
	Active(ctx context.Context, keyID uint) (*model.KeyAssignment, error)
	Deactivate(ctx context.Context, keyID uint) error
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo creates an AssignmentRepository
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, a *model.KeyAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assignmentRepo) Active(ctx context.Context, keyID uint) (*model.KeyAssignment, error) {
	var a model.KeyAssignment
	err := r.db.WithContext(ctx).
		Where("key_id = ? AND is_active = ?", keyID, true).
		Take(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) Deactivate(ctx context.Context, keyID uint) error {
	return r.db.WithContext(ctx).Model(&model.KeyAssignment{}).
		Where("key_id = ? AND is_active = ?", keyID, true).
		Update("is_active", false).Error
}
