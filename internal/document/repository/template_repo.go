package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/document/model"
)

// TemplateAudience restricts List to one audience
type TemplateAudience int

const (
	AudienceAll TemplateAudience = iota
	AudienceStudents
	AudienceTeachers
)

// TemplateRepository document templates
type TemplateRepository interface {
	Create(ctx context.Context, t *model.Template) error
	GetByID(ctx context.Context, id uint) (*model.Template, error)
	List(ctx context.Context, audience TemplateAudience) ([]model.Template, error)
	Update(ctx context.Context, t *model.Template) error
	Delete(ctx context.Context, id uint) error
}

type templateRepo struct {
	db *gorm.DB
}

// NewTemplateRepo creates a TemplateRepository
func NewTemplateRepo(db *gorm.DB) TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) Create(ctx context.Context, t *model.Template) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *templateRepo) GetByID(ctx context.Context, id uint) (*model.Template, error) {
	var t model.Template
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *templateRepo) List(ctx context.Context, audience TemplateAudience) ([]model.Template, error) {
	query := r.db.WithContext(ctx)
	switch audience {
	case AudienceStudents:
		query = query.Where("available_for_students = ?", true)
	case AudienceTeachers:
		query = query.Where("available_for_teachers = ?", true)
	}
	var list []model.Template
	err := query.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *templateRepo) Update(ctx context.Context, t *model.Template) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *templateRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Template{}, id).Error
}
