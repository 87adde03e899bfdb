package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yerk0w/EduLifeFor-merge/internal/document/model"
)

// DocumentFilters optional filters of List. VisibleTo limits the result to
// documents the user authored or received.
type DocumentFilters struct {
	VisibleTo      uint
	AuthorID       uint
	Status         string
	TemplateType   string
	FacultyName    string
	DepartmentName string
	GroupName      string
}

// Count one group of a breakdown
type Count struct {
	Label string
	Total int64
}

// DocumentRepository documents
type DocumentRepository interface {
	Create(ctx context.Context, d *model.Document) error
	GetByID(ctx context.Context, id uint) (*model.Document, error)
	// List newest first with the author preloaded
	List(ctx context.Context, f *DocumentFilters, offset, limit int) ([]model.Document, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Count(ctx context.Context) (int64, error)
	// CountBy groups documents by a documents column
	CountBy(ctx context.Context, column string) ([]Count, error)
	CountByFaculty(ctx context.Context) ([]Count, error)
}

type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepo creates a DocumentRepository
func NewDocumentRepo(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, d *model.Document) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error
}

func (r *documentRepo) GetByID(ctx context.Context, id uint) (*model.Document, error) {
	var d model.Document
	if err := r.db.WithContext(ctx).Preload("Author").First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepo) List(ctx context.Context, f *DocumentFilters, offset, limit int) ([]model.Document, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Document{})

	if f != nil {
		if f.VisibleTo != 0 {
			query = query.Where("documents.author_id = ? OR documents.recipient_id = ?", f.VisibleTo, f.VisibleTo)
		}
		if f.AuthorID != 0 {
			query = query.Where("documents.author_id = ?", f.AuthorID)
		}
		if f.Status != "" {
			query = query.Where("documents.status = ?", f.Status)
		}
		if f.TemplateType != "" {
			query = query.Where("documents.template_type = ?", f.TemplateType)
		}
		if f.FacultyName != "" || f.DepartmentName != "" || f.GroupName != "" {
			query = query.Joins("JOIN users ON users.id = documents.author_id")
			if f.FacultyName != "" {
				query = query.Where("users.faculty_name = ?", f.FacultyName)
			}
			if f.DepartmentName != "" {
				query = query.Where("users.department_name = ?", f.DepartmentName)
			}
			if f.GroupName != "" {
				query = query.Where("users.group_name = ?", f.GroupName)
			}
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Document
	err := query.Select("documents.*").Preload("Author").
		Order("documents.created_at DESC, documents.id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *documentRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&model.Document{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *documentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Document{}).Count(&n).Error
	return n, err
}

func (r *documentRepo) CountBy(ctx context.Context, column string) ([]Count, error) {
	var rows []Count
	err := r.db.WithContext(ctx).Model(&model.Document{}).
		Select(column + " AS label, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	return rows, err
}

func (r *documentRepo) CountByFaculty(ctx context.Context) ([]Count, error) {
	var rows []Count
	err := r.db.WithContext(ctx).Model(&model.Document{}).
		Select("COALESCE(users.faculty_name, '') AS label, COUNT(*) AS total").
		Joins("LEFT JOIN users ON users.id = documents.author_id").
		Group("users.faculty_name").
		Scan(&rows).Error
	return rows, err
}
