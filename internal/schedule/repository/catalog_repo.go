package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/model"
)

// ── subjects ──

// SubjectRepository subjects
type SubjectRepository interface {
	Create(ctx context.Context, s *model.Subject) error
	GetByID(ctx context.Context, id uint) (*model.Subject, error)
	GetByName(ctx context.Context, name string) (*model.Subject, error)
	List(ctx context.Context) ([]model.Subject, error)
	Update(ctx context.Context, s *model.Subject) error
	Delete(ctx context.Context, id uint) error
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo creates a SubjectRepository
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) Create(ctx context.Context, s *model.Subject) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *subjectRepo) GetByID(ctx context.Context, id uint) (*model.Subject, error) {
	var s model.Subject
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subjectRepo) GetByName(ctx context.Context, name string) (*model.Subject, error) {
	var s model.Subject
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subjectRepo) List(ctx context.Context) ([]model.Subject, error) {
	var list []model.Subject
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *subjectRepo) Update(ctx context.Context, s *model.Subject) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *subjectRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Subject{}, id).Error
}

// ── classrooms ──

// ClassroomRepository classrooms
type ClassroomRepository interface {
	Create(ctx context.Context, c *model.Classroom) error
	GetByID(ctx context.Context, id uint) (*model.Classroom, error)
	GetByName(ctx context.Context, name string) (*model.Classroom, error)
	List(ctx context.Context) ([]model.Classroom, error)
	Update(ctx context.Context, c *model.Classroom) error
	Delete(ctx context.Context, id uint) error
}

type classroomRepo struct {
	db *gorm.DB
}

// NewClassroomRepo creates a ClassroomRepository
func NewClassroomRepo(db *gorm.DB) ClassroomRepository {
	return &classroomRepo{db: db}
}

func (r *classroomRepo) Create(ctx context.Context, c *model.Classroom) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *classroomRepo) GetByID(ctx context.Context, id uint) (*model.Classroom, error) {
	var c model.Classroom
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *classroomRepo) GetByName(ctx context.Context, name string) (*model.Classroom, error) {
	var c model.Classroom
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *classroomRepo) List(ctx context.Context) ([]model.Classroom, error) {
	var list []model.Classroom
	err := r.db.WithContext(ctx).Order("building ASC, name ASC").Find(&list).Error
	return list, err
}

func (r *classroomRepo) Update(ctx context.Context, c *model.Classroom) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *classroomRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Classroom{}, id).Error
}

// ── lesson types ──

// LessonTypeRepository read-only lesson types
type LessonTypeRepository interface {
	GetByID(ctx context.Context, id uint) (*model.LessonType, error)
	List(ctx context.Context) ([]model.LessonType, error)
}

type lessonTypeRepo struct {
	db *gorm.DB
}

// NewLessonTypeRepo creates a LessonTypeRepository
func NewLessonTypeRepo(db *gorm.DB) LessonTypeRepository {
	return &lessonTypeRepo{db: db}
}

func (r *lessonTypeRepo) GetByID(ctx context.Context, id uint) (*model.LessonType, error) {
	var lt model.LessonType
	if err := r.db.WithContext(ctx).First(&lt, id).Error; err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *lessonTypeRepo) List(ctx context.Context) ([]model.LessonType, error) {
	var list []model.LessonType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error
	return list, err
}
