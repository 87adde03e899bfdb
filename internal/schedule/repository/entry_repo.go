package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/model"
)

// EntryFilters schedule query; zero values are ignored
type EntryFilters struct {
	Date        string
	DateFrom    string
	DateTo      string
	TeacherID   uint
	GroupID     uint
	ClassroomID uint
}

// EntryRepository schedule rows
type EntryRepository interface {
	Create(ctx context.Context, e *model.Entry) error
	GetByID(ctx context.Context, id uint) (*model.Entry, error)
	List(ctx context.Context, f *EntryFilters) ([]model.Entry, error)
	Update(ctx context.Context, e *model.Entry) error
	Delete(ctx context.Context, id uint) error
	CountBySubject(ctx context.Context, subjectID uint) (int64, error)
	CountByClassroom(ctx context.Context, classroomID uint) (int64, error)
	ExistsForTeacherGroup(ctx context.Context, teacherID, groupID uint) (bool, error)
}

type entryRepo struct {
	db *gorm.DB
}

// NewEntryRepo creates an EntryRepository
func NewEntryRepo(db *gorm.DB) EntryRepository {
	return &entryRepo{db: db}
}

func (r *entryRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Classroom").
		Preload("LessonType")
}

func (r *entryRepo) Create(ctx context.Context, e *model.Entry) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *entryRepo) GetByID(ctx context.Context, id uint) (*model.Entry, error) {
	var e model.Entry
	if err := r.preloaded(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entryRepo) List(ctx context.Context, f *EntryFilters) ([]model.Entry, error) {
	query := r.preloaded(ctx).Model(&model.Entry{})

	if f != nil {
		if f.Date != "" {
			query = query.Where("date = ?", f.Date)
		}
		if f.DateFrom != "" {
			query = query.Where("date >= ?", f.DateFrom)
		}
		if f.DateTo != "" {
			query = query.Where("date <= ?", f.DateTo)
		}
		if f.TeacherID != 0 {
			query = query.Where("teacher_id = ?", f.TeacherID)
		}
		if f.GroupID != 0 {
			query = query.Where("group_id = ?", f.GroupID)
		}
		if f.ClassroomID != 0 {
			query = query.Where("classroom_id = ?", f.ClassroomID)
		}
	}

	var list []model.Entry
	err := query.Order("date ASC, time_start ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *entryRepo) Update(ctx context.Context, e *model.Entry) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error
}

func (r *entryRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Entry{}, id).Error
}

func (r *entryRepo) CountBySubject(ctx context.Context, subjectID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Entry{}).Where("subject_id = ?", subjectID).Count(&n).Error
	return n, err
}

func (r *entryRepo) CountByClassroom(ctx context.Context, classroomID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Entry{}).Where("classroom_id = ?", classroomID).Count(&n).Error
	return n, err
}

func (r *entryRepo) ExistsForTeacherGroup(ctx context.Context, teacherID, groupID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Entry{}).
		Where("teacher_id = ? AND group_id = ?", teacherID, groupID).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}
