package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yerk0w/EduLifeFor-merge/internal/auth/model"
)

// ── teachers ──

// TeacherFilters optional filters of TeacherRepository.List
type TeacherFilters struct {
	DepartmentID uint
	UserID       uint
}

// TeacherRepository teachers and their subject links
type TeacherRepository interface {
	Create(ctx context.Context, t *model.Teacher) error
	GetByID(ctx context.Context, id uint) (*model.Teacher, error)
	GetByUserID(ctx context.Context, userID uint) (*model.Teacher, error)
	List(ctx context.Context, filters *TeacherFilters) ([]model.Teacher, error)
	Update(ctx context.Context, t *model.Teacher) error
	// Delete removes the teacher and its subject links
	Delete(ctx context.Context, id uint) error
	ReplaceSubjects(ctx context.Context, teacherID uint, subjectIDs []uint) error
}

type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo creates a TeacherRepository
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User.Profile").
		Preload("Department").
		Preload("Subjects", func(db *gorm.DB) *gorm.DB {
			return db.Order("subjects.name ASC")
		})
}

func (r *teacherRepo) Create(ctx context.Context, t *model.Teacher) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error
}

func (r *teacherRepo) GetByID(ctx context.Context, id uint) (*model.Teacher, error) {
	var t model.Teacher
	if err := r.preloaded(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *teacherRepo) GetByUserID(ctx context.Context, userID uint) (*model.Teacher, error) {
	var t model.Teacher
	if err := r.preloaded(ctx).Where("user_id = ?", userID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *teacherRepo) List(ctx context.Context, filters *TeacherFilters) ([]model.Teacher, error) {
	var list []model.Teacher
	db := r.preloaded(ctx)
	if filters != nil {
		if filters.DepartmentID != 0 {
			db = db.Where("department_id = ?", filters.DepartmentID)
		}
		if filters.UserID != 0 {
			db = db.Where("user_id = ?", filters.UserID)
		}
	}
	err := db.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *teacherRepo) Update(ctx context.Context, t *model.Teacher) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error
}

func (r *teacherRepo) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Where("teacher_id = ?", id).Delete(&model.TeacherSubject{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.Teacher{}, id).Error
}

func (r *teacherRepo) ReplaceSubjects(ctx context.Context, teacherID uint, subjectIDs []uint) error {
	if err := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID).Delete(&model.TeacherSubject{}).Error; err != nil {
		return err
	}
	if len(subjectIDs) == 0 {
		return nil
	}
	links := make([]model.TeacherSubject, 0, len(subjectIDs))
	for _, sid := range subjectIDs {
		links = append(links, model.TeacherSubject{TeacherID: teacherID, SubjectID: sid})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

// ── students ──

// StudentFilters optional filters of StudentRepository.List
type StudentFilters struct {
	GroupID uint
	UserID  uint
}

// StudentRepository students
type StudentRepository interface {
	Create(ctx context.Context, s *model.Student) error
	GetByID(ctx context.Context, id uint) (*model.Student, error)
	GetByUserID(ctx context.Context, userID uint) (*model.Student, error)
	GetByNumber(ctx context.Context, number string) (*model.Student, error)
	List(ctx context.Context, filters *StudentFilters) ([]model.Student, error)
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, id uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo creates a StudentRepository
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User.Profile").
		Preload("Group.Faculty")
}

func (r *studentRepo) Create(ctx context.Context, s *model.Student) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id uint) (*model.Student, error) {
	var s model.Student
	if err := r.preloaded(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepo) GetByUserID(ctx context.Context, userID uint) (*model.Student, error) {
	var s model.Student
	if err := r.preloaded(ctx).Where("user_id = ?", userID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepo) GetByNumber(ctx context.Context, number string) (*model.Student, error) {
	var s model.Student
	if err := r.db.WithContext(ctx).Where("student_number = ?", number).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepo) List(ctx context.Context, filters *StudentFilters) ([]model.Student, error) {
	var list []model.Student
	db := r.preloaded(ctx)
	if filters != nil {
		if filters.GroupID != 0 {
			db = db.Where("group_id = ?", filters.GroupID)
		}
		if filters.UserID != 0 {
			db = db.Where("user_id = ?", filters.UserID)
		}
	}
	err := db.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *studentRepo) Update(ctx context.Context, s *model.Student) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

func (r *studentRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Student{}, id).Error
}

func (r *studentRepo) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Student{}).Error
}
