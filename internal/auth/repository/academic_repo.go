package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yerk0w/EduLifeFor-merge/internal/auth/model"
)

// ── faculties ──

// FacultyRepository faculties
type FacultyRepository interface {
	Create(ctx context.Context, f *model.Faculty) error
	GetByID(ctx context.Context, id uint) (*model.Faculty, error)
	GetByName(ctx context.Context, name string) (*model.Faculty, error)
	List(ctx context.Context) ([]model.Faculty, error)
	Update(ctx context.Context, f *model.Faculty) error
	Delete(ctx context.Context, id uint) error
	CountDependents(ctx context.Context, id uint) (departments int64, groups int64, err error)
}

type facultyRepo struct {
	db *gorm.DB
}

// NewFacultyRepo creates a FacultyRepository
func NewFacultyRepo(db *gorm.DB) FacultyRepository {
	return &facultyRepo{db: db}
}

func (r *facultyRepo) Create(ctx context.Context, f *model.Faculty) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *facultyRepo) GetByID(ctx context.Context, id uint) (*model.Faculty, error) {
	var f model.Faculty
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facultyRepo) GetByName(ctx context.Context, name string) (*model.Faculty, error) {
	var f model.Faculty
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facultyRepo) List(ctx context.Context) ([]model.Faculty, error) {
	var list []model.Faculty
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *facultyRepo) Update(ctx context.Context, f *model.Faculty) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *facultyRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Faculty{}, id).Error
}

func (r *facultyRepo) CountDependents(ctx context.Context, id uint) (int64, int64, error) {
	var departments, groups int64
	if err := r.db.WithContext(ctx).Model(&model.Department{}).Where("faculty_id = ?", id).Count(&departments).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Group{}).Where("faculty_id = ?", id).Count(&groups).Error; err != nil {
		return 0, 0, err
	}
	return departments, groups, nil
}

// ── departments ──

// DepartmentRepository departments
type DepartmentRepository interface {
	Create(ctx context.Context, d *model.Department) error
	GetByID(ctx context.Context, id uint) (*model.Department, error)
	GetByName(ctx context.Context, name string) (*model.Department, error)
	List(ctx context.Context, facultyID uint) ([]model.Department, error)
	Update(ctx context.Context, d *model.Department) error
	Delete(ctx context.Context, id uint) error
	CountTeachers(ctx context.Context, id uint) (int64, error)
	// ClearHeadTeacher unsets head_teacher_id wherever it points at teacherID
	ClearHeadTeacher(ctx context.Context, teacherID uint) error
}

type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo creates a DepartmentRepository
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Faculty").
		Preload("HeadTeacher.User")
}

func (r *departmentRepo) Create(ctx context.Context, d *model.Department) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error
}

func (r *departmentRepo) GetByID(ctx context.Context, id uint) (*model.Department, error) {
	var d model.Department
	if err := r.preloaded(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *departmentRepo) GetByName(ctx context.Context, name string) (*model.Department, error) {
	var d model.Department
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *departmentRepo) List(ctx context.Context, facultyID uint) ([]model.Department, error) {
	var list []model.Department
	db := r.preloaded(ctx)
	if facultyID != 0 {
		db = db.Where("faculty_id = ?", facultyID)
	}
	err := db.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *departmentRepo) Update(ctx context.Context, d *model.Department) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(d).Error
}

func (r *departmentRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Department{}, id).Error
}

func (r *departmentRepo) CountTeachers(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Teacher{}).Where("department_id = ?", id).Count(&count).Error
	return count, err
}

func (r *departmentRepo) ClearHeadTeacher(ctx context.Context, teacherID uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Department{}).
		Where("head_teacher_id = ?", teacherID).
		Update("head_teacher_id", nil).Error
}

// ── groups ──

// GroupRepository student groups
type GroupRepository interface {
	Create(ctx context.Context, g *model.Group) error
	GetByID(ctx context.Context, id uint) (*model.Group, error)
	GetByName(ctx context.Context, name string) (*model.Group, error)
	List(ctx context.Context, facultyID uint) ([]model.Group, error)
	Update(ctx context.Context, g *model.Group) error
	Delete(ctx context.Context, id uint) error
	CountStudents(ctx context.Context, id uint) (int64, error)
}

type groupRepo struct {
	db *gorm.DB
}

// NewGroupRepo creates a GroupRepository
func NewGroupRepo(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, g *model.Group) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(g).Error
}

func (r *groupRepo) GetByID(ctx context.Context, id uint) (*model.Group, error) {
	var g model.Group
	if err := r.db.WithContext(ctx).Preload("Faculty").First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepo) GetByName(ctx context.Context, name string) (*model.Group, error) {
	var g model.Group
	if err := r.db.WithContext(ctx).Preload("Faculty").Where("name = ?", name).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *groupRepo) List(ctx context.Context, facultyID uint) ([]model.Group, error) {
	var list []model.Group
	db := r.db.WithContext(ctx).Preload("Faculty")
	if facultyID != 0 {
		db = db.Where("faculty_id = ?", facultyID)
	}
	err := db.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *groupRepo) Update(ctx context.Context, g *model.Group) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(g).Error
}

func (r *groupRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Group{}, id).Error
}

func (r *groupRepo) CountStudents(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).Where("group_id = ?", id).Count(&count).Error
	return count, err
}

// ── subjects ──

// SubjectRepository subjects
type SubjectRepository interface {
	Create(ctx context.Context, s *model.Subject) error
	GetByID(ctx context.Context, id uint) (*model.Subject, error)
	GetByName(ctx context.Context, name string) (*model.Subject, error)
	List(ctx context.Context) ([]model.Subject, error)
	ListByIDs(ctx context.Context, ids []uint) ([]model.Subject, error)
	Update(ctx context.Context, s *model.Subject) error
	// Delete also drops the subject from every teacher
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

func (r *subjectRepo) ListByIDs(ctx context.Context, ids []uint) ([]model.Subject, error) {
	var list []model.Subject
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *subjectRepo) Update(ctx context.Context, s *model.Subject) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *subjectRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subject_id = ?", id).Delete(&model.TeacherSubject{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Subject{}, id).Error
	})
}
