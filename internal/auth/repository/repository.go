package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every auth repository
type Repository struct {
	db *gorm.DB

	Role       RoleRepository
	User       UserRepository
	Profile    ProfileRepository
	Faculty    FacultyRepository
	Department DepartmentRepository
	Group      GroupRepository
	Teacher    TeacherRepository
	Student    StudentRepository
	Subject    SubjectRepository
}

// NewRepository creates the aggregate
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		Role:       NewRoleRepo(db),
		User:       NewUserRepo(db),
		Profile:    NewProfileRepo(db),
		Faculty:    NewFacultyRepo(db),
		Department: NewDepartmentRepo(db),
		Group:      NewGroupRepo(db),
		Teacher:    NewTeacherRepo(db),
		Student:    NewStudentRepo(db),
		Subject:    NewSubjectRepo(db),
	}
}

// Transaction runs fn with repositories bound to a single transaction.
// An aggregate assembled by hand without a db runs fn directly.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
