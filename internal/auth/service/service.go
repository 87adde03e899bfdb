package service

import (
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
)

// Service aggregates every auth service
type Service struct {
	Auth       AuthService
	User       UserService
	Faculty    FacultyService
	Department DepartmentService
	Group      GroupService
	Subject    SubjectService
	Teacher    TeacherService
	Student    StudentService
}

// NewService wires the aggregate. blacklist may be nil.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		User:       NewUserService(repo, logger),
		Faculty:    NewFacultyService(repo, logger),
		Department: NewDepartmentService(repo, logger),
		Group:      NewGroupService(repo, logger),
		Subject:    NewSubjectService(repo, logger),
		Teacher:    NewTeacherService(repo, logger),
		Student:    NewStudentService(repo, logger),
	}
}
