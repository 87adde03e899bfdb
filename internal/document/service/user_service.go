package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/document/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// Identity what the access token says about the caller
type Identity struct {
	UserID   uint
	Username string
	Role     string
}

// UserService local mirrors of auth users
type UserService interface {
	// Sync makes sure the caller has a local mirror
	Sync(ctx context.Context, id Identity) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	dir    Directory
	logger *zap.Logger
}

// NewUserService creates a UserService. dir may be nil.
func NewUserService(repo *repository.Repository, dir Directory, logger *zap.Logger) UserService {
	return &userService{repo: repo, dir: dir, logger: logger}
}

func (s *userService) Sync(ctx context.Context, id Identity) (*model.User, error) {
	u, err := s.repo.User.GetByID(ctx, id.UserID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u = s.fromAuth(ctx, id)
	if err := s.repo.User.Create(ctx, u); err != nil {
		// a concurrent request may have created it first
		if existing, getErr := s.repo.User.GetByID(ctx, id.UserID); getErr == nil {
			return existing, nil
		}
		s.logger.Error("create user mirror failed", zap.Uint("user_id", id.UserID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("user mirror created", zap.Uint("user_id", u.ID), zap.String("role", u.Role))
	return u, nil
}

// CheckActive rejects mirrors still waiting for registration approval
func CheckActive(u *model.User) error {
	if !u.IsActive {
		return ErrAccountInactive
	}
	return nil
}

// fromAuth builds a mirror from auth, falling back to the token claims
func (s *userService) fromAuth(ctx context.Context, id Identity) *model.User {
	u := &model.User{
		ID:       id.UserID,
		Username: id.Username,
		FullName: id.Username,
		Role:     id.Role,
		IsActive: true,
	}
	if s.dir == nil {
		return u
	}

	info, err := s.dir.GetUser(ctx, id.UserID)
	if err != nil {
		s.logger.Warn("auth user lookup failed, using token claims", zap.Uint("user_id", id.UserID), zap.Error(err))
		return u
	}
	u.Username = info.Username
	u.Email = info.Email
	u.FullName = info.FullName
	u.Role = info.Role
	u.IsActive = !info.Disabled

	switch info.Role {
	case roles.Student:
		if st, err := s.dir.GetStudentByUser(ctx, id.UserID); err == nil {
			applyStudent(u, st)
		} else {
			s.logger.Warn("student lookup failed", zap.Uint("user_id", id.UserID), zap.Error(err))
		}
	case roles.Teacher:
		if t, err := s.dir.GetTeacherByUser(ctx, id.UserID); err == nil {
			applyTeacher(u, t)
		} else {
			s.logger.Warn("teacher lookup failed", zap.Uint("user_id", id.UserID), zap.Error(err))
		}
	}
	return u
}

func applyStudent(u *model.User, st *client.StudentInfo) {
	u.GroupName = st.GroupName
	u.FacultyName = st.FacultyName
	u.Telegram = st.Telegram
}

func applyTeacher(u *model.User, t *client.TeacherInfo) {
	u.DepartmentName = t.DepartmentName
	u.Position = t.Position
	u.Telegram = t.Telegram
}

func (s *userService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	u, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	resp := toUserResponse(u)
	return &resp, nil
}
