package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/qr/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	apperrors "github.com/yerk0w/EduLifeFor-merge/pkg/errors"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// ScheduleService a user's timetable, looked up by their role
type ScheduleService interface {
	ForUser(ctx context.Context, caller Caller, userID uint, q *dto.ScheduleQuery) (*dto.UserScheduleResponse, error)
}

type scheduleService struct {
	repo    *repository.Repository
	dir     Directory
	catalog Catalog
	logger  *zap.Logger
}

// NewScheduleService creates a ScheduleService. dir and catalog may be nil.
func NewScheduleService(repo *repository.Repository, dir Directory, catalog Catalog, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, dir: dir, catalog: catalog, logger: logger}
}

func (s *scheduleService) ForUser(ctx context.Context, caller Caller, userID uint, q *dto.ScheduleQuery) (*dto.UserScheduleResponse, error) {
	if err := checkSelf(caller, userID); err != nil {
		return nil, err
	}
	if s.dir == nil {
		return nil, ErrDirectoryDown
	}
	if s.catalog == nil {
		return nil, ErrScheduleDown
	}

	role, err := s.roleOf(ctx, caller, userID)
	if err != nil {
		return nil, err
	}

	f := client.ScheduleFilter{DateFrom: q.DateFrom, DateTo: q.DateTo}
	switch role {
	case roles.Teacher:
		t, err := s.dir.GetTeacherByUser(ctx, userID)
		if err != nil {
			return nil, s.profileErr(err, userID)
		}
		f.TeacherID = t.ID
	case roles.Student:
		st, err := s.dir.GetStudentByUser(ctx, userID)
		if err != nil {
			return nil, s.profileErr(err, userID)
		}
		if st.GroupID == 0 {
			return nil, ErrProfileNotFound
		}
		f.GroupID = st.GroupID
	default:
		return nil, ErrNoSchedule
	}

	entries, err := s.catalog.ListSchedule(ctx, f)
	if err != nil {
		s.logger.Warn("schedule lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrScheduleDown
	}
	if entries == nil {
		entries = []client.ScheduleEntry{}
	}
	return &dto.UserScheduleResponse{UserID: userID, Role: role, Schedule: entries}, nil
}

// roleOf the caller's own role comes from the token; anyone else's from the
// local mirror, then auth
func (s *scheduleService) roleOf(ctx context.Context, caller Caller, userID uint) (string, error) {
	if caller.ID == userID {
		return caller.Role, nil
	}
	u, err := s.repo.User.GetByID(ctx, userID)
	if err == nil && u.Role != "" {
		return u.Role, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	info, err := s.dir.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", ErrUserNotFound
		}
		s.logger.Warn("auth user lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return "", ErrDirectoryDown
	}
	return info.Role, nil
}

func (s *scheduleService) profileErr(err error, userID uint) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return ErrProfileNotFound
	}
	s.logger.Warn("auth profile lookup failed", zap.Uint("user_id", userID), zap.Error(err))
	return ErrDirectoryDown
}
