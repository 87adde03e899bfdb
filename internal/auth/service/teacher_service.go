package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/auth/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// TeacherService teacher records. Creating one promotes the user to the teacher role.
type TeacherService interface {
	List(ctx context.Context, req *dto.TeacherListRequest) ([]dto.TeacherResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.TeacherResponse, error)
	GetByUserID(ctx context.Context, userID uint) (*dto.TeacherResponse, error)
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, id uint) error
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService creates a TeacherService
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

func (s *teacherService) List(ctx context.Context, req *dto.TeacherListRequest) ([]dto.TeacherResponse, error) {
	list, err := s.repo.Teacher.List(ctx, &repository.TeacherFilters{
		DepartmentID: req.DepartmentID,
		UserID:       req.UserID,
	})
	if err != nil {
		s.logger.Error("list teachers failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TeacherResponse, 0, len(list))
	for i := range list {
		result = append(result, *toTeacherResponse(&list[i]))
	}
	return result, nil
}

func (s *teacherService) GetByID(ctx context.Context, id uint) (*dto.TeacherResponse, error) {
	t, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeacherErr(err)
	}
	return toTeacherResponse(t), nil
}

func (s *teacherService) GetByUserID(ctx context.Context, userID uint) (*dto.TeacherResponse, error) {
	t, err := s.repo.Teacher.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapTeacherErr(err)
	}
	return toTeacherResponse(t), nil
}

// ═══════════════════════════════════════════════════════════
// Create
// ═══════════════════════════════════════════════════════════
//
// 1. the user and department must exist
// 2. one teacher record per user
// 3. every subject id must exist
// 4. teacher row, subject links and role change are written together

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := s.checkDepartment(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	if _, err := s.repo.Teacher.GetByUserID(ctx, req.UserID); err == nil {
		return nil, ErrTeacherExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subjectIDs := dedupe(req.SubjectIDs)
	if err := s.checkSubjects(ctx, subjectIDs); err != nil {
		return nil, err
	}

	teacher := &model.Teacher{
		UserID:       req.UserID,
		DepartmentID: req.DepartmentID,
		Position:     req.Position,
		ContactInfo:  req.ContactInfo,
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Teacher.Create(ctx, teacher); err != nil {
			return err
		}
		if err := tx.Teacher.ReplaceSubjects(ctx, teacher.ID, subjectIDs); err != nil {
			return err
		}
		if user.RoleName() == roles.Admin {
			return nil
		}
		return setRole(ctx, tx, user, roles.Teacher)
	})
	if err != nil {
		s.logger.Error("create teacher failed", zap.Uint("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("teacher created", zap.Uint("teacher_id", teacher.ID), zap.Uint("user_id", req.UserID))
	return s.GetByID(ctx, teacher.ID)
}

// ────────────────────── Update ──────────────────────

func (s *teacherService) Update(ctx context.Context, id uint, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeacherErr(err)
	}

	if req.DepartmentID != nil && *req.DepartmentID != teacher.DepartmentID {
		if err := s.checkDepartment(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
		teacher.DepartmentID = *req.DepartmentID
		teacher.Department = nil
	}
	if req.Position != nil {
		teacher.Position = *req.Position
	}
	if req.ContactInfo != nil {
		teacher.ContactInfo = *req.ContactInfo
	}

	var subjectIDs []uint
	if req.SubjectIDs != nil {
		subjectIDs = dedupe(*req.SubjectIDs)
		if err := s.checkSubjects(ctx, subjectIDs); err != nil {
			return nil, err
		}
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Teacher.Update(ctx, teacher); err != nil {
			return err
		}
		if req.SubjectIDs != nil {
			return tx.Teacher.ReplaceSubjects(ctx, id, subjectIDs)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("update teacher failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

// Delete drops the teacher, clears department heads and demotes a non-admin user to student
func (s *teacherService) Delete(ctx context.Context, id uint) error {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		return mapTeacherErr(err)
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Department.ClearHeadTeacher(ctx, id); err != nil {
			return err
		}
		if err := tx.Teacher.Delete(ctx, id); err != nil {
			return err
		}

		user, err := tx.User.GetByID(ctx, teacher.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if user.RoleName() == roles.Admin {
			return nil
		}
		return setRole(ctx, tx, user, roles.Student)
	})
	if err != nil {
		s.logger.Error("delete teacher failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *teacherService) checkDepartment(ctx context.Context, id uint) error {
	if _, err := s.repo.Department.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return err
	}
	return nil
}

func (s *teacherService) checkSubjects(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.repo.Subject.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return ErrSubjectNotFound
	}
	return nil
}

func mapTeacherErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTeacherNotFound
	}
	return err
}

// setRole switches the user to the named role inside tx
func setRole(ctx context.Context, tx *repository.Repository, user *model.User, roleName string) error {
	if user.RoleName() == roleName {
		return nil
	}
	role, err := tx.Role.GetByName(ctx, roleName)
	if err != nil {
		return err
	}
	user.RoleID = role.ID
	user.Role = role
	return tx.User.Update(ctx, user)
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
