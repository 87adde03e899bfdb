package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/auth/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/repository"
)

// DepartmentService departments
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.DepartmentResponse, error)
	List(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id uint) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService creates a DepartmentService
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.checkName(ctx, name); err != nil {
		return nil, err
	}
	if err := s.checkFaculty(ctx, req.FacultyID); err != nil {
		return nil, err
	}
	if req.HeadTeacherID != nil {
		if err := s.checkTeacher(ctx, *req.HeadTeacherID); err != nil {
			return nil, err
		}
	}

	d := &model.Department{
		Name:          name,
		FacultyID:     req.FacultyID,
		HeadTeacherID: req.HeadTeacherID,
	}
	if err := s.repo.Department.Create(ctx, d); err != nil {
		s.logger.Error("create department failed", zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, d.ID)
}

// ────────────────────── Read ──────────────────────

func (s *departmentService) GetByID(ctx context.Context, id uint) (*dto.DepartmentResponse, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDepartmentResponse(d), nil
}

func (s *departmentService) List(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentResponse, error) {
	list, err := s.repo.Department.List(ctx, req.FacultyID)
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.DepartmentResponse, 0, len(list))
	for i := range list {
		result = append(result, *toDepartmentResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *departmentService) Update(ctx context.Context, id uint, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != d.Name {
			if err := s.checkName(ctx, name); err != nil {
				return nil, err
			}
			d.Name = name
		}
	}
	if req.FacultyID != nil && *req.FacultyID != d.FacultyID {
		if err := s.checkFaculty(ctx, *req.FacultyID); err != nil {
			return nil, err
		}
		d.FacultyID = *req.FacultyID
	}
	if req.HeadTeacherID != nil {
		if *req.HeadTeacherID == 0 {
			d.HeadTeacherID = nil
		} else {
			if err := s.checkTeacher(ctx, *req.HeadTeacherID); err != nil {
				return nil, err
			}
			head := *req.HeadTeacherID
			d.HeadTeacherID = &head
		}
	}

	if err := s.repo.Department.Update(ctx, d); err != nil {
		s.logger.Error("update department failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *departmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.Department.CountTeachers(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDepartmentInUse
	}

	if err := s.repo.Department.Delete(ctx, id); err != nil {
		s.logger.Error("delete department failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *departmentService) load(ctx context.Context, id uint) (*model.Department, error) {
	d, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *departmentService) checkName(ctx context.Context, name string) error {
	_, err := s.repo.Department.GetByName(ctx, name)
	if err == nil {
		return ErrDepartmentNameExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *departmentService) checkFaculty(ctx context.Context, id uint) error {
	if _, err := s.repo.Faculty.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFacultyNotFound
		}
		return err
	}
	return nil
}

func (s *departmentService) checkTeacher(ctx context.Context, id uint) error {
	if _, err := s.repo.Teacher.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}
	return nil
}
