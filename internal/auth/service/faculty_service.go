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

// FacultyService faculties
type FacultyService interface {
	Create(ctx context.Context, req *dto.CreateFacultyRequest) (*dto.FacultyResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.FacultyResponse, error)
	List(ctx context.Context) ([]dto.FacultyResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateFacultyRequest) (*dto.FacultyResponse, error)
	Delete(ctx context.Context, id uint) error
}

type facultyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFacultyService creates a FacultyService
func NewFacultyService(repo *repository.Repository, logger *zap.Logger) FacultyService {
	return &facultyService{repo: repo, logger: logger}
}

func (s *facultyService) Create(ctx context.Context, req *dto.CreateFacultyRequest) (*dto.FacultyResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.checkName(ctx, name); err != nil {
		return nil, err
	}

	f := &model.Faculty{Name: name, Description: req.Description}
	if err := s.repo.Faculty.Create(ctx, f); err != nil {
		s.logger.Error("create faculty failed", zap.Error(err))
		return nil, err
	}
	return toFacultyResponse(f), nil
}

func (s *facultyService) GetByID(ctx context.Context, id uint) (*dto.FacultyResponse, error) {
	f, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFacultyResponse(f), nil
}

func (s *facultyService) List(ctx context.Context) ([]dto.FacultyResponse, error) {
	list, err := s.repo.Faculty.List(ctx)
	if err != nil {
		s.logger.Error("list faculties failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.FacultyResponse, 0, len(list))
	for i := range list {
		result = append(result, *toFacultyResponse(&list[i]))
	}
	return result, nil
}

func (s *facultyService) Update(ctx context.Context, id uint, req *dto.UpdateFacultyRequest) (*dto.FacultyResponse, error) {
	f, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != f.Name {
			if err := s.checkName(ctx, name); err != nil {
				return nil, err
			}
			f.Name = name
		}
	}
	if req.Description != nil {
		f.Description = *req.Description
	}

	if err := s.repo.Faculty.Update(ctx, f); err != nil {
		s.logger.Error("update faculty failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toFacultyResponse(f), nil
}

func (s *facultyService) Delete(ctx context.Context, id uint) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	departments, groups, err := s.repo.Faculty.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if departments > 0 || groups > 0 {
		return ErrFacultyInUse
	}

	return s.repo.Faculty.Delete(ctx, id)
}

func (s *facultyService) load(ctx context.Context, id uint) (*model.Faculty, error) {
	f, err := s.repo.Faculty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *facultyService) checkName(ctx context.Context, name string) error {
	_, err := s.repo.Faculty.GetByName(ctx, name)
	if err == nil {
		return ErrFacultyNameExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
