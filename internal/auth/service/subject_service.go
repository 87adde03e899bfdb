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

// SubjectService subjects taught by teachers
type SubjectService interface {
	Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SubjectResponse, error)
	List(ctx context.Context) ([]dto.SubjectResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, id uint) error
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService creates a SubjectService
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

func (s *subjectService) Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.checkName(ctx, name); err != nil {
		return nil, err
	}
	subject := &model.Subject{Name: name, Description: req.Description}
	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("create subject failed", zap.Error(err))
		return nil, err
	}
	resp := toSubjectResponse(subject)
	return &resp, nil
}

func (s *subjectService) GetByID(ctx context.Context, id uint) (*dto.SubjectResponse, error) {
	subject, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toSubjectResponse(subject)
	return &resp, nil
}

func (s *subjectService) List(ctx context.Context) ([]dto.SubjectResponse, error) {
	list, err := s.repo.Subject.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.SubjectResponse, 0, len(list))
	for i := range list {
		result = append(result, toSubjectResponse(&list[i]))
	}
	return result, nil
}

func (s *subjectService) Update(ctx context.Context, id uint, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != subject.Name {
			if err := s.checkName(ctx, name); err != nil {
				return nil, err
			}
			subject.Name = name
		}
	}
	if req.Description != nil {
		subject.Description = *req.Description
	}
	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		s.logger.Error("update subject failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toSubjectResponse(subject)
	return &resp, nil
}

func (s *subjectService) Delete(ctx context.Context, id uint) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	return s.repo.Subject.Delete(ctx, id)
}

func (s *subjectService) load(ctx context.Context, id uint) (*model.Subject, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) checkName(ctx context.Context, name string) error {
	_, err := s.repo.Subject.GetByName(ctx, name)
	if err == nil {
		return ErrSubjectNameExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
