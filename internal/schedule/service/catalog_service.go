package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/repository"
)

// CatalogService subjects, classrooms and lesson types
type CatalogService interface {
	ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
	GetSubject(ctx context.Context, id uint) (*dto.SubjectResponse, error)
	CreateSubject(ctx context.Context, req *dto.SubjectRequest) (*dto.SubjectResponse, error)
	UpdateSubject(ctx context.Context, id uint, req *dto.SubjectRequest) (*dto.SubjectResponse, error)
	DeleteSubject(ctx context.Context, id uint) error

	ListClassrooms(ctx context.Context) ([]dto.ClassroomResponse, error)
	GetClassroom(ctx context.Context, id uint) (*dto.ClassroomResponse, error)
	CreateClassroom(ctx context.Context, req *dto.ClassroomRequest) (*dto.ClassroomResponse, error)
	UpdateClassroom(ctx context.Context, id uint, req *dto.ClassroomRequest) (*dto.ClassroomResponse, error)
	DeleteClassroom(ctx context.Context, id uint) error

	ListLessonTypes(ctx context.Context) ([]dto.LessonTypeResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService creates a CatalogService
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

// ────────────────────── Subjects ──────────────────────

func (s *catalogService) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
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

func (s *catalogService) GetSubject(ctx context.Context, id uint) (*dto.SubjectResponse, error) {
	subj, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrSubjectNotFound)
	}
	resp := toSubjectResponse(subj)
	return &resp, nil
}

func (s *catalogService) CreateSubject(ctx context.Context, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.subjectNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	subj := &model.Subject{Name: name, Description: req.Description}
	if err := s.repo.Subject.Create(ctx, subj); err != nil {
		s.logger.Error("create subject failed", zap.Error(err))
		return nil, err
	}
	resp := toSubjectResponse(subj)
	return &resp, nil
}

func (s *catalogService) UpdateSubject(ctx context.Context, id uint, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	subj, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrSubjectNotFound)
	}

	name := strings.TrimSpace(req.Name)
	if err := s.subjectNameFree(ctx, name, id); err != nil {
		return nil, err
	}
	subj.Name = name
	subj.Description = req.Description

	if err := s.repo.Subject.Update(ctx, subj); err != nil {
		s.logger.Error("update subject failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toSubjectResponse(subj)
	return &resp, nil
}

func (s *catalogService) DeleteSubject(ctx context.Context, id uint) error {
	if _, err := s.repo.Subject.GetByID(ctx, id); err != nil {
		return notFoundAs(err, ErrSubjectNotFound)
	}
	n, err := s.repo.Entry.CountBySubject(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrSubjectInUse
	}
	return s.repo.Subject.Delete(ctx, id)
}

func (s *catalogService) subjectNameFree(ctx context.Context, name string, self uint) error {
	existing, err := s.repo.Subject.GetByName(ctx, name)
	if err == nil && existing.ID != self {
		return ErrSubjectNameExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// ────────────────────── Classrooms ──────────────────────

func (s *catalogService) ListClassrooms(ctx context.Context) ([]dto.ClassroomResponse, error) {
	list, err := s.repo.Classroom.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ClassroomResponse, 0, len(list))
	for i := range list {
		result = append(result, toClassroomResponse(&list[i]))
	}
	return result, nil
}

func (s *catalogService) GetClassroom(ctx context.Context, id uint) (*dto.ClassroomResponse, error) {
	c, err := s.repo.Classroom.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrClassroomNotFound)
	}
	resp := toClassroomResponse(c)
	return &resp, nil
}

func (s *catalogService) CreateClassroom(ctx context.Context, req *dto.ClassroomRequest) (*dto.ClassroomResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.classroomNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	c := &model.Classroom{Name: name, Building: req.Building, Capacity: req.Capacity}
	if err := s.repo.Classroom.Create(ctx, c); err != nil {
		s.logger.Error("create classroom failed", zap.Error(err))
		return nil, err
	}
	resp := toClassroomResponse(c)
	return &resp, nil
}

func (s *catalogService) UpdateClassroom(ctx context.Context, id uint, req *dto.ClassroomRequest) (*dto.ClassroomResponse, error) {
	c, err := s.repo.Classroom.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrClassroomNotFound)
	}

	name := strings.TrimSpace(req.Name)
	if err := s.classroomNameFree(ctx, name, id); err != nil {
		return nil, err
	}
	c.Name = name
	c.Building = req.Building
	c.Capacity = req.Capacity

	if err := s.repo.Classroom.Update(ctx, c); err != nil {
		s.logger.Error("update classroom failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toClassroomResponse(c)
	return &resp, nil
}

func (s *catalogService) DeleteClassroom(ctx context.Context, id uint) error {
	if _, err := s.repo.Classroom.GetByID(ctx, id); err != nil {
		return notFoundAs(err, ErrClassroomNotFound)
	}
	n, err := s.repo.Entry.CountByClassroom(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrClassroomInUse
	}
	return s.repo.Classroom.Delete(ctx, id)
}

func (s *catalogService) classroomNameFree(ctx context.Context, name string, self uint) error {
	existing, err := s.repo.Classroom.GetByName(ctx, name)
	if err == nil && existing.ID != self {
		return ErrClassroomNameExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// ────────────────────── Lesson types ──────────────────────

func (s *catalogService) ListLessonTypes(ctx context.Context) ([]dto.LessonTypeResponse, error) {
	list, err := s.repo.LessonType.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.LessonTypeResponse, 0, len(list))
	for _, lt := range list {
		result = append(result, dto.LessonTypeResponse{ID: lt.ID, Name: lt.Name})
	}
	return result, nil
}
