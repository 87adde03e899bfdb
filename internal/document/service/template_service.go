package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/document/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
	"github.com/yerk0w/EduLifeFor-merge/pkg/storage"
)

const templatesDir = "templates"

// TemplateService blank PDF forms
type TemplateService interface {
	// List templates offered to role
	List(ctx context.Context, role string) ([]dto.TemplateResponse, error)
	ListAll(ctx context.Context) ([]dto.TemplateResponse, error)
	Get(ctx context.Context, role string, id uint) (*dto.TemplateResponse, error)
	Create(ctx context.Context, req *dto.CreateTemplateRequest, fh *multipart.FileHeader) (*dto.TemplateResponse, error)
	// Update applies the set fields; a non-nil fh replaces the file
	Update(ctx context.Context, id uint, req *dto.UpdateTemplateRequest, fh *multipart.FileHeader) (*dto.TemplateResponse, error)
	Delete(ctx context.Context, id uint) error
	Download(ctx context.Context, role string, id uint) (path, filename string, err error)
}

type templateService struct {
	repo   *repository.Repository
	files  FileStore
	logger *zap.Logger
}

// NewTemplateService creates a TemplateService
func NewTemplateService(repo *repository.Repository, files FileStore, logger *zap.Logger) TemplateService {
	return &templateService{repo: repo, files: files, logger: logger}
}

func audienceOf(role string) (repository.TemplateAudience, bool) {
	switch role {
	case roles.Admin:
		return repository.AudienceAll, true
	case roles.Student:
		return repository.AudienceStudents, true
	case roles.Teacher:
		return repository.AudienceTeachers, true
	default:
		return 0, false
	}
}

func availableTo(t *model.Template, role string) bool {
	switch role {
	case roles.Admin:
		return true
	case roles.Student:
		return t.AvailableForStudents
	case roles.Teacher:
		return t.AvailableForTeachers
	default:
		return false
	}
}

func (s *templateService) List(ctx context.Context, role string) ([]dto.TemplateResponse, error) {
	audience, ok := audienceOf(role)
	if !ok {
		return []dto.TemplateResponse{}, nil
	}
	return s.list(ctx, audience)
}

func (s *templateService) ListAll(ctx context.Context) ([]dto.TemplateResponse, error) {
	return s.list(ctx, repository.AudienceAll)
}

func (s *templateService) list(ctx context.Context, audience repository.TemplateAudience) ([]dto.TemplateResponse, error) {
	list, err := s.repo.Template.List(ctx, audience)
	if err != nil {
		return nil, err
	}
	result := make([]dto.TemplateResponse, 0, len(list))
	for i := range list {
		result = append(result, toTemplateResponse(&list[i]))
	}
	return result, nil
}

func (s *templateService) Get(ctx context.Context, role string, id uint) (*dto.TemplateResponse, error) {
	t, err := s.available(ctx, role, id)
	if err != nil {
		return nil, err
	}
	resp := toTemplateResponse(t)
	return &resp, nil
}

func (s *templateService) available(ctx context.Context, role string, id uint) (*model.Template, error) {
	t, err := s.repo.Template.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrTemplateNotFound)
	}
	if !availableTo(t, role) {
		return nil, ErrTemplateAccessDenied
	}
	return t, nil
}

func (s *templateService) Create(ctx context.Context, req *dto.CreateTemplateRequest, fh *multipart.FileHeader) (*dto.TemplateResponse, error) {
	if fh == nil {
		return nil, ErrTemplateFileRequired
	}
	path, err := s.savePDF(fh)
	if err != nil {
		return nil, err
	}

	t := &model.Template{
		Name:                 strings.TrimSpace(req.Name),
		Description:          req.Description,
		FilePath:             path,
		AvailableForStudents: boolOr(req.AvailableForStudents, true),
		AvailableForTeachers: boolOr(req.AvailableForTeachers, true),
	}
	if err := s.repo.Template.Create(ctx, t); err != nil {
		s.logger.Error("create template failed", zap.Error(err))
		s.removeFile(path)
		return nil, err
	}

	s.logger.Info("template created", zap.Uint("id", t.ID), zap.String("name", t.Name))
	resp := toTemplateResponse(t)
	return &resp, nil
}

func (s *templateService) Update(ctx context.Context, id uint, req *dto.UpdateTemplateRequest, fh *multipart.FileHeader) (*dto.TemplateResponse, error) {
	t, err := s.repo.Template.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrTemplateNotFound)
	}
	if req.Name == nil && req.Description == nil && req.AvailableForStudents == nil &&
		req.AvailableForTeachers == nil && fh == nil {
		return nil, ErrEmptyUpdate
	}

	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.AvailableForStudents != nil {
		t.AvailableForStudents = *req.AvailableForStudents
	}
	if req.AvailableForTeachers != nil {
		t.AvailableForTeachers = *req.AvailableForTeachers
	}

	oldPath := ""
	if fh != nil {
		path, err := s.savePDF(fh)
		if err != nil {
			return nil, err
		}
		oldPath, t.FilePath = t.FilePath, path
	}

	if err := s.repo.Template.Update(ctx, t); err != nil {
		s.logger.Error("update template failed", zap.Uint("id", id), zap.Error(err))
		if fh != nil {
			s.removeFile(t.FilePath)
		}
		return nil, err
	}
	if oldPath != "" {
		s.removeFile(oldPath)
	}

	resp := toTemplateResponse(t)
	return &resp, nil
}

func (s *templateService) Delete(ctx context.Context, id uint) error {
	t, err := s.repo.Template.GetByID(ctx, id)
	if err != nil {
		return notFoundAs(err, ErrTemplateNotFound)
	}
	if err := s.repo.Template.Delete(ctx, id); err != nil {
		s.logger.Error("delete template failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.removeFile(t.FilePath)
	s.logger.Info("template deleted", zap.Uint("id", id))
	return nil
}

func (s *templateService) Download(ctx context.Context, role string, id uint) (string, string, error) {
	t, err := s.available(ctx, role, id)
	if err != nil {
		return "", "", err
	}
	if t.FilePath == "" || !s.files.Exists(t.FilePath) {
		return "", "", ErrFileNotFound
	}
	full, err := s.files.FullPath(t.FilePath)
	if err != nil {
		return "", "", ErrFileNotFound
	}
	return full, t.Name + ".pdf", nil
}

func (s *templateService) savePDF(fh *multipart.FileHeader) (string, error) {
	path, err := s.files.SavePDF(fh, templatesDir)
	if err != nil {
		if errors.Is(err, storage.ErrNotPDF) || errors.Is(err, storage.ErrEmptyFile) {
			return "", ErrInvalidFile
		}
		s.logger.Error("store template file failed", zap.Error(err))
		return "", err
	}
	return path, nil
}

func (s *templateService) removeFile(path string) {
	if path == "" {
		return
	}
	if err := s.files.Delete(path); err != nil {
		s.logger.Warn("remove template file failed", zap.String("path", path), zap.Error(err))
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
