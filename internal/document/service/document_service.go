package service

import (
	"context"
	"errors"
	"mime/multipart"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/document/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/repository"
	shareddto "github.com/yerk0w/EduLifeFor-merge/internal/dto"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
	"github.com/yerk0w/EduLifeFor-merge/pkg/storage"
)

const documentsDir = "documents"

// DocumentService submitted documents and their review
type DocumentService interface {
	Create(ctx context.Context, caller Caller, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	Upload(ctx context.Context, caller Caller, req *dto.UploadDocumentRequest, fh *multipart.FileHeader) (*dto.DocumentResponse, error)
	// List documents visible to caller; admin sees everything
	List(ctx context.Context, caller Caller, req *dto.DocumentListRequest) ([]dto.DocumentResponse, int64, error)
	ListAll(ctx context.Context, page *shareddto.PaginationRequest) ([]dto.DocumentResponse, int64, error)
	Filter(ctx context.Context, req *dto.DocumentFilterRequest) ([]dto.DocumentResponse, int64, error)
	Get(ctx context.Context, caller Caller, id uint) (*dto.DocumentResponse, error)
	Review(ctx context.Context, id uint, req *dto.ReviewDocumentRequest) (*dto.DocumentResponse, error)
	// Download resolves the stored file of a document the caller may see
	Download(ctx context.Context, caller Caller, id uint) (path, filename string, err error)
	Stats(ctx context.Context) (*dto.DocumentStats, error)
}

type documentService struct {
	repo   *repository.Repository
	files  FileStore
	logger *zap.Logger
}

// NewDocumentService creates a DocumentService
func NewDocumentService(repo *repository.Repository, files FileStore, logger *zap.Logger) DocumentService {
	return &documentService{repo: repo, files: files, logger: logger}
}

// ────────────────────── Writes ──────────────────────

func (s *documentService) Create(ctx context.Context, caller Caller, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if req.RecipientID != nil {
		if caller.Role != roles.Admin {
			return nil, ErrRecipientNotAllowed
		}
		if _, err := s.repo.User.GetByID(ctx, *req.RecipientID); err != nil {
			return nil, notFoundAs(err, ErrRecipientNotFound)
		}
	}

	d := &model.Document{
		Title:        req.Title,
		Content:      req.Content,
		Status:       model.StatusPending,
		AuthorID:     caller.ID,
		RecipientID:  req.RecipientID,
		TemplateType: req.TemplateType,
	}
	return s.store(ctx, d)
}

func (s *documentService) Upload(ctx context.Context, caller Caller, req *dto.UploadDocumentRequest, fh *multipart.FileHeader) (*dto.DocumentResponse, error) {
	path, err := s.files.SavePDF(fh, documentsDir)
	if err != nil {
		if errors.Is(err, storage.ErrNotPDF) || errors.Is(err, storage.ErrEmptyFile) {
			return nil, ErrInvalidFile
		}
		s.logger.Error("store document file failed", zap.Error(err))
		return nil, err
	}

	d := &model.Document{
		Title:        req.Title,
		Content:      req.Content,
		Status:       model.StatusPending,
		AuthorID:     caller.ID,
		TemplateType: req.TemplateType,
		FilePath:     path,
	}
	resp, err := s.store(ctx, d)
	if err != nil {
		if delErr := s.files.Delete(path); delErr != nil {
			s.logger.Warn("remove orphaned upload failed", zap.String("path", path), zap.Error(delErr))
		}
		return nil, err
	}
	return resp, nil
}

func (s *documentService) store(ctx context.Context, d *model.Document) (*dto.DocumentResponse, error) {
	if err := s.repo.Document.Create(ctx, d); err != nil {
		s.logger.Error("create document failed", zap.Uint("author_id", d.AuthorID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("document created", zap.Uint("id", d.ID), zap.Uint("author_id", d.AuthorID))

	created, err := s.repo.Document.GetByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	resp := toDocumentResponse(created)
	return &resp, nil
}

func (s *documentService) Review(ctx context.Context, id uint, req *dto.ReviewDocumentRequest) (*dto.DocumentResponse, error) {
	if _, err := s.repo.Document.GetByID(ctx, id); err != nil {
		return nil, notFoundAs(err, ErrDocumentNotFound)
	}
	if err := s.repo.Document.UpdateStatus(ctx, id, req.Status); err != nil {
		s.logger.Error("review document failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	d, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("document reviewed", zap.Uint("id", id), zap.String("status", req.Status))
	resp := toDocumentResponse(d)
	return &resp, nil
}

// ────────────────────── Reads ──────────────────────

func (s *documentService) List(ctx context.Context, caller Caller, req *dto.DocumentListRequest) ([]dto.DocumentResponse, int64, error) {
	f := &repository.DocumentFilters{
		Status:       req.Status,
		TemplateType: req.TemplateType,
	}
	if caller.Role != roles.Admin {
		f.VisibleTo = caller.ID
	}
	return s.list(ctx, f, &req.PaginationRequest)
}

func (s *documentService) ListAll(ctx context.Context, page *shareddto.PaginationRequest) ([]dto.DocumentResponse, int64, error) {
	return s.list(ctx, nil, page)
}

func (s *documentService) Filter(ctx context.Context, req *dto.DocumentFilterRequest) ([]dto.DocumentResponse, int64, error) {
	return s.list(ctx, &repository.DocumentFilters{
		AuthorID:       req.AuthorID,
		Status:         req.Status,
		TemplateType:   req.TemplateType,
		FacultyName:    req.FacultyName,
		DepartmentName: req.DepartmentName,
		GroupName:      req.GroupName,
	}, &req.PaginationRequest)
}

func (s *documentService) list(ctx context.Context, f *repository.DocumentFilters, page *shareddto.PaginationRequest) ([]dto.DocumentResponse, int64, error) {
	list, total, err := s.repo.Document.List(ctx, f, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("list documents failed", zap.Error(err))
		return nil, 0, err
	}
	return toDocumentResponses(list), total, nil
}

func (s *documentService) Get(ctx context.Context, caller Caller, id uint) (*dto.DocumentResponse, error) {
	d, err := s.visible(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	resp := toDocumentResponse(d)
	return &resp, nil
}

func (s *documentService) Download(ctx context.Context, caller Caller, id uint) (string, string, error) {
	d, err := s.visible(ctx, caller, id)
	if err != nil {
		return "", "", err
	}
	if d.FilePath == "" || !s.files.Exists(d.FilePath) {
		return "", "", ErrFileNotFound
	}
	full, err := s.files.FullPath(d.FilePath)
	if err != nil {
		return "", "", ErrFileNotFound
	}
	return full, d.Title + ".pdf", nil
}

// visible loads a document the caller authored, received or, as admin, may see anyway
func (s *documentService) visible(ctx context.Context, caller Caller, id uint) (*model.Document, error) {
	d, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrDocumentNotFound)
	}
	if caller.Role == roles.Admin || d.AuthorID == caller.ID {
		return d, nil
	}
	if d.RecipientID != nil && *d.RecipientID == caller.ID {
		return d, nil
	}
	return nil, ErrDocumentAccessDenied
}

func (s *documentService) Stats(ctx context.Context) (*dto.DocumentStats, error) {
	total, err := s.repo.Document.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.Document.CountBy(ctx, "status")
	if err != nil {
		return nil, err
	}
	byTemplate, err := s.repo.Document.CountBy(ctx, "template_type")
	if err != nil {
		return nil, err
	}
	byFaculty, err := s.repo.Document.CountByFaculty(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DocumentStats{
		Total:      total,
		ByStatus:   countMap(byStatus),
		ByTemplate: countMap(byTemplate),
		ByFaculty:  countMap(byFaculty),
	}, nil
}

func countMap(rows []repository.Count) map[string]int64 {
	m := make(map[string]int64, len(rows))
	for _, r := range rows {
		m[r.Label] += r.Total
	}
	return m
}
