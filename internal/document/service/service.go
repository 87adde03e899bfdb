package service

import (
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/document/repository"
)

// Service aggregates every document service
type Service struct {
	User         UserService
	Registration RegistrationService
	Document     DocumentService
	Template     TemplateService
}

// NewService wires the aggregate. dir may be nil; mirrors then come from token claims.
func NewService(repo *repository.Repository, dir Directory, files FileStore, logger *zap.Logger) *Service {
	return &Service{
		User:         NewUserService(repo, dir, logger),
		Registration: NewRegistrationService(repo, dir, logger),
		Document:     NewDocumentService(repo, files, logger),
		Template:     NewTemplateService(repo, files, logger),
	}
}
