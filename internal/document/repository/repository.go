package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every document repository
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Document     DocumentRepository
	Registration RegistrationRepository
	Template     TemplateRepository
}

// NewRepository creates the aggregate
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Document:     NewDocumentRepo(db),
		Registration: NewRegistrationRepo(db),
		Template:     NewTemplateRepo(db),
	}
}

// Transaction runs fn with repositories bound to a single transaction
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
