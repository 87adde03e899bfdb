package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every key management repository
type Repository struct {
	db *gorm.DB

	Key        KeyRepository
	Assignment AssignmentRepository
	Transfer   TransferRepository
	History    HistoryRepository
}

// NewRepository creates the aggregate
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		Key:        NewKeyRepo(db),
		Assignment: NewAssignmentRepo(db),
		Transfer:   NewTransferRepo(db),
		History:    NewHistoryRepo(db),
	}
}

// Transaction runs fn with repositories bound to a single transaction.
// An aggregate assembled by hand without a db runs fn directly.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
