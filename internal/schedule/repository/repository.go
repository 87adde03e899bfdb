package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every schedule repository
type Repository struct {
	db *gorm.DB

	Subject      SubjectRepository
	Classroom    ClassroomRepository
	LessonType   LessonTypeRepository
	Entry        EntryRepository
	Notification NotificationRepository
}

// NewRepository creates the aggregate
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		Subject:      NewSubjectRepo(db),
		Classroom:    NewClassroomRepo(db),
		LessonType:   NewLessonTypeRepo(db),
		Entry:        NewEntryRepo(db),
		Notification: NewNotificationRepo(db),
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
