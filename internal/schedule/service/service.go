package service

import (
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/notify"
)

// Service aggregates every schedule service
type Service struct {
	Schedule     ScheduleService
	Catalog      CatalogService
	Notification NotificationService
}

// NewService wires the aggregate. dir may be nil, in which case responses
// carry empty enrichment and notifications have no recipients.
func NewService(
	repo *repository.Repository,
	dir Directory,
	senders []notify.Sender,
	notifyEnabled bool,
	logger *zap.Logger,
) *Service {
	notifications := NewNotificationService(repo, dir, senders, notifyEnabled, logger)
	return &Service{
		Schedule:     NewScheduleService(repo, dir, notifications, logger),
		Catalog:      NewCatalogService(repo, logger),
		Notification: notifications,
	}
}
