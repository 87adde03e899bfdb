package handler

import "github.com/yerk0w/EduLifeFor-merge/internal/schedule/service"

// Handler aggregates every schedule handler
type Handler struct {
	Schedule     *ScheduleHandler
	Catalog      *CatalogHandler
	Notification *NotificationHandler
}

// NewHandler creates the aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Schedule:     NewScheduleHandler(svc.Schedule),
		Catalog:      NewCatalogHandler(svc.Catalog),
		Notification: NewNotificationHandler(svc.Notification),
	}
}
