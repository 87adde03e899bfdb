package handler

import "github.com/yerk0w/EduLifeFor-merge/internal/document/service"

// Handler aggregates every document handler
type Handler struct {
	User         *UserHandler
	Registration *RegistrationHandler
	Document     *DocumentHandler
	Template     *TemplateHandler
}

// NewHandler creates the aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		User:         NewUserHandler(svc.User),
		Registration: NewRegistrationHandler(svc.Registration),
		Document:     NewDocumentHandler(svc.Document),
		Template:     NewTemplateHandler(svc.Template),
	}
}
