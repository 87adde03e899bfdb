package handler

import "github.com/yerk0w/EduLifeFor-merge/internal/auth/service"

// Handler aggregates every auth handler
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Academic *AcademicHandler
	People   *PeopleHandler
}

// NewHandler creates the aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		User:     NewUserHandler(svc.User),
		Academic: NewAcademicHandler(svc.Faculty, svc.Department, svc.Group, svc.Subject),
		People:   NewPeopleHandler(svc.Teacher, svc.Student),
	}
}
