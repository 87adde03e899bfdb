package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// RegistrationHandler sign-up and role requests
type RegistrationHandler struct {
	svc service.RegistrationService
}

// NewRegistrationHandler creates a RegistrationHandler
func NewRegistrationHandler(svc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

// Register public sign-up; auth rejections keep their status and code
// POST /api/v1/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, resp)
}

// Create files a request for the caller
// POST /api/v1/registration-requests
func (h *RegistrationHandler) Create(c *gin.Context) {
	userID, ok := middleware.MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, resp)
}

// List
// GET /api/v1/registration-requests
func (h *RegistrationHandler) List(c *gin.Context) {
	h.list(c, c.Query("status"))
}

// ListPending
// GET /api/v1/registration-requests/pending
func (h *RegistrationHandler) ListPending(c *gin.Context) {
	h.list(c, model.StatusPending)
}

func (h *RegistrationHandler) list(c *gin.Context, status string) {
	list, err := h.svc.List(c.Request.Context(), status)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, list)
}

// Get
// GET /api/v1/registration-requests/:id
func (h *RegistrationHandler) Get(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Process approves or rejects a pending request
// PATCH /api/v1/registration-requests/:id
func (h *RegistrationHandler) Process(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.ProcessRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	resp, err := h.svc.Process(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, resp)
}
