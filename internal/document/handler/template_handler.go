package handler

import (
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// TemplateHandler document templates
type TemplateHandler struct {
	svc service.TemplateService
}

// NewTemplateHandler creates a TemplateHandler
func NewTemplateHandler(svc service.TemplateService) *TemplateHandler {
	return &TemplateHandler{svc: svc}
}

// List templates offered to the caller's role
// GET /api/v1/templates
func (h *TemplateHandler) List(c *gin.Context) {
	role, ok := middleware.MustGetRole(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), role)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, list)
}

// ListAll
// GET /api/v1/templates/all
func (h *TemplateHandler) ListAll(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, list)
}

// Get
// GET /api/v1/templates/:id
func (h *TemplateHandler) Get(c *gin.Context) {
	role, ok := middleware.MustGetRole(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), role, id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, t)
}

// Create multipart name, description, availability flags and file
// POST /api/v1/templates
func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	t, err := h.svc.Create(c.Request.Context(), &req, optionalFile(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, t)
}

// Update partial; JSON or multipart with an optional replacement file
// PUT /api/v1/templates/:id
func (h *TemplateHandler) Update(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTemplateRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	t, err := h.svc.Update(c.Request.Context(), id, &req, optionalFile(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, t)
}

// Delete removes the row and its file
// DELETE /api/v1/templates/:id
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// Download streams the template as <name>.pdf
// GET /api/v1/templates/:id/download
func (h *TemplateHandler) Download(c *gin.Context) {
	role, ok := middleware.MustGetRole(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	path, name, err := h.svc.Download(c.Request.Context(), role, id)
	if err != nil {
		handleError(c, err)
		return
	}
	sendPDF(c, path, name)
}

// optionalFile the "file" part of a multipart request, nil otherwise
func optionalFile(c *gin.Context) *multipart.FileHeader {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return nil
	}
	return fh
}
