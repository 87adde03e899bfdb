package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// KeyHandler the key registry
type KeyHandler struct {
	svc service.KeyService
}

// NewKeyHandler creates a KeyHandler
func NewKeyHandler(svc service.KeyService) *KeyHandler {
	return &KeyHandler{svc: svc}
}

// List every key with its holder
// GET /api/v1/keys
func (h *KeyHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, list)
}

// Get
// GET /api/v1/keys/:id
func (h *KeyHandler) Get(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	k, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, k)
}

// ListByTeacher keys a teacher currently holds
// GET /api/v1/keys/teacher/:user_id
func (h *KeyHandler) ListByTeacher(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	teacherID, ok := handler.ParamID(c, "user_id")
	if !ok {
		return
	}
	list, err := h.svc.ListByTeacher(c.Request.Context(), caller, teacherID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, list)
}

// Create
// POST /api/v1/keys
func (h *KeyHandler) Create(c *gin.Context) {
	var req dto.CreateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	k, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, k)
}

// Update partial update
// PUT /api/v1/keys/:id
func (h *KeyHandler) Update(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	k, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, k)
}

// Delete a key that nobody holds and nobody is handing over
// DELETE /api/v1/keys/:id
func (h *KeyHandler) Delete(c *gin.Context) {
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

// Assign
// POST /api/v1/keys/:id/assign/:teacher_id?notes=
func (h *KeyHandler) Assign(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	teacherID, ok := handler.ParamID(c, "teacher_id")
	if !ok {
		return
	}
	var q dto.NotesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	k, err := h.svc.Assign(c.Request.Context(), id, teacherID, q.Notes)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, k)
}

// Unassign returns the key to management
// POST /api/v1/keys/:id/unassign?notes=
func (h *KeyHandler) Unassign(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var q dto.NotesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	k, err := h.svc.Unassign(c.Request.Context(), id, q.Notes)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, k)
}
