package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// CatalogHandler subjects, classrooms and lesson types
type CatalogHandler struct {
	svc service.CatalogService
}

// NewCatalogHandler creates a CatalogHandler
func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ────────────────────── Subjects ──────────────────────

// ListSubjects
// GET /api/v1/subjects
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	list, err := h.svc.ListSubjects(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetSubject
// GET /api/v1/subjects/:id
func (h *CatalogHandler) GetSubject(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	s, err := h.svc.GetSubject(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, s)
}

// CreateSubject
// POST /api/v1/subjects
func (h *CatalogHandler) CreateSubject(c *gin.Context) {
	var req dto.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	s, err := h.svc.CreateSubject(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, s)
}

// UpdateSubject
// PUT /api/v1/subjects/:id
func (h *CatalogHandler) UpdateSubject(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	s, err := h.svc.UpdateSubject(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, s)
}

// DeleteSubject refused while lessons reference it
// DELETE /api/v1/subjects/:id
func (h *CatalogHandler) DeleteSubject(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteSubject(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ────────────────────── Classrooms ──────────────────────

// ListClassrooms
// GET /api/v1/classrooms
func (h *CatalogHandler) ListClassrooms(c *gin.Context) {
	list, err := h.svc.ListClassrooms(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetClassroom
// GET /api/v1/classrooms/:id
func (h *CatalogHandler) GetClassroom(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	room, err := h.svc.GetClassroom(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, room)
}

// CreateClassroom
// POST /api/v1/classrooms
func (h *CatalogHandler) CreateClassroom(c *gin.Context) {
	var req dto.ClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	room, err := h.svc.CreateClassroom(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, room)
}

// UpdateClassroom
// PUT /api/v1/classrooms/:id
func (h *CatalogHandler) UpdateClassroom(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.ClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	room, err := h.svc.UpdateClassroom(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, room)
}

// DeleteClassroom refused while lessons reference it
// DELETE /api/v1/classrooms/:id
func (h *CatalogHandler) DeleteClassroom(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteClassroom(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListLessonTypes
// GET /api/v1/lesson-types
func (h *CatalogHandler) ListLessonTypes(c *gin.Context) {
	list, err := h.svc.ListLessonTypes(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}
