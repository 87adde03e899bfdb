package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// PaperworkHandler prefilled student documents
type PaperworkHandler struct {
	svc service.PaperworkService
}

// NewPaperworkHandler creates a PaperworkHandler
func NewPaperworkHandler(svc service.PaperworkService) *PaperworkHandler {
	return &PaperworkHandler{svc: svc}
}

// AbsenceRequest
// POST /api/v1/integration/absence-request/:student_id?date=&reason=
func (h *PaperworkHandler) AbsenceRequest(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	studentID, ok := handler.ParamID(c, "student_id")
	if !ok {
		return
	}
	var q dto.AbsenceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	resp, err := h.svc.AbsenceRequest(c.Request.Context(), caller, studentID, &q)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, resp)
}

// Reference
// POST /api/v1/integration/reference/:student_id
func (h *PaperworkHandler) Reference(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	studentID, ok := handler.ParamID(c, "student_id")
	if !ok {
		return
	}
	resp, err := h.svc.Reference(c.Request.Context(), caller, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, resp)
}
