package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// ViewHandler joined read-only views
type ViewHandler struct {
	svc service.ViewService
}

// NewViewHandler creates a ViewHandler
func NewViewHandler(svc service.ViewService) *ViewHandler {
	return &ViewHandler{svc: svc}
}

// TeacherSchedule
// GET /api/v1/integration/teacher-schedule/:teacher_id
func (h *ViewHandler) TeacherSchedule(c *gin.Context) {
	teacherID, ok := handler.ParamID(c, "teacher_id")
	if !ok {
		return
	}
	var q dto.ScheduleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	resp, err := h.svc.TeacherSchedule(c.Request.Context(), teacherID, &q)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, resp)
}
