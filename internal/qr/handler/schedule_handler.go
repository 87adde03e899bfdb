package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// ScheduleHandler timetable proxy
type ScheduleHandler struct {
	svc service.ScheduleService
}

// NewScheduleHandler creates a ScheduleHandler
func NewScheduleHandler(svc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// ForUser
// GET /api/v1/schedule/:user_id
func (h *ScheduleHandler) ForUser(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	userID, ok := handler.ParamID(c, "user_id")
	if !ok {
		return
	}
	var q dto.ScheduleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	resp, err := h.svc.ForUser(c.Request.Context(), caller, userID, &q)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, resp)
}
