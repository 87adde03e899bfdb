package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// ScheduleHandler lessons
type ScheduleHandler struct {
	svc service.ScheduleService
}

// NewScheduleHandler creates a ScheduleHandler
func NewScheduleHandler(svc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// List lessons matching the filters, ordered by date and start time
// GET /api/v1/schedule
func (h *ScheduleHandler) List(c *gin.Context) {
	var f dto.ScheduleFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		handler.BindError(c, err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), &f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, list)
}

// Get
// GET /api/v1/schedule/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	e, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, e)
}

// Create
// POST /api/v1/schedule
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	e, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, e)
}

// Update
// PUT /api/v1/schedule/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	e, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, e)
}

// Delete
// DELETE /api/v1/schedule/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
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

// ExportICS iCalendar feed of the filtered schedule
// GET /api/v1/schedule/export.ics
func (h *ScheduleHandler) ExportICS(c *gin.Context) {
	var f dto.ScheduleFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		handler.BindError(c, err)
		return
	}
	data, err := h.svc.ExportICS(c.Request.Context(), &f)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="schedule.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}
