package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// ReportHandler attendance reports
type ReportHandler struct {
	svc service.ReportService
}

// NewReportHandler creates a ReportHandler
func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// AttendanceReport
// POST /api/v1/integration/attendance-report/:group_id?start_date=&end_date=
func (h *ReportHandler) AttendanceReport(c *gin.Context) {
	groupID, ok := handler.ParamID(c, "group_id")
	if !ok {
		return
	}
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	resp, err := h.svc.AttendanceReport(c.Request.Context(), groupID, &q)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, resp)
}

// StudentAttendance
// GET /api/v1/integration/student-attendance/:student_id
func (h *ReportHandler) StudentAttendance(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	studentID, ok := handler.ParamID(c, "student_id")
	if !ok {
		return
	}
	resp, err := h.svc.StudentAttendance(c.Request.Context(), caller, studentID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, resp)
}
