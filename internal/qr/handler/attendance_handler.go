package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// AttendanceHandler QR codes and attendance sessions
type AttendanceHandler struct {
	svc service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler
func NewAttendanceHandler(svc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// Generate issues a short-lived QR code for a lesson
// POST /api/v1/qr
func (h *AttendanceHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	resp, err := h.svc.Generate(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Validate redeems a scanned QR code
// POST /api/v1/validate_qr
func (h *AttendanceHandler) Validate(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	var req dto.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	resp, err := h.svc.Validate(c.Request.Context(), caller, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, resp)
}

// Sessions attendance history, self or admin
// GET /api/v1/sessions/:user_id
func (h *AttendanceHandler) Sessions(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	userID, ok := handler.ParamID(c, "user_id")
	if !ok {
		return
	}
	resp, err := h.svc.Sessions(c.Request.Context(), caller, userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, resp)
}
