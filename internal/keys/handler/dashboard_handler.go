package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/keys/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// DashboardHandler overviews
type DashboardHandler struct {
	svc service.DashboardService
}

// NewDashboardHandler creates a DashboardHandler
func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Mine
// GET /api/v1/dashboard
func (h *DashboardHandler) Mine(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	d, err := h.svc.ForCaller(c.Request.Context(), caller)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, d)
}

// Admin
// GET /api/v1/dashboard/admin
func (h *DashboardHandler) Admin(c *gin.Context) {
	d, err := h.svc.Admin(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, d)
}
