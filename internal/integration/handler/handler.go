package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// Handler aggregates every integration handler
type Handler struct {
	Reports   *ReportHandler
	Paperwork *PaperworkHandler
	Views     *ViewHandler
	Health    *HealthHandler
}

// NewHandler creates the aggregate. siblings are listed by the health endpoint.
func NewHandler(svc *service.Service, siblings []dto.ServiceEndpoint) *Handler {
	return &Handler{
		Reports:   NewReportHandler(svc.Reports),
		Paperwork: NewPaperworkHandler(svc.Paperwork),
		Views:     NewViewHandler(svc.Views),
		Health:    &HealthHandler{siblings: siblings},
	}
}

// HealthHandler lists the siblings the integration layer talks to
type HealthHandler struct {
	siblings []dto.ServiceEndpoint
}

// Health
// GET /api/v1/integration/health
func (h *HealthHandler) Health(c *gin.Context) {
	response.OK(c, dto.HealthResponse{Status: "healthy", Services: h.siblings})
}

func mustGetCaller(c *gin.Context) (service.Caller, bool) {
	id, role, ok := middleware.MustGetCaller(c)
	if !ok {
		return service.Caller{}, false
	}
	return service.Caller{ID: id, Role: role}, true
}
