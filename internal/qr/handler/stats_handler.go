package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StatsHandler attendance statistics
type StatsHandler struct {
	svc service.StatsService
}

// NewStatsHandler creates a StatsHandler
func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Stats attendance per subject, shift, teacher and weekday
// GET /api/v1/stats?start_date=&end_date=
func (h *StatsHandler) Stats(c *gin.Context) {
	var req dto.StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	rows, err := h.svc.Stats(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"stats": rows})
}

// Export same rows as an .xlsx download
// GET /api/v1/stats/export?start_date=&end_date=
func (h *StatsHandler) Export(c *gin.Context) {
	var req dto.StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	buf, filename, err := h.svc.Export(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
