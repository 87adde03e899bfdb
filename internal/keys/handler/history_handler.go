package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HistoryHandler key movement audit trail
type HistoryHandler struct {
	svc service.HistoryService
}

// NewHistoryHandler creates a HistoryHandler
func NewHistoryHandler(svc service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// ByKey
// GET /api/v1/history/key/:id
// GET /api/v1/keys/:id/history
func (h *HistoryHandler) ByKey(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	list, err := h.svc.ByKey(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, list)
}

// ByTeacher
// GET /api/v1/history/teacher/:id
func (h *HistoryHandler) ByTeacher(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	list, err := h.svc.ByTeacher(c.Request.Context(), caller, id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, list)
}

// List
// GET /api/v1/history?limit=100&offset=0
func (h *HistoryHandler) List(c *gin.Context) {
	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	page, err := h.svc.List(c.Request.Context(), &q)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, page)
}

// Stats
// GET /api/v1/history/stats
func (h *HistoryHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, stats)
}

// Export
// GET /api/v1/history/export
func (h *HistoryHandler) Export(c *gin.Context) {
	buf, filename, err := h.svc.Export(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
