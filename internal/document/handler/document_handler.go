package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/service"
	shareddto "github.com/yerk0w/EduLifeFor-merge/internal/dto"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// DocumentHandler documents
type DocumentHandler struct {
	svc service.DocumentService
}

// NewDocumentHandler creates a DocumentHandler
func NewDocumentHandler(svc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

func mustGetCaller(c *gin.Context) (service.Caller, bool) {
	id, role, ok := middleware.MustGetCaller(c)
	if !ok {
		return service.Caller{}, false
	}
	return service.Caller{ID: id, Role: role}, true
}

// Create
// POST /api/v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	d, err := h.svc.Create(c.Request.Context(), caller, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, d)
}

// Upload multipart PDF submission
// POST /api/v1/documents/upload
func (h *DocumentHandler) Upload(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	var req dto.UploadDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, CodeInvalidFile, "file is required")
		return
	}
	d, err := h.svc.Upload(c.Request.Context(), caller, &req, fh)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, d)
}

// List documents the caller authored or received; admin sees all
// GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	var req dto.DocumentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	list, total, err := h.svc.List(c.Request.Context(), caller, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ListAll
// GET /api/v1/documents/all
func (h *DocumentHandler) ListAll(c *gin.Context) {
	var req shareddto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	list, total, err := h.svc.ListAll(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Filter
// GET /api/v1/documents/filter
func (h *DocumentHandler) Filter(c *gin.Context) {
	var req dto.DocumentFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	list, total, err := h.svc.Filter(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Stats
// GET /api/v1/documents/stats
func (h *DocumentHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, stats)
}

// Get admin, author or recipient
// GET /api/v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.Get(c.Request.Context(), caller, id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, d)
}

// Review
// PATCH /api/v1/documents/:id/review
func (h *DocumentHandler) Review(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	d, err := h.svc.Review(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, d)
}

// Download streams the stored PDF
// GET /api/v1/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	path, name, err := h.svc.Download(c.Request.Context(), caller, id)
	if err != nil {
		handleError(c, err)
		return
	}
	sendPDF(c, path, name)
}

// sendPDF streams a stored file as an attachment
func sendPDF(c *gin.Context, path, name string) {
	c.FileAttachment(path, name)
}
