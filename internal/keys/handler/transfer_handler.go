package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// TransferHandler key hand-over requests
type TransferHandler struct {
	svc service.TransferService
}

// NewTransferHandler creates a TransferHandler
func NewTransferHandler(svc service.TransferService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// List every transfer, optionally by status
// GET /api/v1/transfers?status=
func (h *TransferHandler) List(c *gin.Context) {
	var q dto.TransferListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), q.Status)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, list)
}

// Incoming
// GET /api/v1/transfers/incoming
func (h *TransferHandler) Incoming(c *gin.Context) {
	h.callerList(c, h.svc.Incoming)
}

// Outgoing
// GET /api/v1/transfers/outgoing
func (h *TransferHandler) Outgoing(c *gin.Context) {
	h.callerList(c, h.svc.Outgoing)
}

func (h *TransferHandler) callerList(c *gin.Context, fn func(context.Context, service.Caller) ([]dto.TransferResponse, error)) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	list, err := fn(c.Request.Context(), caller)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, list)
}

// Get
// GET /api/v1/transfers/:id
func (h *TransferHandler) Get(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), caller, id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, t)
}

// Create
// POST /api/v1/transfers
func (h *TransferHandler) Create(c *gin.Context) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	t, err := h.svc.Create(c.Request.Context(), caller, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, t)
}

// Approve
// POST /api/v1/transfers/:id/approve
func (h *TransferHandler) Approve(c *gin.Context) {
	h.decide(c, h.svc.Approve)
}

// Reject
// POST /api/v1/transfers/:id/reject?reason=
func (h *TransferHandler) Reject(c *gin.Context) {
	var q dto.RejectQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handler.BindError(c, err)
		return
	}
	h.decide(c, func(ctx context.Context, caller service.Caller, id uint) (*dto.TransferResponse, error) {
		return h.svc.Reject(ctx, caller, id, q.Reason)
	})
}

// Cancel
// POST /api/v1/transfers/:id/cancel
func (h *TransferHandler) Cancel(c *gin.Context) {
	h.decide(c, h.svc.Cancel)
}

func (h *TransferHandler) decide(c *gin.Context, fn func(context.Context, service.Caller, uint) (*dto.TransferResponse, error)) {
	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	t, err := fn(c.Request.Context(), caller, id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, t)
}
