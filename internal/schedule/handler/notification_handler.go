package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// NotificationHandler schedule change notifications
type NotificationHandler struct {
	svc service.NotificationService
}

// NewNotificationHandler creates a NotificationHandler
func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// ListPending
// GET /api/v1/notifications
func (h *NotificationHandler) ListPending(c *gin.Context) {
	list, err := h.svc.ListPending(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, list)
}

// Send delivers pending notifications now
// POST /api/v1/notifications/send
func (h *NotificationHandler) Send(c *gin.Context) {
	result, err := h.svc.Dispatch(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, result)
}

// ListForGroup
// GET /api/v1/notifications/group/:group_id
func (h *NotificationHandler) ListForGroup(c *gin.Context) {
	callerID, role, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}
	groupID, ok := handler.ParamID(c, "group_id")
	if !ok {
		return
	}
	list, err := h.svc.ListForGroup(c.Request.Context(), groupID, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, list)
}
