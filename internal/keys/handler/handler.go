package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/service"
)

// Handler aggregates every key management handler
type Handler struct {
	Keys      *KeyHandler
	Transfers *TransferHandler
	History   *HistoryHandler
	Dashboard *DashboardHandler
}

// NewHandler creates the aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Keys:      NewKeyHandler(svc.Keys),
		Transfers: NewTransferHandler(svc.Transfers),
		History:   NewHistoryHandler(svc.History),
		Dashboard: NewDashboardHandler(svc.Dashboard),
	}
}

func mustGetCaller(c *gin.Context) (service.Caller, bool) {
	id, role, ok := middleware.MustGetCaller(c)
	if !ok {
		return service.Caller{}, false
	}
	return service.Caller{ID: id, Role: role}, true
}
