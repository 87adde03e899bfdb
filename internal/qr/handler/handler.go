package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/service"
)

// Handler aggregates every QR handler
type Handler struct {
	Attendance *AttendanceHandler
	Schedule   *ScheduleHandler
	Stats      *StatsHandler
}

// NewHandler creates the aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Attendance: NewAttendanceHandler(svc.Attendance),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Stats:      NewStatsHandler(svc.Stats),
	}
}

func mustGetCaller(c *gin.Context) (service.Caller, bool) {
	id, role, ok := middleware.MustGetCaller(c)
	if !ok {
		return service.Caller{}, false
	}
	return service.Caller{ID: id, Role: role}, true
}
