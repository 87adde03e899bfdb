package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	baserouter "github.com/yerk0w/EduLifeFor-merge/internal/api/router"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/handler"
	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
	"github.com/yerk0w/EduLifeFor-merge/pkg/redis"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// Setup builds the integration service engine
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := baserouter.NewEngine(cfg, logger)

	admin := middleware.RoleAuth(roles.Admin)
	limited := middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	integration := r.Group("/api/v1/integration")
	integration.GET("/health", h.Health.Health)

	authorized := integration.Group("", middleware.JWTAuth(jwtMgr, rdb))
	{
		// QR history of other users is admin only
		authorized.POST("/attendance-report/:group_id", admin, limited, h.Reports.AttendanceReport)
		authorized.GET("/student-attendance/:student_id", h.Reports.StudentAttendance)

		authorized.POST("/absence-request/:student_id", limited, h.Paperwork.AbsenceRequest)
		authorized.POST("/reference/:student_id", limited, h.Paperwork.Reference)

		authorized.GET("/teacher-schedule/:teacher_id", h.Views.TeacherSchedule)
	}

	return r
}
