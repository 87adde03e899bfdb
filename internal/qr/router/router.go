package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	baserouter "github.com/yerk0w/EduLifeFor-merge/internal/api/router"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/handler"
	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
	"github.com/yerk0w/EduLifeFor-merge/pkg/redis"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// Setup builds the QR attendance service engine
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := baserouter.NewEngine(cfg, logger)

	staff := middleware.RoleAuth(roles.Admin, roles.Teacher)
	limited := middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		v1.POST("/qr", staff, h.Attendance.Generate)
		v1.POST("/validate_qr", limited, h.Attendance.Validate)
		v1.GET("/sessions/:user_id", h.Attendance.Sessions)
		v1.GET("/schedule/:user_id", h.Schedule.ForUser)

		stats := v1.Group("/stats", staff)
		{
			stats.GET("", h.Stats.Stats)
			stats.GET("/export", h.Stats.Export)
		}
	}

	return r
}
