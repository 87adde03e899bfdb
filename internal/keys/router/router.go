package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	baserouter "github.com/yerk0w/EduLifeFor-merge/internal/api/router"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/handler"
	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
	"github.com/yerk0w/EduLifeFor-merge/pkg/redis"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// Setup builds the key management service engine
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := baserouter.NewEngine(cfg, logger)

	admin := middleware.RoleAuth(roles.Admin)
	staff := middleware.RoleAuth(roles.Admin, roles.Teacher)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		keys := v1.Group("/keys")
		{
			keys.GET("", h.Keys.List)
			keys.GET("/teacher/:user_id", h.Keys.ListByTeacher)
			keys.GET("/:id", h.Keys.Get)
			keys.GET("/:id/history", h.History.ByKey)
			keys.POST("", admin, h.Keys.Create)
			keys.PUT("/:id", admin, h.Keys.Update)
			keys.DELETE("/:id", admin, h.Keys.Delete)
			keys.POST("/:id/assign/:teacher_id", admin, h.Keys.Assign)
			keys.POST("/:id/unassign", admin, h.Keys.Unassign)
		}

		transfers := v1.Group("/transfers")
		{
			transfers.GET("", admin, h.Transfers.List)
			transfers.GET("/incoming", staff, h.Transfers.Incoming)
			transfers.GET("/outgoing", staff, h.Transfers.Outgoing)
			transfers.GET("/:id", h.Transfers.Get)
			transfers.POST("", staff, h.Transfers.Create)
			transfers.POST("/:id/approve", h.Transfers.Approve)
			transfers.POST("/:id/reject", h.Transfers.Reject)
			transfers.POST("/:id/cancel", h.Transfers.Cancel)
		}

		history := v1.Group("/history")
		{
			history.GET("", admin, h.History.List)
			history.GET("/stats", admin, h.History.Stats)
			history.GET("/export", admin, h.History.Export)
			history.GET("/key/:id", h.History.ByKey)
			history.GET("/teacher/:id", h.History.ByTeacher)
		}

		v1.GET("/dashboard", h.Dashboard.Mine)
		v1.GET("/dashboard/admin", admin, h.Dashboard.Admin)
	}

	return r
}
