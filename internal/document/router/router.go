package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	baserouter "github.com/yerk0w/EduLifeFor-merge/internal/api/router"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/handler"
	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
	"github.com/yerk0w/EduLifeFor-merge/pkg/redis"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// Setup builds the document service engine
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := baserouter.NewEngine(cfg, logger)

	admin := middleware.RoleAuth(roles.Admin)
	limited := middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	v1 := r.Group("/api/v1")

	// ── public ──
	v1.POST("/register", limited, h.Registration.Register)

	// ── authenticated, approval not required ──
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb), h.User.SyncUser(logger))
	{
		authorized.GET("/users/me", h.User.GetMe)
		authorized.POST("/registration-requests", h.Registration.Create)
	}

	// ── active accounts only ──
	active := authorized.Group("", h.User.RequireActive)
	{
		requests := active.Group("/registration-requests", admin)
		{
			requests.GET("", h.Registration.List)
			requests.GET("/pending", h.Registration.ListPending)
			requests.GET("/:id", h.Registration.Get)
			requests.PATCH("/:id", h.Registration.Process)
		}

		documents := active.Group("/documents")
		{
			documents.POST("", h.Document.Create)
			documents.POST("/upload", h.Document.Upload)
			documents.GET("", h.Document.List)
			documents.GET("/all", admin, h.Document.ListAll)
			documents.GET("/stats", admin, h.Document.Stats)
			documents.GET("/filter", admin, h.Document.Filter)
			documents.GET("/:id", h.Document.Get)
			documents.PATCH("/:id/review", admin, h.Document.Review)
			documents.GET("/:id/download", h.Document.Download)
		}

		templates := active.Group("/templates")
		{
			templates.GET("", h.Template.List)
			templates.GET("/all", admin, h.Template.ListAll)
			templates.GET("/:id", h.Template.Get)
			templates.GET("/:id/download", h.Template.Download)
			templates.POST("", admin, h.Template.Create)
			templates.PUT("/:id", admin, h.Template.Update)
			templates.DELETE("/:id", admin, h.Template.Delete)
		}
	}

	return r
}
