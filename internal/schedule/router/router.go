package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	baserouter "github.com/yerk0w/EduLifeFor-merge/internal/api/router"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/handler"
	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
	"github.com/yerk0w/EduLifeFor-merge/pkg/redis"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// Setup builds the schedule service engine
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := baserouter.NewEngine(cfg, logger)

	admin := middleware.RoleAuth(roles.Admin)
	staff := middleware.RoleAuth(roles.Admin, roles.Teacher)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		schedule := v1.Group("/schedule")
		{
			schedule.GET("", h.Schedule.List)
			schedule.GET("/export.ics", h.Schedule.ExportICS)
			schedule.GET("/:id", h.Schedule.Get)
			schedule.POST("", staff, h.Schedule.Create)
			schedule.PUT("/:id", staff, h.Schedule.Update)
			schedule.DELETE("/:id", staff, h.Schedule.Delete)
		}

		subjects := v1.Group("/subjects")
		{
			subjects.GET("", h.Catalog.ListSubjects)
			subjects.GET("/:id", h.Catalog.GetSubject)
			subjects.POST("", admin, h.Catalog.CreateSubject)
			subjects.PUT("/:id", admin, h.Catalog.UpdateSubject)
			subjects.DELETE("/:id", admin, h.Catalog.DeleteSubject)
		}

		classrooms := v1.Group("/classrooms")
		{
			classrooms.GET("", h.Catalog.ListClassrooms)
			classrooms.GET("/:id", h.Catalog.GetClassroom)
			classrooms.POST("", admin, h.Catalog.CreateClassroom)
			classrooms.PUT("/:id", admin, h.Catalog.UpdateClassroom)
			classrooms.DELETE("/:id", admin, h.Catalog.DeleteClassroom)
		}

		v1.GET("/lesson-types", h.Catalog.ListLessonTypes)

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", admin, h.Notification.ListPending)
			notifications.POST("/send", admin, h.Notification.Send)
			notifications.GET("/group/:group_id", h.Notification.ListForGroup)
		}
	}

	return r
}
