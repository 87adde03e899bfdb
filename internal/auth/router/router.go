package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	baserouter "github.com/yerk0w/EduLifeFor-merge/internal/api/router"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/handler"
	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
	"github.com/yerk0w/EduLifeFor-merge/pkg/redis"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// Setup builds the auth service engine
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := baserouter.NewEngine(cfg, logger)

	limited := middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	admin := middleware.RoleAuth(roles.Admin)

	v1 := r.Group("/api/v1")
	{
		// public
		auth := v1.Group("/auth")
		{
			auth.POST("/login", limited, h.Auth.Login)
			auth.POST("/register", limited, h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			users := authorized.Group("/users")
			{
				users.GET("", admin, h.User.ListUsers)
				users.GET("/:id", h.User.GetUser) // admin or self
				users.PUT("/:id", admin, h.User.UpdateUser)
				users.DELETE("/:id", admin, h.User.DeleteUser)
			}

			authorized.GET("/roles", admin, h.User.ListRoles)
			authorized.GET("/profile", h.User.GetProfile)
			authorized.PUT("/profile", h.User.UpdateProfile)
			authorized.GET("/permissions/check", h.User.CheckPermission)

			faculties := authorized.Group("/faculties")
			{
				faculties.GET("", h.Academic.ListFaculties)
				faculties.GET("/:id", h.Academic.GetFaculty)
				faculties.POST("", admin, h.Academic.CreateFaculty)
				faculties.PUT("/:id", admin, h.Academic.UpdateFaculty)
				faculties.DELETE("/:id", admin, h.Academic.DeleteFaculty)
			}

			departments := authorized.Group("/departments")
			{
				departments.GET("", h.Academic.ListDepartments)
				departments.GET("/:id", h.Academic.GetDepartment)
				departments.POST("", admin, h.Academic.CreateDepartment)
				departments.PUT("/:id", admin, h.Academic.UpdateDepartment)
				departments.DELETE("/:id", admin, h.Academic.DeleteDepartment)
			}

			groups := authorized.Group("/groups")
			{
				groups.GET("", h.Academic.ListGroups)
				groups.GET("/:id", h.Academic.GetGroup)
				groups.POST("", admin, h.Academic.CreateGroup)
				groups.PUT("/:id", admin, h.Academic.UpdateGroup)
				groups.DELETE("/:id", admin, h.Academic.DeleteGroup)
			}

			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Academic.ListSubjects)
				subjects.GET("/:id", h.Academic.GetSubject)
				subjects.POST("", admin, h.Academic.CreateSubject)
				subjects.PUT("/:id", admin, h.Academic.UpdateSubject)
				subjects.DELETE("/:id", admin, h.Academic.DeleteSubject)
			}

			teachers := authorized.Group("/teachers")
			{
				teachers.GET("", h.People.ListTeachers)
				teachers.GET("/by-user/:user_id", h.People.GetTeacherByUser)
				teachers.GET("/:id", h.People.GetTeacher)
				teachers.POST("", admin, h.People.CreateTeacher)
				teachers.PUT("/:id", admin, h.People.UpdateTeacher)
				teachers.DELETE("/:id", admin, h.People.DeleteTeacher)
			}

			students := authorized.Group("/students")
			{
				students.GET("", h.People.ListStudents)
				students.GET("/by-user/:user_id", h.People.GetStudentByUser)
				students.GET("/by-group/:group_id", h.People.ListStudentsByGroup)
				students.GET("/:id", h.People.GetStudent)
				students.POST("", admin, h.People.CreateStudent)
				students.POST("/import", admin, h.People.ImportStudents)
				students.PUT("/:id", admin, h.People.UpdateStudent)
				students.DELETE("/:id", admin, h.People.DeleteStudent)
			}
		}
	}

	return r
}
