package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// UserHandler local user mirrors
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a UserHandler
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

const ctxUser = "document_user"

// SyncUser makes sure every authenticated caller has a local mirror.
// Runs after JWTAuth.
func (h *UserHandler) SyncUser(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := middleware.MustGetCaller(c)
		if !ok {
			c.Abort()
			return
		}
		u, err := h.svc.Sync(c.Request.Context(), service.Identity{
			UserID:   userID,
			Username: c.GetString(middleware.CtxUsername),
			Role:     role,
		})
		if err != nil {
			logger.Error("user sync failed", zap.Uint("user_id", userID), zap.Error(err))
			response.InternalError(c)
			c.Abort()
			return
		}
		c.Set(ctxUser, u)
		c.Next()
	}
}

// RequireActive blocks callers whose sign-up has not been approved yet.
// Runs after SyncUser.
func (h *UserHandler) RequireActive(c *gin.Context) {
	u, ok := c.Get(ctxUser)
	if !ok {
		response.InternalError(c)
		c.Abort()
		return
	}
	if err := service.CheckActive(u.(*model.User)); err != nil {
		handleError(c, err)
		c.Abort()
		return
	}
	c.Next()
}

// GetMe local mirror of the caller
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.MustGetUserID(c)
	if !ok {
		return
	}
	u, err := h.svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, u)
}
