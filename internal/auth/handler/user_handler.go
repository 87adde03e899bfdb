package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/api/handler"
	"github.com/yerk0w/EduLifeFor-merge/internal/api/middleware"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// UserHandler users, roles, profile and permission checks
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers paged user list
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize())
}

// GetUser admin or self
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	callerID, _, ok := middleware.MustGetCaller(c)
	if !ok {
		return
	}
	if !middleware.IsAdmin(c) && callerID != id {
		response.Forbidden(c, response.CodeForbidden, "access denied")
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, user)
}

// UpdateUser partial update by an admin
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, user)
}

// DeleteUser remove an account and everything attached to it
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}
	callerID, ok := middleware.MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListRoles roles with display names
// GET /api/v1/roles
func (h *UserHandler) ListRoles(c *gin.Context) {
	list, err := h.userSvc.ListRoles(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, list)
}

// GetProfile
// GET /api/v1/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, profile)
}

// UpdateProfile
// PUT /api/v1/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	profile, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, profile)
}

// CheckPermission whether the caller's role grants section.action
// GET /api/v1/permissions/check?permission=schedule.read
func (h *UserHandler) CheckPermission(c *gin.Context) {
	var req dto.PermissionCheckRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BindError(c, err)
		return
	}
	role, ok := middleware.MustGetRole(c)
	if !ok {
		return
	}

	allowed, err := h.userSvc.CheckPermission(c.Request.Context(), role, req.Permission)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, dto.PermissionCheckResponse{Permission: req.Permission, Allowed: allowed})
}
