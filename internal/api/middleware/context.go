package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// MustGetUserID reads the caller id set by JWTAuth.
// On failure it writes a 401 and the handler must return.
func MustGetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return 0, false
	}
	return id, true
}

// MustGetRole reads the caller role set by JWTAuth
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(CtxRole)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetCaller reads id and role together
func MustGetCaller(c *gin.Context) (uint, string, bool) {
	id, ok := MustGetUserID(c)
	if !ok {
		return 0, "", false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return 0, "", false
	}
	return id, role, true
}

// GetClaims returns the parsed token claims, nil when unauthenticated
func GetClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

// IsAdmin reports whether the caller is an admin
func IsAdmin(c *gin.Context) bool {
	return c.GetString(CtxRole) == roles.Admin
}
