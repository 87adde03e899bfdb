// Package handler holds request helpers shared by every service's handlers.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// ParamID reads a positive integer path parameter.
// On failure it writes a 400 and the caller must return.
func ParamID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		response.BadRequest(c, response.CodeBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// QueryUint reads an optional positive integer query parameter; absent means 0
func QueryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.BadRequest(c, response.CodeBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// BindError writes the common 400 for a body or query that failed validation
func BindError(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request parameters", err.Error())
}
