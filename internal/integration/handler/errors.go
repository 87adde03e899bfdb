package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/integration/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// Integration service error codes
const (
	CodeGroupNotFound   = 61001
	CodeStudentNotFound = 61002
	CodeTeacherNotFound = 61003
	CodeNoGroup         = 61004
	CodeNotSelf         = 61005
	CodeNotAllowed      = 61006
	CodeInvalidRange    = 61007
	CodeRejected        = 61008
)

// handleError maps service errors to HTTP status and code
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, CodeGroupNotFound, err.Error())
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, CodeStudentNotFound, err.Error())
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, CodeTeacherNotFound, err.Error())
	case errors.Is(err, service.ErrNoGroup):
		response.BadRequest(c, CodeNoGroup, err.Error())

	case errors.Is(err, service.ErrNotSelf):
		response.Forbidden(c, CodeNotSelf, err.Error())
	case errors.Is(err, service.ErrNotAllowed):
		response.Forbidden(c, CodeNotAllowed, err.Error())

	case errors.Is(err, service.ErrInvalidRange):
		response.BadRequest(c, CodeInvalidRange, err.Error())
	case errors.Is(err, service.ErrRejected):
		response.BadRequest(c, CodeRejected, err.Error())

	case errors.Is(err, service.ErrAuthDown),
		errors.Is(err, service.ErrScheduleDown),
		errors.Is(err, service.ErrQRDown),
		errors.Is(err, service.ErrDocumentDown):
		response.ServiceUnavailable(c, err.Error())

	default:
		response.InternalError(c)
	}
}
