package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/qr/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// QR service error codes
const (
	CodeInvalidQR       = 41001
	CodeQRExpired       = 41002
	CodeQRUsed          = 41003
	CodeUserNotFound    = 41004
	CodeNotSelf         = 41005
	CodeProfileNotFound = 41006
	CodeNoSchedule      = 41007
	CodeInvalidRange    = 41008
)

// handleError maps service errors to HTTP status and code
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidQR):
		response.BadRequest(c, CodeInvalidQR, err.Error())
	case errors.Is(err, service.ErrQRExpired):
		response.BadRequest(c, CodeQRExpired, err.Error())
	case errors.Is(err, service.ErrQRUsed):
		response.Conflict(c, CodeQRUsed, err.Error())

	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, CodeUserNotFound, err.Error())
	case errors.Is(err, service.ErrNotSelf):
		response.Forbidden(c, CodeNotSelf, err.Error())
	case errors.Is(err, service.ErrProfileNotFound):
		response.NotFound(c, CodeProfileNotFound, err.Error())
	case errors.Is(err, service.ErrNoSchedule):
		response.BadRequest(c, CodeNoSchedule, err.Error())
	case errors.Is(err, service.ErrInvalidRange):
		response.BadRequest(c, CodeInvalidRange, err.Error())

	case errors.Is(err, service.ErrDirectoryDown),
		errors.Is(err, service.ErrScheduleDown),
		errors.Is(err, service.ErrReplayDown):
		response.ServiceUnavailable(c, err.Error())

	default:
		response.InternalError(c)
	}
}
