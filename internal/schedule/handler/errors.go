package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// Schedule service error codes
const (
	CodeEntryNotFound     = 21001
	CodeInvalidTimeRange  = 21002
	CodeUnknownSubject    = 21003
	CodeUnknownClassroom  = 21004
	CodeUnknownLessonType = 21005

	CodeSubjectNotFound   = 22001
	CodeSubjectNameExists = 22002
	CodeSubjectInUse      = 22003

	CodeClassroomNotFound   = 23001
	CodeClassroomNameExists = 23002
	CodeClassroomInUse      = 23003

	CodeGroupAccessDenied = 25001
)

// handleError maps service errors to HTTP status and code
func handleError(c *gin.Context, err error) {
	switch {
	// schedule
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, CodeEntryNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, CodeInvalidTimeRange, err.Error())
	case errors.Is(err, service.ErrUnknownSubject):
		response.BadRequest(c, CodeUnknownSubject, err.Error())
	case errors.Is(err, service.ErrUnknownClassroom):
		response.BadRequest(c, CodeUnknownClassroom, err.Error())
	case errors.Is(err, service.ErrUnknownLessonType):
		response.BadRequest(c, CodeUnknownLessonType, err.Error())

	// catalog
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, CodeSubjectNotFound, err.Error())
	case errors.Is(err, service.ErrSubjectNameExists):
		response.Conflict(c, CodeSubjectNameExists, err.Error())
	case errors.Is(err, service.ErrSubjectInUse):
		response.Conflict(c, CodeSubjectInUse, err.Error())
	case errors.Is(err, service.ErrClassroomNotFound):
		response.NotFound(c, CodeClassroomNotFound, err.Error())
	case errors.Is(err, service.ErrClassroomNameExists):
		response.Conflict(c, CodeClassroomNameExists, err.Error())
	case errors.Is(err, service.ErrClassroomInUse):
		response.Conflict(c, CodeClassroomInUse, err.Error())

	// notifications
	case errors.Is(err, service.ErrGroupAccessDenied):
		response.Forbidden(c, CodeGroupAccessDenied, err.Error())
	case errors.Is(err, service.ErrDirectoryDown):
		response.ServiceUnavailable(c, err.Error())

	default:
		response.InternalError(c)
	}
}
