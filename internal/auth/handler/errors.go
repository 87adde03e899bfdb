package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/auth/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// Auth service error codes
const (
	CodeInvalidCredentials = 11001
	CodeUserDisabled       = 11002
	CodeUsernameExists     = 11003
	CodeEmailExists        = 11004
	CodeWrongPassword      = 11005
	CodeInvalidRefresh     = 11006

	CodeUserNotFound      = 12001
	CodeRoleNotFound      = 12002
	CodeEmptyUpdate       = 12003
	CodeCannotDeleteSelf  = 12004
	CodeInvalidPermission = 12005

	CodeFacultyNotFound   = 13001
	CodeFacultyNameExists = 13002
	CodeFacultyInUse      = 13003

	CodeDepartmentNotFound   = 14001
	CodeDepartmentNameExists = 14002
	CodeDepartmentInUse      = 14003

	CodeGroupNotFound   = 15001
	CodeGroupNameExists = 15002
	CodeGroupInUse      = 15003

	CodeTeacherNotFound = 16001
	CodeTeacherExists   = 16002

	CodeStudentNotFound     = 17001
	CodeStudentExists       = 17002
	CodeStudentNumberExists = 17003
	CodeInvalidImportFile   = 17004

	CodeSubjectNotFound   = 18001
	CodeSubjectNameExists = 18002
)

// handleError maps service errors to HTTP status and code
func handleError(c *gin.Context, err error) {
	switch {
	// auth
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, CodeInvalidCredentials, err.Error())
	case errors.Is(err, service.ErrUserDisabled):
		response.Forbidden(c, CodeUserDisabled, err.Error())
	case errors.Is(err, service.ErrUsernameExists):
		response.Conflict(c, CodeUsernameExists, err.Error())
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, CodeEmailExists, err.Error())
	case errors.Is(err, service.ErrWrongPassword):
		response.BadRequest(c, CodeWrongPassword, err.Error())
	case errors.Is(err, service.ErrInvalidRefresh):
		response.Unauthorized(c, CodeInvalidRefresh, err.Error())

	// users
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, CodeUserNotFound, err.Error())
	case errors.Is(err, service.ErrRoleNotFound):
		response.BadRequest(c, CodeRoleNotFound, err.Error())
	case errors.Is(err, service.ErrEmptyUpdate):
		response.BadRequest(c, CodeEmptyUpdate, err.Error())
	case errors.Is(err, service.ErrCannotDeleteSelf):
		response.BadRequest(c, CodeCannotDeleteSelf, err.Error())
	case errors.Is(err, service.ErrInvalidPermission):
		response.BadRequest(c, CodeInvalidPermission, err.Error())

	// academic structure
	case errors.Is(err, service.ErrFacultyNotFound):
		response.NotFound(c, CodeFacultyNotFound, err.Error())
	case errors.Is(err, service.ErrFacultyNameExists):
		response.Conflict(c, CodeFacultyNameExists, err.Error())
	case errors.Is(err, service.ErrFacultyInUse):
		response.Conflict(c, CodeFacultyInUse, err.Error())
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, CodeDepartmentNotFound, err.Error())
	case errors.Is(err, service.ErrDepartmentNameExists):
		response.Conflict(c, CodeDepartmentNameExists, err.Error())
	case errors.Is(err, service.ErrDepartmentInUse):
		response.Conflict(c, CodeDepartmentInUse, err.Error())
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, CodeGroupNotFound, err.Error())
	case errors.Is(err, service.ErrGroupNameExists):
		response.Conflict(c, CodeGroupNameExists, err.Error())
	case errors.Is(err, service.ErrGroupInUse):
		response.Conflict(c, CodeGroupInUse, err.Error())
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, CodeSubjectNotFound, err.Error())
	case errors.Is(err, service.ErrSubjectNameExists):
		response.Conflict(c, CodeSubjectNameExists, err.Error())

	// people
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, CodeTeacherNotFound, err.Error())
	case errors.Is(err, service.ErrTeacherExists):
		response.Conflict(c, CodeTeacherExists, err.Error())
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, CodeStudentNotFound, err.Error())
	case errors.Is(err, service.ErrStudentExists):
		response.Conflict(c, CodeStudentExists, err.Error())
	case errors.Is(err, service.ErrStudentNumberExists):
		response.Conflict(c, CodeStudentNumberExists, err.Error())
	case errors.Is(err, service.ErrInvalidImportFile):
		response.BadRequest(c, CodeInvalidImportFile, err.Error())

	default:
		response.InternalError(c)
	}
}
