package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/document/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	apperrors "github.com/yerk0w/EduLifeFor-merge/pkg/errors"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// Document service error codes
const (
	CodeUserNotFound    = 31001
	CodeRequestNotFound = 31002
	CodeRequestPending  = 31003
	CodeAccountInactive = 31004

	CodeDocumentNotFound     = 32001
	CodeDocumentAccessDenied = 32002
	CodeRecipientNotAllowed  = 32003
	CodeRecipientNotFound    = 32004
	CodeFileNotFound         = 32005
	CodeInvalidFile          = 32006

	CodeTemplateNotFound     = 33001
	CodeTemplateAccessDenied = 33002
	CodeTemplateFileRequired = 33003
	CodeEmptyUpdate          = 33004
)

// handleError maps service errors to HTTP status and code
func handleError(c *gin.Context, err error) {
	switch {
	// users + registration
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, CodeUserNotFound, err.Error())
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, CodeRequestNotFound, err.Error())
	case errors.Is(err, service.ErrRequestPending):
		response.Conflict(c, CodeRequestPending, err.Error())
	case errors.Is(err, service.ErrAccountInactive):
		response.BadRequest(c, CodeAccountInactive, err.Error())
	case errors.Is(err, service.ErrDirectoryDown):
		response.ServiceUnavailable(c, err.Error())

	// documents
	case errors.Is(err, service.ErrDocumentNotFound):
		response.NotFound(c, CodeDocumentNotFound, err.Error())
	case errors.Is(err, service.ErrDocumentAccessDenied):
		response.Forbidden(c, CodeDocumentAccessDenied, err.Error())
	case errors.Is(err, service.ErrRecipientNotAllowed):
		response.Forbidden(c, CodeRecipientNotAllowed, err.Error())
	case errors.Is(err, service.ErrRecipientNotFound):
		response.NotFound(c, CodeRecipientNotFound, err.Error())
	case errors.Is(err, service.ErrFileNotFound):
		response.NotFound(c, CodeFileNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidFile):
		response.BadRequest(c, CodeInvalidFile, err.Error())

	// templates
	case errors.Is(err, service.ErrTemplateNotFound):
		response.NotFound(c, CodeTemplateNotFound, err.Error())
	case errors.Is(err, service.ErrTemplateAccessDenied):
		response.Forbidden(c, CodeTemplateAccessDenied, err.Error())
	case errors.Is(err, service.ErrTemplateFileRequired):
		response.BadRequest(c, CodeTemplateFileRequired, err.Error())
	case errors.Is(err, service.ErrEmptyUpdate):
		response.BadRequest(c, CodeEmptyUpdate, err.Error())

	default:
		handleRemoteError(c, err)
	}
}

// handleRemoteError passes an auth service rejection through with its own status and code
func handleRemoteError(c *gin.Context, err error) {
	if rerr, ok := client.AsRemote(err); ok && rerr.Status >= http.StatusBadRequest && rerr.Status < http.StatusInternalServerError {
		code := rerr.Code
		if code == 0 {
			code = response.CodeBadRequest
		}
		response.Error(c, rerr.Status, code, rerr.Message)
		return
	}
	if errors.Is(err, apperrors.ErrUnavailable) {
		response.ServiceUnavailable(c, "auth service unavailable")
		return
	}
	response.InternalError(c)
}
