package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/keys/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

// Key management error codes
const (
	CodeKeyNotFound        = 51001
	CodeKeyCodeExists      = 51002
	CodeKeyAssigned        = 51003
	CodeKeyPendingTransfer = 51004
	CodeAlreadyHolder      = 51005
	CodeKeyNotAssigned     = 51006
	CodeNoFields           = 51007
	CodeKeysAccessDenied   = 51008

	CodeTransferNotFound     = 52001
	CodeTransferExists       = 52002
	CodeKeyNotHeld           = 52003
	CodeSameTeacher          = 52004
	CodeTransferAccessDenied = 52005
	CodeHolderChanged        = 52006

	CodeHistoryAccessDenied = 53001
	CodeExportFailed        = 53002
)

// handleError maps service errors to HTTP status and code
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrKeyNotFound):
		response.NotFound(c, CodeKeyNotFound, err.Error())
	case errors.Is(err, service.ErrKeyCodeExists):
		response.Conflict(c, CodeKeyCodeExists, err.Error())
	case errors.Is(err, service.ErrKeyAssigned):
		response.Conflict(c, CodeKeyAssigned, err.Error())
	case errors.Is(err, service.ErrKeyPendingTransfer):
		response.Conflict(c, CodeKeyPendingTransfer, err.Error())
	case errors.Is(err, service.ErrAlreadyHolder):
		response.BadRequest(c, CodeAlreadyHolder, err.Error())
	case errors.Is(err, service.ErrKeyNotAssigned):
		response.BadRequest(c, CodeKeyNotAssigned, err.Error())
	case errors.Is(err, service.ErrNoFields):
		response.BadRequest(c, CodeNoFields, err.Error())
	case errors.Is(err, service.ErrKeysAccessDenied):
		response.Forbidden(c, CodeKeysAccessDenied, err.Error())

	case errors.Is(err, service.ErrTransferNotFound):
		response.NotFound(c, CodeTransferNotFound, err.Error())
	case errors.Is(err, service.ErrTransferExists):
		response.Conflict(c, CodeTransferExists, err.Error())
	case errors.Is(err, service.ErrKeyNotHeld):
		response.BadRequest(c, CodeKeyNotHeld, err.Error())
	case errors.Is(err, service.ErrSameTeacher):
		response.BadRequest(c, CodeSameTeacher, err.Error())
	case errors.Is(err, service.ErrTransferAccessDenied):
		response.Forbidden(c, CodeTransferAccessDenied, err.Error())
	case errors.Is(err, service.ErrHolderChanged):
		response.Conflict(c, CodeHolderChanged, err.Error())

	case errors.Is(err, service.ErrHistoryAccessDenied):
		response.Forbidden(c, CodeHistoryAccessDenied, err.Error())
	case errors.Is(err, service.ErrExportFailed):
		response.Error(c, http.StatusInternalServerError, CodeExportFailed, err.Error())

	default:
		response.InternalError(c)
	}
}
