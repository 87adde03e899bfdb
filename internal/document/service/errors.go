package service

import "errors"

var (
	// users
	ErrUserNotFound    = errors.New("user not found")
	ErrDirectoryDown   = errors.New("auth service unavailable")
	ErrAccountInactive = errors.New("Аккаунт не активирован")

	// registration
	ErrRequestNotFound = errors.New("registration request not found or already processed")
	ErrRequestPending  = errors.New("a registration request is already pending")

	// documents
	ErrDocumentNotFound     = errors.New("document not found")
	ErrDocumentAccessDenied = errors.New("no access to this document")
	ErrRecipientNotAllowed  = errors.New("only an admin may address a document")
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrFileNotFound         = errors.New("document has no file")
	ErrInvalidFile          = errors.New("file must be a non-empty PDF document")

	// templates
	ErrTemplateNotFound     = errors.New("template not found")
	ErrTemplateAccessDenied = errors.New("template is not available for your role")
	ErrTemplateFileRequired = errors.New("template file is required")
	ErrEmptyUpdate          = errors.New("nothing to update")
)
