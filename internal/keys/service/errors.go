package service

import "errors"

var (
	// keys
	ErrKeyNotFound        = errors.New("key not found")
	ErrKeyCodeExists      = errors.New("key code already exists")
	ErrKeyAssigned        = errors.New("key is currently assigned")
	ErrKeyPendingTransfer = errors.New("key has a pending transfer")
	ErrAlreadyHolder      = errors.New("key is already assigned to this teacher")
	ErrKeyNotAssigned     = errors.New("key is not currently assigned")
	ErrNoFields           = errors.New("no fields to update")
	ErrKeysAccessDenied   = errors.New("no access to this teacher's keys")

	// transfers
	ErrTransferNotFound     = errors.New("pending transfer not found")
	ErrTransferExists       = errors.New("key already has a pending transfer")
	ErrKeyNotHeld           = errors.New("key is not held by the sending teacher")
	ErrSameTeacher          = errors.New("cannot transfer a key to its holder")
	ErrTransferAccessDenied = errors.New("not a party to this transfer")
	ErrHolderChanged        = errors.New("key changed hands since the request")

	// history
	ErrHistoryAccessDenied = errors.New("no access to this teacher's history")
	ErrExportFailed        = errors.New("export failed")
)
