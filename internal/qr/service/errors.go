package service

import "errors"

var (
	// scanning
	ErrInvalidQR  = errors.New("invalid QR code")
	ErrQRExpired  = errors.New("QR code has expired")
	ErrQRUsed     = errors.New("QR code has already been used")
	ErrReplayDown = errors.New("replay store unavailable")

	// users
	ErrUserNotFound    = errors.New("user not found")
	ErrNotSelf         = errors.New("you may only act on your own attendance")
	ErrProfileNotFound = errors.New("teacher or student profile not found")
	ErrNoSchedule      = errors.New("schedule is only available for teachers and students")

	// siblings
	ErrDirectoryDown = errors.New("auth service unavailable")
	ErrScheduleDown  = errors.New("schedule service unavailable")

	// stats
	ErrInvalidRange = errors.New("start_date must not be after end_date")
	ErrExportFailed = errors.New("failed to build attendance workbook")
)
