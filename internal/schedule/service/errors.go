package service

import "errors"

var (
	// schedule
	ErrEntryNotFound     = errors.New("schedule entry not found")
	ErrInvalidTimeRange  = errors.New("time_start must be before time_end")
	ErrUnknownSubject    = errors.New("subject does not exist")
	ErrUnknownClassroom  = errors.New("classroom does not exist")
	ErrUnknownLessonType = errors.New("lesson type does not exist")

	// catalog
	ErrSubjectNotFound     = errors.New("subject not found")
	ErrSubjectNameExists   = errors.New("subject name already exists")
	ErrSubjectInUse        = errors.New("subject is used by the schedule")
	ErrClassroomNotFound   = errors.New("classroom not found")
	ErrClassroomNameExists = errors.New("classroom name already exists")
	ErrClassroomInUse      = errors.New("classroom is used by the schedule")

	// notifications
	ErrGroupAccessDenied = errors.New("no access to this group's notifications")
	ErrDirectoryDown     = errors.New("auth service unavailable")
)
