package dto

import "encoding/json"

// ── schedule ──

// ScheduleFilter GET /schedule and /schedule/export.ics query
type ScheduleFilter struct {
	Date        string `form:"date"         binding:"omitempty,isodate"`
	DateFrom    string `form:"date_from"    binding:"omitempty,isodate"`
	DateTo      string `form:"date_to"      binding:"omitempty,isodate"`
	TeacherID   uint   `form:"teacher_id"`
	GroupID     uint   `form:"group_id"`
	ClassroomID uint   `form:"classroom_id"`
}

// CreateScheduleRequest new lesson
type CreateScheduleRequest struct {
	Date         string `json:"date"           binding:"required,isodate"`
	TimeStart    string `json:"time_start"     binding:"required,hhmm"`
	TimeEnd      string `json:"time_end"       binding:"required,hhmm"`
	SubjectID    uint   `json:"subject_id"     binding:"required,min=1"`
	TeacherID    uint   `json:"teacher_id"     binding:"required,min=1"`
	GroupID      uint   `json:"group_id"       binding:"required,min=1"`
	ClassroomID  uint   `json:"classroom_id"   binding:"required,min=1"`
	LessonTypeID uint   `json:"lesson_type_id" binding:"required,min=1"`
}

// UpdateScheduleRequest partial update
type UpdateScheduleRequest struct {
	Date         *string `json:"date"           binding:"omitempty,isodate"`
	TimeStart    *string `json:"time_start"     binding:"omitempty,hhmm"`
	TimeEnd      *string `json:"time_end"       binding:"omitempty,hhmm"`
	SubjectID    *uint   `json:"subject_id"     binding:"omitempty,min=1"`
	TeacherID    *uint   `json:"teacher_id"     binding:"omitempty,min=1"`
	GroupID      *uint   `json:"group_id"       binding:"omitempty,min=1"`
	ClassroomID  *uint   `json:"classroom_id"   binding:"omitempty,min=1"`
	LessonTypeID *uint   `json:"lesson_type_id" binding:"omitempty,min=1"`
}

// ScheduleResponse lesson with local names and auth enrichment
type ScheduleResponse struct {
	ID                uint   `json:"id"`
	Date              string `json:"date"`
	TimeStart         string `json:"time_start"`
	TimeEnd           string `json:"time_end"`
	SubjectID         uint   `json:"subject_id"`
	SubjectName       string `json:"subject_name"`
	TeacherID         uint   `json:"teacher_id"`
	TeacherName       string `json:"teacher_name"`
	TeacherDepartment string `json:"teacher_department"`
	GroupID           uint   `json:"group_id"`
	GroupName         string `json:"group_name"`
	FacultyName       string `json:"faculty_name"`
	ClassroomID       uint   `json:"classroom_id"`
	ClassroomName     string `json:"classroom_name"`
	LessonTypeID      uint   `json:"lesson_type_id"`
	LessonTypeName    string `json:"lesson_type_name"`
}

// ── catalog ──

// SubjectRequest create or replace a subject
type SubjectRequest struct {
	Name        string `json:"name"        binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// SubjectResponse subject
type SubjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ClassroomRequest create or replace a classroom
type ClassroomRequest struct {
	Name     string `json:"name"     binding:"required,max=50"`
	Building string `json:"building" binding:"max=100"`
	Capacity int    `json:"capacity" binding:"min=0,max=10000"`
}

// ClassroomResponse classroom
type ClassroomResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Building string `json:"building"`
	Capacity int    `json:"capacity"`
}

// LessonTypeResponse lesson type
type LessonTypeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ── notifications ──

// NotificationResponse stored schedule change
type NotificationResponse struct {
	ID           uint            `json:"id"`
	ScheduleID   uint            `json:"schedule_id"`
	ChangeType   string          `json:"change_type"`
	PreviousData json.RawMessage `json:"previous_data"`
	NewData      json.RawMessage `json:"new_data"`
	IsSent       bool            `json:"is_sent"`
	SentAt       *string         `json:"sent_at"`
	CreatedAt    string          `json:"created_at"`
}

// DispatchResult outcome of a delivery run
type DispatchResult struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
}
