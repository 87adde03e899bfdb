package dto

import "github.com/yerk0w/EduLifeFor-merge/pkg/client"

// ── QR codes ──

// GenerateRequest POST /qr
type GenerateRequest struct {
	SubjectID uint `json:"subject_id" binding:"required,min=1"`
	ShiftID   uint `json:"shift_id"   binding:"required,min=1"`
	TeacherID uint `json:"teacher_id" binding:"required,min=1"`
}

// GenerateResponse a fresh QR payload
type GenerateResponse struct {
	QRCode    string `json:"qr_code"`
	TokenID   string `json:"token_id"`
	ExpiresAt string `json:"expires_at"`
}

// ValidateRequest POST /validate_qr; user_id defaults to the caller
type ValidateRequest struct {
	UserID uint   `json:"user_id" binding:"omitempty,min=1"`
	QRCode string `json:"qr_code" binding:"required"`
}

// SessionData recorded attendance with display names
type SessionData struct {
	SessionID   uint   `json:"session_id"`
	UserID      uint   `json:"user_id"`
	UserName    string `json:"user_name"`
	SubjectID   uint   `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	ShiftID     uint   `json:"shift_id"`
	TeacherID   uint   `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
	DayOfWeek   int    `json:"day_of_week"`
	Timestamp   string `json:"timestamp"`
}

// ValidateResponse outcome of a scan
type ValidateResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	SessionData *SessionData `json:"session_data,omitempty"`
}

// ── sessions ──

// SessionResponse one attendance row
type SessionResponse struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	SessionTime string `json:"session_time"`
	SubjectID   uint   `json:"subject_id"`
	ShiftID     uint   `json:"shift_id"`
	TeacherID   uint   `json:"teacher_id"`
	DayOfWeek   int    `json:"day_of_week"`
}

// UserSessionsResponse GET /sessions/:user_id
type UserSessionsResponse struct {
	UserID   uint              `json:"user_id"`
	Sessions []SessionResponse `json:"sessions"`
}

// ── schedule proxy ──

// ScheduleQuery optional date bounds forwarded to the schedule service
type ScheduleQuery struct {
	DateFrom string `form:"date_from" binding:"omitempty,isodate"`
	DateTo   string `form:"date_to"   binding:"omitempty,isodate"`
}

// UserScheduleResponse GET /schedule/:user_id
type UserScheduleResponse struct {
	UserID   uint                   `json:"user_id"`
	Role     string                 `json:"role"`
	Schedule []client.ScheduleEntry `json:"schedule"`
}

// ── stats ──

// StatsRequest GET /stats query; both dates inclusive
type StatsRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,isodate"`
	EndDate   string `form:"end_date"   binding:"omitempty,isodate"`
}
