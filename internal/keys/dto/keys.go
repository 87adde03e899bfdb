package dto

import "github.com/yerk0w/EduLifeFor-merge/internal/keys/model"

// ── keys ──

// CreateKeyRequest POST /keys; teacher_id hands the key out immediately
type CreateKeyRequest struct {
	KeyCode     string `json:"key_code"    binding:"required,max=20"`
	RoomNumber  string `json:"room_number" binding:"required,max=20"`
	Building    string `json:"building"    binding:"max=100"`
	Floor       int    `json:"floor"`
	Description string `json:"description" binding:"max=500"`
	TeacherID   uint   `json:"teacher_id"  binding:"omitempty,min=1"`
}

// UpdateKeyRequest PUT /keys/:id; nil fields are left alone
type UpdateKeyRequest struct {
	KeyCode     *string `json:"key_code"    binding:"omitempty,min=1,max=20"`
	RoomNumber  *string `json:"room_number" binding:"omitempty,min=1,max=20"`
	Building    *string `json:"building"    binding:"omitempty,max=100"`
	Floor       *int    `json:"floor"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// NotesQuery optional ?notes= of assign and unassign
type NotesQuery struct {
	Notes string `form:"notes" binding:"max=500"`
}

// KeyResponse a key with its current holder
type KeyResponse struct {
	ID          uint    `json:"id"`
	KeyCode     string  `json:"key_code"`
	RoomNumber  string  `json:"room_number"`
	Building    string  `json:"building"`
	Floor       int     `json:"floor"`
	Description string  `json:"description"`
	TeacherID   *uint   `json:"teacher_id"`
	TeacherName string  `json:"teacher_name,omitempty"`
	AssignedAt  *string `json:"assigned_at"`
	IsAssigned  bool    `json:"is_assigned"`
}

// ── transfers ──

// CreateTransferRequest POST /transfers; from_teacher_id defaults to the caller
type CreateTransferRequest struct {
	KeyID         uint   `json:"key_id"          binding:"required,min=1"`
	FromTeacherID uint   `json:"from_teacher_id" binding:"omitempty,min=1"`
	ToTeacherID   uint   `json:"to_teacher_id"   binding:"required,min=1"`
	Notes         string `json:"notes"           binding:"max=500"`
}

// TransferListQuery GET /transfers
type TransferListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
}

// RejectQuery POST /transfers/:id/reject
type RejectQuery struct {
	Reason string `form:"reason" binding:"max=500"`
}

// TransferResponse a transfer with the key it moves
type TransferResponse struct {
	ID            uint    `json:"id"`
	KeyID         uint    `json:"key_id"`
	KeyCode       string  `json:"key_code"`
	RoomNumber    string  `json:"room_number"`
	Building      string  `json:"building"`
	FromTeacherID uint    `json:"from_teacher_id"`
	ToTeacherID   uint    `json:"to_teacher_id"`
	Status        string  `json:"status"`
	RequestedAt   string  `json:"requested_at"`
	CompletedAt   *string `json:"completed_at"`
	Notes         string  `json:"notes"`
}

// ── history ──

// HistoryQuery GET /history
type HistoryQuery struct {
	Limit  int `form:"limit"  binding:"omitempty,min=1,max=1000"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// HistoryResponse one key movement
type HistoryResponse struct {
	ID            uint   `json:"id"`
	KeyID         uint   `json:"key_id"`
	KeyCode       string `json:"key_code"`
	RoomNumber    string `json:"room_number"`
	Building      string `json:"building"`
	FromTeacherID *uint  `json:"from_teacher_id"`
	ToTeacherID   *uint  `json:"to_teacher_id"`
	Action        string `json:"action"`
	Timestamp     string `json:"timestamp"`
	Notes         string `json:"notes"`
}

// HistoryPage GET /history
type HistoryPage struct {
	History []HistoryResponse `json:"history"`
	Total   int64             `json:"total"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
}

// TeacherActivityResponse a teacher ranked by history rows
type TeacherActivityResponse struct {
	TeacherID   uint   `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
	Count       int64  `json:"count"`
}

// HistoryStatsResponse GET /history/stats
type HistoryStatsResponse struct {
	ActionCounts map[string]int64          `json:"action_counts"`
	TopTeachers  []TeacherActivityResponse `json:"top_teachers"`
	TopKeys      []model.KeyTransferCount  `json:"top_keys"`
}

// ── dashboards ──

// DashboardResponse GET /dashboard
type DashboardResponse struct {
	TeacherID        uint               `json:"teacher_id"`
	KeysCount        int                `json:"keys_count"`
	Keys             []KeyResponse      `json:"keys"`
	IncomingRequests []TransferResponse `json:"incoming_requests"`
	OutgoingRequests []TransferResponse `json:"outgoing_requests"`
}

// TransferStats status totals and approvals per day
type TransferStats struct {
	StatusCounts   map[string]int64 `json:"status_counts"`
	DailyTransfers map[string]int64 `json:"daily_transfers"`
}

// AdminDashboardResponse GET /dashboard/admin
type AdminDashboardResponse struct {
	TotalKeys        int64              `json:"total_keys"`
	AssignedKeys     int64              `json:"assigned_keys"`
	UnassignedKeys   int64              `json:"unassigned_keys"`
	PendingTransfers int64              `json:"pending_transfers"`
	TransferStats    TransferStats      `json:"transfer_stats"`
	RecentTransfers  []TransferResponse `json:"recent_transfers"`
}
