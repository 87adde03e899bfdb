package client

import (
	"context"

	"go.uber.org/zap"
)

// SessionInfo one attendance mark as returned by the QR service
type SessionInfo struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	SessionTime string `json:"session_time"`
	SubjectID   uint   `json:"subject_id"`
	ShiftID     uint   `json:"shift_id"`
	TeacherID   uint   `json:"teacher_id"`
	DayOfWeek   int    `json:"day_of_week"`
}

// QRClient typed client of the QR attendance service
type QRClient struct {
	c *Client
}

// NewQRClient creates a QRClient
func NewQRClient(opts Options, logger *zap.Logger) *QRClient {
	return &QRClient{c: New("qr", opts, logger)}
}

// Sessions GET /api/v1/sessions/:user_id
func (q *QRClient) Sessions(ctx context.Context, userID uint) ([]SessionInfo, error) {
	var out struct {
		UserID   uint          `json:"user_id"`
		Sessions []SessionInfo `json:"sessions"`
	}
	if err := q.c.Get(ctx, "/api/v1/sessions/"+id(userID), nil, &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}
