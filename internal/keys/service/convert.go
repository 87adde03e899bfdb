package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/keys/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/model"
)

const timeLayout = time.RFC3339

func notFoundAs(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timeLayout)
	return &s
}

func toKeyResponse(ctx context.Context, k *model.KeyWithHolder, names *teacherNames) dto.KeyResponse {
	resp := dto.KeyResponse{
		ID:          k.ID,
		KeyCode:     k.KeyCode,
		RoomNumber:  k.RoomNumber,
		Building:    k.Building,
		Floor:       k.Floor,
		Description: k.Description,
		TeacherID:   k.TeacherID,
		AssignedAt:  formatTime(k.AssignedAt),
		IsAssigned:  k.TeacherID != nil,
	}
	if k.TeacherID != nil {
		resp.TeacherName = names.name(ctx, *k.TeacherID)
	}
	return resp
}

func toKeyResponses(ctx context.Context, list []model.KeyWithHolder, names *teacherNames) []dto.KeyResponse {
	result := make([]dto.KeyResponse, 0, len(list))
	for i := range list {
		result = append(result, toKeyResponse(ctx, &list[i], names))
	}
	return result
}

func toTransferResponse(t *model.KeyTransfer) dto.TransferResponse {
	resp := dto.TransferResponse{
		ID:            t.ID,
		KeyID:         t.KeyID,
		FromTeacherID: t.FromTeacherID,
		ToTeacherID:   t.ToTeacherID,
		Status:        t.Status,
		RequestedAt:   t.RequestedAt.Format(timeLayout),
		CompletedAt:   formatTime(t.CompletedAt),
		Notes:         t.Notes,
	}
	if t.Key != nil {
		resp.KeyCode = t.Key.KeyCode
		resp.RoomNumber = t.Key.RoomNumber
		resp.Building = t.Key.Building
	}
	return resp
}

func toTransferResponses(list []model.KeyTransfer) []dto.TransferResponse {
	result := make([]dto.TransferResponse, 0, len(list))
	for i := range list {
		result = append(result, toTransferResponse(&list[i]))
	}
	return result
}

func toHistoryResponse(h *model.KeyHistory) dto.HistoryResponse {
	resp := dto.HistoryResponse{
		ID:            h.ID,
		KeyID:         h.KeyID,
		FromTeacherID: h.FromTeacherID,
		ToTeacherID:   h.ToTeacherID,
		Action:        h.Action,
		Timestamp:     h.Timestamp.Format(timeLayout),
		Notes:         h.Notes,
	}
	if h.Key != nil {
		resp.KeyCode = h.Key.KeyCode
		resp.RoomNumber = h.Key.RoomNumber
		resp.Building = h.Key.Building
	}
	return resp
}

func toHistoryResponses(list []model.KeyHistory) []dto.HistoryResponse {
	result := make([]dto.HistoryResponse, 0, len(list))
	for i := range list {
		result = append(result, toHistoryResponse(&list[i]))
	}
	return result
}

func uintPtr(v uint) *uint { return &v }
