package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/keys/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/repository"
)

const (
	noteApproved       = "Key transfer approved"
	noteRejected       = "Request rejected"
	rejectionReasonSep = " | Rejection reason: "
)

// TransferService teacher-to-teacher key hand-overs
type TransferService interface {
	// List every transfer, optionally narrowed to one status
	List(ctx context.Context, status string) ([]dto.TransferResponse, error)
	// Incoming pending transfers addressed to the caller
	Incoming(ctx context.Context, caller Caller) ([]dto.TransferResponse, error)
	// Outgoing every transfer the caller sent
	Outgoing(ctx context.Context, caller Caller) ([]dto.TransferResponse, error)
	Get(ctx context.Context, caller Caller, id uint) (*dto.TransferResponse, error)

	Create(ctx context.Context, caller Caller, req *dto.CreateTransferRequest) (*dto.TransferResponse, error)
	Approve(ctx context.Context, caller Caller, id uint) (*dto.TransferResponse, error)
	Reject(ctx context.Context, caller Caller, id uint, reason string) (*dto.TransferResponse, error)
	Cancel(ctx context.Context, caller Caller, id uint) (*dto.TransferResponse, error)
}

type transferService struct {
	repo   *repository.Repository
	logger *zap.Logger

	now func() time.Time
}

// NewTransferService creates a TransferService
func NewTransferService(repo *repository.Repository, logger *zap.Logger) TransferService {
	return &transferService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── reads ──────────────────────

func (s *transferService) List(ctx context.Context, status string) ([]dto.TransferResponse, error) {
	return s.list(ctx, repository.TransferFilter{Status: status})
}

func (s *transferService) Incoming(ctx context.Context, caller Caller) ([]dto.TransferResponse, error) {
	return s.list(ctx, repository.TransferFilter{Status: model.TransferPending, ToTeacherID: caller.ID})
}

func (s *transferService) Outgoing(ctx context.Context, caller Caller) ([]dto.TransferResponse, error) {
	return s.list(ctx, repository.TransferFilter{FromTeacherID: caller.ID})
}

func (s *transferService) list(ctx context.Context, f repository.TransferFilter) ([]dto.TransferResponse, error) {
	list, err := s.repo.Transfer.List(ctx, f)
	if err != nil {
		s.logger.Error("list transfers failed", zap.Error(err))
		return nil, err
	}
	return toTransferResponses(list), nil
}

func (s *transferService) Get(ctx context.Context, caller Caller, id uint) (*dto.TransferResponse, error) {
	t, err := s.repo.Transfer.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrTransferNotFound)
	}
	if !caller.IsAdmin() && caller.ID != t.FromTeacherID && caller.ID != t.ToTeacherID {
		return nil, ErrTransferAccessDenied
	}
	resp := toTransferResponse(t)
	return &resp, nil
}

// ────────────────────── request ──────────────────────

func (s *transferService) Create(ctx context.Context, caller Caller, req *dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	from := req.FromTeacherID
	if from == 0 {
		from = caller.ID
	}
	if !caller.IsAdmin() && from != caller.ID {
		return nil, ErrTransferAccessDenied
	}
	if from == req.ToTeacherID {
		return nil, ErrSameTeacher
	}

	t := &model.KeyTransfer{
		KeyID:         req.KeyID,
		FromTeacherID: from,
		ToTeacherID:   req.ToTeacherID,
		Status:        model.TransferPending,
		RequestedAt:   s.now(),
		Notes:         strings.TrimSpace(req.Notes),
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Key.GetByID(ctx, req.KeyID); err != nil {
			return notFoundAs(err, ErrKeyNotFound)
		}
		holder, err := tx.Assignment.Active(ctx, req.KeyID)
		if err != nil {
			return notFoundAs(err, ErrKeyNotHeld)
		}
		if holder.TeacherID != from {
			return ErrKeyNotHeld
		}
		pending, err := tx.Transfer.HasPending(ctx, req.KeyID)
		if err != nil {
			return err
		}
		if pending {
			return ErrTransferExists
		}
		return tx.Transfer.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("key transfer requested",
		zap.Uint("transfer_id", t.ID),
		zap.Uint("key_id", t.KeyID),
		zap.Uint("from", from),
		zap.Uint("to", t.ToTeacherID),
	)
	return s.reload(ctx, t.ID)
}

// ────────────────────── decisions ──────────────────────

func (s *transferService) Approve(ctx context.Context, caller Caller, id uint) (*dto.TransferResponse, error) {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		t, err := pendingTransfer(ctx, tx, id)
		if err != nil {
			return err
		}
		if !caller.IsAdmin() && caller.ID != t.ToTeacherID {
			return ErrTransferAccessDenied
		}

		holder, err := tx.Assignment.Active(ctx, t.KeyID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if holder == nil || holder.TeacherID != t.FromTeacherID {
			return ErrHolderChanged
		}

		now := s.now()
		if err := tx.Transfer.Finish(ctx, id, model.TransferApproved, now, t.Notes); err != nil {
			return notFoundAs(err, ErrTransferNotFound)
		}
		if err := tx.Assignment.Deactivate(ctx, t.KeyID); err != nil {
			return err
		}
		if err := tx.Assignment.Create(ctx, &model.KeyAssignment{
			KeyID: t.KeyID, TeacherID: t.ToTeacherID, AssignedAt: now, IsActive: true,
		}); err != nil {
			return err
		}
		return tx.History.Create(ctx, &model.KeyHistory{
			KeyID:         t.KeyID,
			FromTeacherID: uintPtr(t.FromTeacherID),
			ToTeacherID:   uintPtr(t.ToTeacherID),
			Action:        model.ActionTransfer,
			Timestamp:     now,
			Notes:         orDefault(t.Notes, noteApproved),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("key transfer approved", zap.Uint("transfer_id", id), zap.Uint("by", caller.ID))
	return s.reload(ctx, id)
}

func (s *transferService) Reject(ctx context.Context, caller Caller, id uint, reason string) (*dto.TransferResponse, error) {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		t, err := pendingTransfer(ctx, tx, id)
		if err != nil {
			return err
		}
		if !caller.IsAdmin() && caller.ID != t.ToTeacherID {
			return ErrTransferAccessDenied
		}
		return notFoundAs(tx.Transfer.Finish(ctx, id, model.TransferRejected, s.now(), rejectionNotes(t.Notes, reason)), ErrTransferNotFound)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("key transfer rejected", zap.Uint("transfer_id", id), zap.Uint("by", caller.ID))
	return s.reload(ctx, id)
}

func (s *transferService) Cancel(ctx context.Context, caller Caller, id uint) (*dto.TransferResponse, error) {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		t, err := pendingTransfer(ctx, tx, id)
		if err != nil {
			return err
		}
		if !caller.IsAdmin() && caller.ID != t.FromTeacherID {
			return ErrTransferAccessDenied
		}
		return notFoundAs(tx.Transfer.Finish(ctx, id, model.TransferCancelled, s.now(), t.Notes), ErrTransferNotFound)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("key transfer cancelled", zap.Uint("transfer_id", id), zap.Uint("by", caller.ID))
	return s.reload(ctx, id)
}

// pendingTransfer loads a transfer that still awaits a decision
func pendingTransfer(ctx context.Context, tx *repository.Repository, id uint) (*model.KeyTransfer, error) {
	t, err := tx.Transfer.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrTransferNotFound)
	}
	if !t.IsPending() {
		return nil, ErrTransferNotFound
	}
	return t, nil
}

func rejectionNotes(notes, reason string) string {
	reason = orDefault(reason, noteRejected)
	if strings.TrimSpace(notes) == "" {
		return reason
	}
	return notes + rejectionReasonSep + reason
}

func (s *transferService) reload(ctx context.Context, id uint) (*dto.TransferResponse, error) {
	t, err := s.repo.Transfer.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrTransferNotFound)
	}
	resp := toTransferResponse(t)
	return &resp, nil
}
