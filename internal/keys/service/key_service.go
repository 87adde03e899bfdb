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
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

const (
	noteInitial  = "Initial key assignment"
	noteAssigned = "Assigned by admin"
	noteReassign = "Direct reassignment by admin"
	noteReturned = "Returned to management"
)

// KeyService the key registry and direct hand-outs by an administrator
type KeyService interface {
	List(ctx context.Context) ([]dto.KeyResponse, error)
	Get(ctx context.Context, id uint) (*dto.KeyResponse, error)
	// ListByTeacher keys currently held by teacherID
	ListByTeacher(ctx context.Context, caller Caller, teacherID uint) ([]dto.KeyResponse, error)
	Create(ctx context.Context, req *dto.CreateKeyRequest) (*dto.KeyResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateKeyRequest) (*dto.KeyResponse, error)
	Delete(ctx context.Context, id uint) error
	// Assign gives the key to teacherID, taking it from any current holder
	Assign(ctx context.Context, keyID, teacherID uint, notes string) (*dto.KeyResponse, error)
	Unassign(ctx context.Context, keyID uint, notes string) (*dto.KeyResponse, error)
}

type keyService struct {
	repo   *repository.Repository
	dir    Directory
	logger *zap.Logger

	now func() time.Time
}

// NewKeyService creates a KeyService. dir may be nil.
func NewKeyService(repo *repository.Repository, dir Directory, logger *zap.Logger) KeyService {
	return &keyService{repo: repo, dir: dir, logger: logger, now: time.Now}
}

// ────────────────────── reads ──────────────────────

func (s *keyService) List(ctx context.Context) ([]dto.KeyResponse, error) {
	list, err := s.repo.Key.ListWithHolders(ctx)
	if err != nil {
		s.logger.Error("list keys failed", zap.Error(err))
		return nil, err
	}
	return toKeyResponses(ctx, list, newTeacherNames(s.dir, s.logger)), nil
}

func (s *keyService) Get(ctx context.Context, id uint) (*dto.KeyResponse, error) {
	k, err := s.repo.Key.GetWithHolder(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrKeyNotFound)
	}
	resp := toKeyResponse(ctx, k, newTeacherNames(s.dir, s.logger))
	return &resp, nil
}

func (s *keyService) ListByTeacher(ctx context.Context, caller Caller, teacherID uint) ([]dto.KeyResponse, error) {
	if caller.ID != teacherID && caller.Role != roles.Admin && caller.Role != roles.Teacher {
		return nil, ErrKeysAccessDenied
	}
	list, err := s.repo.Key.ListHeldBy(ctx, teacherID)
	if err != nil {
		s.logger.Error("list teacher keys failed", zap.Uint("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}
	return toKeyResponses(ctx, list, newTeacherNames(s.dir, s.logger)), nil
}

// ────────────────────── registry ──────────────────────

func (s *keyService) Create(ctx context.Context, req *dto.CreateKeyRequest) (*dto.KeyResponse, error) {
	code := strings.TrimSpace(req.KeyCode)
	if err := s.codeFree(ctx, code, 0); err != nil {
		return nil, err
	}

	k := &model.Key{
		KeyCode:     code,
		RoomNumber:  strings.TrimSpace(req.RoomNumber),
		Building:    req.Building,
		Floor:       req.Floor,
		Description: req.Description,
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Key.Create(ctx, k); err != nil {
			return err
		}
		if req.TeacherID == 0 {
			return nil
		}
		now := s.now()
		if err := tx.Assignment.Create(ctx, &model.KeyAssignment{
			KeyID: k.ID, TeacherID: req.TeacherID, AssignedAt: now, IsActive: true,
		}); err != nil {
			return err
		}
		return tx.History.Create(ctx, &model.KeyHistory{
			KeyID:       k.ID,
			ToTeacherID: uintPtr(req.TeacherID),
			Action:      model.ActionInitialAssignment,
			Timestamp:   now,
			Notes:       noteInitial,
		})
	})
	if err != nil {
		s.logger.Error("create key failed", zap.String("key_code", code), zap.Error(err))
		return nil, err
	}

	s.logger.Info("key created", zap.Uint("key_id", k.ID), zap.String("key_code", code))
	return s.Get(ctx, k.ID)
}

func (s *keyService) Update(ctx context.Context, id uint, req *dto.UpdateKeyRequest) (*dto.KeyResponse, error) {
	if _, err := s.repo.Key.GetByID(ctx, id); err != nil {
		return nil, notFoundAs(err, ErrKeyNotFound)
	}

	fields := map[string]interface{}{}
	if req.KeyCode != nil {
		code := strings.TrimSpace(*req.KeyCode)
		if err := s.codeFree(ctx, code, id); err != nil {
			return nil, err
		}
		fields["key_code"] = code
	}
	if req.RoomNumber != nil {
		fields["room_number"] = strings.TrimSpace(*req.RoomNumber)
	}
	if req.Building != nil {
		fields["building"] = *req.Building
	}
	if req.Floor != nil {
		fields["floor"] = *req.Floor
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	if err := s.repo.Key.Updates(ctx, id, fields); err != nil {
		s.logger.Error("update key failed", zap.Uint("key_id", id), zap.Error(err))
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *keyService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Key.GetByID(ctx, id); err != nil {
			return notFoundAs(err, ErrKeyNotFound)
		}
		if _, err := tx.Assignment.Active(ctx, id); err == nil {
			return ErrKeyAssigned
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		pending, err := tx.Transfer.HasPending(ctx, id)
		if err != nil {
			return err
		}
		if pending {
			return ErrKeyPendingTransfer
		}
		return tx.Key.Purge(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("key deleted", zap.Uint("key_id", id))
	return nil
}

// codeFree fails with ErrKeyCodeExists when another key already uses code
func (s *keyService) codeFree(ctx context.Context, code string, selfID uint) error {
	existing, err := s.repo.Key.GetByCode(ctx, code)
	if err == nil && existing.ID != selfID {
		return ErrKeyCodeExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// ────────────────────── hand-outs ──────────────────────

func (s *keyService) Assign(ctx context.Context, keyID, teacherID uint, notes string) (*dto.KeyResponse, error) {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Key.GetByID(ctx, keyID); err != nil {
			return notFoundAs(err, ErrKeyNotFound)
		}

		now := s.now()
		entry := &model.KeyHistory{KeyID: keyID, ToTeacherID: uintPtr(teacherID), Timestamp: now}

		current, err := tx.Assignment.Active(ctx, keyID)
		switch {
		case err == nil:
			if current.TeacherID == teacherID {
				return ErrAlreadyHolder
			}
			if err := tx.Assignment.Deactivate(ctx, keyID); err != nil {
				return err
			}
			entry.FromTeacherID = uintPtr(current.TeacherID)
			entry.Action = model.ActionTransfer
			entry.Notes = orDefault(notes, noteReassign)
		case errors.Is(err, gorm.ErrRecordNotFound):
			entry.Action = model.ActionAssignment
			entry.Notes = orDefault(notes, noteAssigned)
		default:
			return err
		}

		if err := tx.History.Create(ctx, entry); err != nil {
			return err
		}
		return tx.Assignment.Create(ctx, &model.KeyAssignment{
			KeyID: keyID, TeacherID: teacherID, AssignedAt: now, IsActive: true,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("key assigned", zap.Uint("key_id", keyID), zap.Uint("teacher_id", teacherID))
	return s.Get(ctx, keyID)
}

func (s *keyService) Unassign(ctx context.Context, keyID uint, notes string) (*dto.KeyResponse, error) {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Key.GetByID(ctx, keyID); err != nil {
			return notFoundAs(err, ErrKeyNotFound)
		}
		current, err := tx.Assignment.Active(ctx, keyID)
		if err != nil {
			return notFoundAs(err, ErrKeyNotAssigned)
		}
		if err := tx.Assignment.Deactivate(ctx, keyID); err != nil {
			return err
		}
		return tx.History.Create(ctx, &model.KeyHistory{
			KeyID:         keyID,
			FromTeacherID: uintPtr(current.TeacherID),
			Action:        model.ActionReturn,
			Timestamp:     s.now(),
			Notes:         orDefault(notes, noteReturned),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("key returned", zap.Uint("key_id", keyID))
	return s.Get(ctx, keyID)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
