package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/document/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/document/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// RegistrationService sign-up and role requests
type RegistrationService interface {
	// Register signs the user up in auth and files a request for the wanted role.
	// Errors from auth are returned as *client.RemoteError.
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Create(ctx context.Context, userID uint, req *dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error)
	List(ctx context.Context, status string) ([]dto.RegistrationResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.RegistrationResponse, error)
	Process(ctx context.Context, id uint, req *dto.ProcessRegistrationRequest) (*dto.RegistrationResponse, error)
}

type registrationService struct {
	repo   *repository.Repository
	dir    Directory
	logger *zap.Logger

	// runs best-effort follow-ups after a response
	async func(fn func())
	now   func() time.Time
}

// NewRegistrationService creates a RegistrationService
func NewRegistrationService(repo *repository.Repository, dir Directory, logger *zap.Logger) RegistrationService {
	return &registrationService{
		repo:   repo,
		dir:    dir,
		logger: logger,
		async:  func(fn func()) { go fn() },
		now:    time.Now,
	}
}

func (s *registrationService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if s.dir == nil {
		return nil, ErrDirectoryDown
	}
	info, err := s.dir.Register(ctx, client.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		s.logger.Warn("auth registration failed", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	u := &model.User{
		ID:       info.ID,
		Username: info.Username,
		Email:    info.Email,
		FullName: info.FullName,
		Role:     info.Role,
		IsActive: false,
	}
	rr := &model.RegistrationRequest{
		UserID:        info.ID,
		RequestedRole: req.RequestedRole,
		Status:        model.StatusPending,
	}
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Save(ctx, u); err != nil {
			return err
		}
		return tx.Registration.Create(ctx, rr)
	})
	if err != nil {
		s.logger.Error("store registration failed", zap.Uint("user_id", info.ID), zap.Error(err))
		return nil, err
	}
	rr.User = u

	s.logger.Info("user registered",
		zap.Uint("user_id", u.ID),
		zap.String("requested_role", req.RequestedRole),
	)
	return &dto.RegisterResponse{
		User:    toUserResponse(u),
		Request: toRegistrationResponse(rr),
	}, nil
}

func (s *registrationService) Create(ctx context.Context, userID uint, req *dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error) {
	pending, err := s.repo.Registration.HasPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrRequestPending
	}

	rr := &model.RegistrationRequest{
		UserID:        userID,
		RequestedRole: req.RequestedRole,
		Status:        model.StatusPending,
		Comment:       req.Comment,
	}
	if err := s.repo.Registration.Create(ctx, rr); err != nil {
		s.logger.Error("create registration request failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, rr.ID)
}

func (s *registrationService) List(ctx context.Context, status string) ([]dto.RegistrationResponse, error) {
	list, err := s.repo.Registration.List(ctx, status)
	if err != nil {
		return nil, err
	}
	result := make([]dto.RegistrationResponse, 0, len(list))
	for i := range list {
		result = append(result, toRegistrationResponse(&list[i]))
	}
	return result, nil
}

func (s *registrationService) GetByID(ctx context.Context, id uint) (*dto.RegistrationResponse, error) {
	rr, err := s.repo.Registration.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrRequestNotFound)
	}
	resp := toRegistrationResponse(rr)
	return &resp, nil
}

// Process approves or rejects a pending request. Approval activates the
// mirror with the requested role; auth is updated afterwards, best effort.
func (s *registrationService) Process(ctx context.Context, id uint, req *dto.ProcessRegistrationRequest) (*dto.RegistrationResponse, error) {
	rr, err := s.repo.Registration.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrRequestNotFound)
	}
	if rr.Status != model.StatusPending {
		return nil, ErrRequestNotFound
	}

	now := s.now()
	rr.Status = req.Status
	rr.Comment = req.Comment
	rr.ProcessedAt = &now

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Registration.Update(ctx, rr); err != nil {
			return err
		}
		if req.Status != model.StatusApproved {
			return nil
		}
		u, err := tx.User.GetByID(ctx, rr.UserID)
		if err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		u.IsActive = true
		u.Role = rr.RequestedRole
		if err := tx.User.Save(ctx, u); err != nil {
			return err
		}
		rr.User = u
		return nil
	})
	if err != nil {
		s.logger.Error("process registration request failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("registration request processed",
		zap.Uint("id", id),
		zap.String("status", req.Status),
	)
	if req.Status == model.StatusApproved {
		s.pushRole(ctx, rr.UserID, rr.RequestedRole)
	}

	resp := toRegistrationResponse(rr)
	return &resp, nil
}

func (s *registrationService) pushRole(ctx context.Context, userID uint, role string) {
	if s.dir == nil || !roles.Valid(role) {
		return
	}
	bg := client.Detach(ctx)
	s.async(func() {
		if err := s.dir.UpdateUserRole(bg, userID, role); err != nil {
			s.logger.Warn("auth role update failed", zap.Uint("user_id", userID), zap.String("role", role), zap.Error(err))
		}
	})
}
