package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/config"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// TokenBlacklist revokes tokens before they expire
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	RevokeSession(ctx context.Context, sid string, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, sid string) (bool, error)
}

// AuthService login, registration and token lifecycle
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout revokes the access token and ends its session, so the paired
	// refresh token stops working too
	Logout(ctx context.Context, claims *jwt.Claims) error
	GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error
	// EnsureBootstrapAdmin seeds the configured admin when no admin exists yet
	EnsureBootstrapAdmin(ctx context.Context) error
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates an AuthService. blacklist may be nil.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. load user
	user, err := s.repo.User.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("load user failed", zap.Error(err))
		return nil, err
	}

	// 2. verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Disabled {
		return nil, ErrUserDisabled
	}

	// 3. issue token pair
	access, refresh, err := s.jwtMgr.GenerateTokenPair(user.ID, user.Username, user.RoleName())
	if err != nil {
		s.logger.Error("generate token pair failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user logged in", zap.Uint("user_id", user.ID), zap.String("role", user.RoleName()))

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.RoleName(),
	}, nil
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.checkUnique(ctx, username, email); err != nil {
		return nil, err
	}

	role, err := s.repo.Role.GetByName(ctx, roles.Student)
	if err != nil {
		s.logger.Error("load student role failed", zap.Error(err))
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}
		return tx.Profile.Create(ctx, model.NewProfile(user.ID))
	})
	if err != nil {
		s.logger.Error("register user failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	user.Role = role

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", username))
	return toUserResponse(user), nil
}

// checkUnique rejects a taken username or email
func (s *authService) checkUnique(ctx context.Context, username, email string) error {
	if _, err := s.repo.User.GetByUsername(ctx, username); err == nil {
		return ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// ────────────────────── Tokens ──────────────────────

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidRefresh
	}
	if s.blacklist != nil {
		revoked, err := s.blacklist.IsSessionRevoked(ctx, claims.SessionID)
		if err != nil {
			s.logger.Error("session check failed", zap.String("sid", claims.SessionID), zap.Error(err))
			return nil, err
		}
		if revoked {
			return nil, ErrInvalidRefresh
		}
	}

	// the role may have changed since the refresh token was issued
	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if user.Disabled {
		return nil, ErrUserDisabled
	}

	access, err := s.jwtMgr.GenerateSessionAccessToken(claims.SessionID, user.ID, user.Username, user.RoleName())
	if err != nil {
		s.logger.Error("generate access token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.RoleName(),
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.blacklist == nil {
		s.logger.Warn("token blacklist unavailable, logout is client-side only")
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Error("blacklist token failed", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}
	if err := s.blacklist.RevokeSession(ctx, claims.SessionID, s.jwtMgr.RefreshTokenTTL()); err != nil {
		s.logger.Error("revoke session failed", zap.String("sid", claims.SessionID), zap.Error(err))
		return err
	}
	s.logger.Info("user logged out", zap.Uint("user_id", claims.UserID))
	return nil
}

// ────────────────────── Current user ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("update password failed", zap.Uint("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Bootstrap ──────────────────────

func (s *authService) EnsureBootstrapAdmin(ctx context.Context) error {
	boot := s.cfg.Auth.BootstrapAdmin
	if boot.Password == "" {
		return nil
	}

	count, err := s.repo.User.CountByRole(ctx, roles.Admin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	role, err := s.repo.Role.GetByName(ctx, roles.Admin)
	if err != nil {
		return err
	}
	hash, err := hashPassword(boot.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     boot.Username,
		Email:        strings.ToLower(boot.Email),
		FullName:     boot.FullName,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}
		return tx.Profile.Create(ctx, model.NewProfile(user.ID))
	})
	if err != nil {
		return err
	}

	s.logger.Info("bootstrap admin created", zap.String("username", user.Username))
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
