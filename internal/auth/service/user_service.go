package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/auth/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/auth/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// UserService account administration, profiles and permission checks
type UserService interface {
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id, callerID uint) error
	ListRoles(ctx context.Context) ([]dto.RoleResponse, error)

	GetProfile(ctx context.Context, userID uint) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	CheckPermission(ctx context.Context, role, permission string) (bool, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates a UserService
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filters := &repository.UserListFilters{
		Role:    req.Role,
		Keyword: strings.TrimSpace(req.Keyword),
	}
	users, total, err := s.repo.User.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if req.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if _, err := s.repo.User.GetByUsername(ctx, *req.Username); err == nil {
			return nil, ErrUsernameExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = *req.Username
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
				return nil, ErrEmailExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}

	// role name wins over role_id
	var role *model.Role
	switch {
	case req.Role != nil:
		role, err = s.repo.Role.GetByName(ctx, *req.Role)
	case req.RoleID != nil:
		role, err = s.repo.Role.GetByID(ctx, *req.RoleID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	if role != nil {
		user.RoleID = role.ID
		user.Role = role
	}

	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("update user failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

// ────────────────────── Delete ──────────────────────

// Delete removes the account together with its profile, teacher and student records
func (s *userService) Delete(ctx context.Context, id, callerID uint) error {
	if id == callerID {
		return ErrCannotDeleteSelf
	}
	if _, err := s.loadUser(ctx, id); err != nil {
		return err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		teacher, err := tx.Teacher.GetByUserID(ctx, id)
		switch {
		case err == nil:
			if err := tx.Department.ClearHeadTeacher(ctx, teacher.ID); err != nil {
				return err
			}
			if err := tx.Teacher.Delete(ctx, teacher.ID); err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := tx.Student.DeleteByUserID(ctx, id); err != nil {
			return err
		}
		if err := tx.Profile.DeleteByUserID(ctx, id); err != nil {
			return err
		}
		return tx.User.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("delete user failed", zap.Uint("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("user deleted", zap.Uint("id", id), zap.Uint("by", callerID))
	return nil
}

func (s *userService) ListRoles(ctx context.Context) ([]dto.RoleResponse, error) {
	list, err := s.repo.Role.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		var perms interface{}
		if err := json.Unmarshal(r.Permissions, &perms); err != nil {
			perms = map[string]interface{}{}
		}
		result = append(result, dto.RoleResponse{
			ID:          r.ID,
			Name:        r.Name,
			DisplayName: roles.DisplayName(r.Name),
			Permissions: perms,
		})
	}
	return result, nil
}

// ────────────────────── Profile ──────────────────────

func (s *userService) GetProfile(ctx context.Context, userID uint) (*dto.ProfileResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.ensureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(user, profile), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.ensureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Telegram != nil {
		profile.Telegram = NormalizeTelegram(*req.Telegram)
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.BirthDate != nil {
		profile.BirthDate = *req.BirthDate
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.City != nil {
		profile.City = strings.TrimSpace(*req.City)
	}
	if req.Theme != nil {
		profile.Theme = *req.Theme
	}
	if req.Language != nil {
		profile.Language = *req.Language
	}
	if req.NotificationPreferences != nil {
		prefs := map[string]bool{}
		_ = json.Unmarshal(profile.NotificationPreferences, &prefs)
		for k, v := range req.NotificationPreferences {
			prefs[k] = v
		}
		raw, err := json.Marshal(prefs)
		if err != nil {
			return nil, err
		}
		profile.NotificationPreferences = raw
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if req.FullName != nil {
			user.FullName = strings.TrimSpace(*req.FullName)
			if err := tx.User.Update(ctx, user); err != nil {
				return err
			}
		}
		return tx.Profile.Update(ctx, profile)
	})
	if err != nil {
		s.logger.Error("update profile failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toProfileResponse(user, profile), nil
}

// ensureProfile returns the profile, creating a default one for legacy accounts
func (s *userService) ensureProfile(ctx context.Context, userID uint) (*model.UserProfile, error) {
	profile, err := s.repo.Profile.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	profile = model.NewProfile(userID)
	if err := s.repo.Profile.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// NormalizeTelegram trims the handle and prefixes "@"
func NormalizeTelegram(handle string) string {
	handle = strings.TrimSpace(handle)
	if handle == "" || strings.HasPrefix(handle, "@") {
		return handle
	}
	return "@" + handle
}

// ────────────────────── Permissions ──────────────────────

// CheckPermission looks up section.action in the role's permission document.
// Admin is always allowed.
func (s *userService) CheckPermission(ctx context.Context, roleName, permission string) (bool, error) {
	section, action, ok := strings.Cut(permission, ".")
	if !ok || section == "" || action == "" {
		return false, ErrInvalidPermission
	}
	if roleName == roles.Admin {
		return true, nil
	}

	role, err := s.repo.Role.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	var perms map[string]json.RawMessage
	if err := json.Unmarshal(role.Permissions, &perms); err != nil {
		s.logger.Warn("malformed role permissions", zap.String("role", roleName), zap.Error(err))
		return false, nil
	}

	if raw, ok := perms["all"]; ok {
		var all bool
		if json.Unmarshal(raw, &all) == nil && all {
			return true, nil
		}
	}

	var actions []string
	if err := json.Unmarshal(perms[section], &actions); err != nil {
		return false, nil
	}
	for _, a := range actions {
		if a == action {
			return true, nil
		}
	}
	return false, nil
}

func (s *userService) loadUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("load user failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}
