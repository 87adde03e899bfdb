package dto

import "github.com/yerk0w/EduLifeFor-merge/internal/dto"

// ── auth ──

// LoginRequest login by username and password
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest self-registration, always creates a student
type RegisterRequest struct {
	Username string `json:"username"  binding:"required,min=3,max=50"`
	Email    string `json:"email"     binding:"required,email,max=100"`
	FullName string `json:"full_name" binding:"required,max=100"`
	Password string `json:"password"  binding:"required,min=6,max=72"`
}

// RefreshTokenRequest exchange a refresh token for a new access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest change own password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// TokenResponse issued token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // seconds
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
}

// UserResponse user without secrets
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	RoleID    uint   `json:"role_id"`
	Disabled  bool   `json:"disabled"`
	CreatedAt string `json:"created_at"`
}

// ── users ──

// UserListRequest GET /users query
type UserListRequest struct {
	dto.PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=admin teacher student"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// UpdateUserRequest partial update by an admin.
// Role takes a role name and wins over RoleID when both are set.
type UpdateUserRequest struct {
	Username *string `json:"username"  binding:"omitempty,min=3,max=50"`
	Email    *string `json:"email"     binding:"omitempty,email,max=100"`
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
	RoleID   *uint   `json:"role_id"   binding:"omitempty,min=1"`
	Role     *string `json:"role"      binding:"omitempty,oneof=admin teacher student"`
	Disabled *bool   `json:"disabled"`
}

// IsEmpty no field was supplied
func (r *UpdateUserRequest) IsEmpty() bool {
	return r.Username == nil && r.Email == nil && r.FullName == nil &&
		r.RoleID == nil && r.Role == nil && r.Disabled == nil
}

// RoleResponse role with its display name
type RoleResponse struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name"`
	Permissions interface{} `json:"permissions"`
}

// ── profile ──

// ProfileResponse the caller's profile joined with the account
type ProfileResponse struct {
	UserID                  uint            `json:"user_id"`
	Username                string          `json:"username"`
	Email                   string          `json:"email"`
	FullName                string          `json:"full_name"`
	Role                    string          `json:"role"`
	Telegram                string          `json:"telegram"`
	PhoneNumber             string          `json:"phone_number"`
	BirthDate               string          `json:"birth_date"`
	Gender                  string          `json:"gender"`
	City                    string          `json:"city"`
	NotificationPreferences map[string]bool `json:"notification_preferences"`
	Theme                   string          `json:"theme"`
	Language                string          `json:"language"`
}

// UpdateProfileRequest partial profile update
type UpdateProfileRequest struct {
	FullName                *string         `json:"full_name"    binding:"omitempty,max=100"`
	Telegram                *string         `json:"telegram"     binding:"omitempty,max=100"`
	PhoneNumber             *string         `json:"phone_number" binding:"omitempty,max=30"`
	BirthDate               *string         `json:"birth_date"   binding:"omitempty,isodate"`
	Gender                  *string         `json:"gender"       binding:"omitempty,max=20"`
	City                    *string         `json:"city"         binding:"omitempty,max=100"`
	NotificationPreferences map[string]bool `json:"notification_preferences"`
	Theme                   *string         `json:"theme"        binding:"omitempty,oneof=light dark"`
	Language                *string         `json:"language"     binding:"omitempty,oneof=ru kk en"`
}

// PermissionCheckRequest GET /permissions/check query
type PermissionCheckRequest struct {
	Permission string `form:"permission" binding:"required"`
}

// PermissionCheckResponse result of a permission check
type PermissionCheckResponse struct {
	Permission string `json:"permission"`
	Allowed    bool   `json:"allowed"`
}
