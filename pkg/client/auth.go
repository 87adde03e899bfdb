package client

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// UserInfo user as returned by the auth service
type UserInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	Disabled  bool   `json:"disabled"`
	CreatedAt string `json:"created_at"`
}

// TeacherInfo teacher as returned by the auth service
type TeacherInfo struct {
	ID             uint   `json:"id"`
	UserID         uint   `json:"user_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	DepartmentID   uint   `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Position       string `json:"position"`
	Telegram       string `json:"telegram"`
}

// StudentInfo student as returned by the auth service
type StudentInfo struct {
	ID             uint   `json:"id"`
	UserID         uint   `json:"user_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	GroupID        uint   `json:"group_id"`
	GroupName      string `json:"group_name"`
	FacultyID      uint   `json:"faculty_id"`
	FacultyName    string `json:"faculty_name"`
	StudentNumber  string `json:"student_number"`
	EnrollmentYear int    `json:"enrollment_year"`
	Telegram       string `json:"telegram"`
}

// GroupInfo group as returned by the auth service
type GroupInfo struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	FacultyID   uint   `json:"faculty_id"`
	FacultyName string `json:"faculty_name"`
	Year        int    `json:"year"`
}

// RegisterRequest self-registration payload
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// AuthClient typed client of the auth service
type AuthClient struct {
	c *Client
}

// NewAuthClient creates an AuthClient
func NewAuthClient(opts Options, logger *zap.Logger) *AuthClient {
	return &AuthClient{c: New("auth", opts, logger)}
}

func id(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

// GetUser GET /api/v1/users/:id
func (a *AuthClient) GetUser(ctx context.Context, userID uint) (*UserInfo, error) {
	var out UserInfo
	if err := a.c.Get(ctx, "/api/v1/users/"+id(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTeacher GET /api/v1/teachers/:id
func (a *AuthClient) GetTeacher(ctx context.Context, teacherID uint) (*TeacherInfo, error) {
	var out TeacherInfo
	if err := a.c.Get(ctx, "/api/v1/teachers/"+id(teacherID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTeacherByUser GET /api/v1/teachers/by-user/:user_id
func (a *AuthClient) GetTeacherByUser(ctx context.Context, userID uint) (*TeacherInfo, error) {
	var out TeacherInfo
	if err := a.c.Get(ctx, "/api/v1/teachers/by-user/"+id(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetGroup GET /api/v1/groups/:id
func (a *AuthClient) GetGroup(ctx context.Context, groupID uint) (*GroupInfo, error) {
	var out GroupInfo
	if err := a.c.Get(ctx, "/api/v1/groups/"+id(groupID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStudent GET /api/v1/students/:id
func (a *AuthClient) GetStudent(ctx context.Context, studentID uint) (*StudentInfo, error) {
	var out StudentInfo
	if err := a.c.Get(ctx, "/api/v1/students/"+id(studentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStudentByUser GET /api/v1/students/by-user/:user_id
func (a *AuthClient) GetStudentByUser(ctx context.Context, userID uint) (*StudentInfo, error) {
	var out StudentInfo
	if err := a.c.Get(ctx, "/api/v1/students/by-user/"+id(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStudentsByGroup GET /api/v1/students/by-group/:group_id
func (a *AuthClient) GetStudentsByGroup(ctx context.Context, groupID uint) ([]StudentInfo, error) {
	var out []StudentInfo
	if err := a.c.Get(ctx, "/api/v1/students/by-group/"+id(groupID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Register POST /api/v1/auth/register
func (a *AuthClient) Register(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	var out UserInfo
	if err := a.c.Post(ctx, "/api/v1/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUserRole PUT /api/v1/users/:id with a role name
func (a *AuthClient) UpdateUserRole(ctx context.Context, userID uint, role string) error {
	body := map[string]string{"role": role}
	if err := a.c.Put(ctx, "/api/v1/users/"+id(userID), body, nil); err != nil {
		return fmt.Errorf("update role of user %d: %w", userID, err)
	}
	return nil
}
