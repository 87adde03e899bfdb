package service

import (
	"context"
	"mime/multipart"

	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
)

// Directory the auth service calls this service depends on.
// *client.AuthClient implements it.
type Directory interface {
	GetUser(ctx context.Context, userID uint) (*client.UserInfo, error)
	GetStudentByUser(ctx context.Context, userID uint) (*client.StudentInfo, error)
	GetTeacherByUser(ctx context.Context, userID uint) (*client.TeacherInfo, error)
	Register(ctx context.Context, req client.RegisterRequest) (*client.UserInfo, error)
	UpdateUserRole(ctx context.Context, userID uint, role string) error
}

// FileStore where uploaded PDFs live. *storage.LocalStorage implements it.
type FileStore interface {
	SavePDF(fh *multipart.FileHeader, subDir string) (string, error)
	FullPath(rel string) (string, error)
	Exists(rel string) bool
	Delete(rel string) error
}

// Caller the authenticated user behind a request
type Caller struct {
	ID   uint
	Role string
}
