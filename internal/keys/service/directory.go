package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

const unknownTeacher = "Неизвестный"

// Directory the auth service calls this service depends on.
// *client.AuthClient implements it.
type Directory interface {
	GetUser(ctx context.Context, userID uint) (*client.UserInfo, error)
}

// Caller the authenticated user behind a request
type Caller struct {
	ID   uint
	Role string
}

// IsAdmin reports whether the caller is an administrator
func (c Caller) IsAdmin() bool { return c.Role == roles.Admin }

// teacherNames memoizes auth user names for the span of one request
type teacherNames struct {
	dir    Directory
	logger *zap.Logger
	cache  map[uint]string
}

func newTeacherNames(dir Directory, logger *zap.Logger) *teacherNames {
	return &teacherNames{dir: dir, logger: logger, cache: map[uint]string{}}
}

func (n *teacherNames) name(ctx context.Context, userID uint) string {
	if name, ok := n.cache[userID]; ok {
		return name
	}
	name := unknownTeacher
	if n.dir != nil {
		u, err := n.dir.GetUser(ctx, userID)
		switch {
		case err != nil:
			n.logger.Warn("teacher name lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		case u.FullName != "":
			name = u.FullName
		case u.Username != "":
			name = u.Username
		}
	}
	n.cache[userID] = name
	return name
}
