package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
)

// Directory the auth service lookups this service depends on.
// *client.AuthClient implements it.
type Directory interface {
	GetTeacher(ctx context.Context, teacherID uint) (*client.TeacherInfo, error)
	GetTeacherByUser(ctx context.Context, userID uint) (*client.TeacherInfo, error)
	GetGroup(ctx context.Context, groupID uint) (*client.GroupInfo, error)
	GetStudentByUser(ctx context.Context, userID uint) (*client.StudentInfo, error)
	GetStudentsByGroup(ctx context.Context, groupID uint) ([]client.StudentInfo, error)
}

// lookup memoizes teacher and group lookups for the lifetime of one request.
// Failures are cached as nil so a down auth service costs one call per id.
type lookup struct {
	dir      Directory
	logger   *zap.Logger
	teachers map[uint]*client.TeacherInfo
	groups   map[uint]*client.GroupInfo
}

func newLookup(dir Directory, logger *zap.Logger) *lookup {
	return &lookup{
		dir:      dir,
		logger:   logger,
		teachers: make(map[uint]*client.TeacherInfo),
		groups:   make(map[uint]*client.GroupInfo),
	}
}

func (l *lookup) teacher(ctx context.Context, id uint) *client.TeacherInfo {
	if t, ok := l.teachers[id]; ok {
		return t
	}
	var t *client.TeacherInfo
	if l.dir != nil {
		var err error
		t, err = l.dir.GetTeacher(ctx, id)
		if err != nil {
			l.logger.Warn("teacher lookup failed, using fallback", zap.Uint("teacher_id", id), zap.Error(err))
			t = nil
		}
	}
	l.teachers[id] = t
	return t
}

func (l *lookup) group(ctx context.Context, id uint) *client.GroupInfo {
	if g, ok := l.groups[id]; ok {
		return g
	}
	var g *client.GroupInfo
	if l.dir != nil {
		var err error
		g, err = l.dir.GetGroup(ctx, id)
		if err != nil {
			l.logger.Warn("group lookup failed, using fallback", zap.Uint("group_id", id), zap.Error(err))
			g = nil
		}
	}
	l.groups[id] = g
	return g
}

func (l *lookup) teacherName(ctx context.Context, id uint) string {
	if t := l.teacher(ctx, id); t != nil {
		return t.FullName
	}
	return ""
}
