package service

import (
	"context"

	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
)

// Directory the auth service calls this service depends on.
// *client.AuthClient implements it.
type Directory interface {
	GetUser(ctx context.Context, userID uint) (*client.UserInfo, error)
	GetTeacher(ctx context.Context, teacherID uint) (*client.TeacherInfo, error)
	GetTeacherByUser(ctx context.Context, userID uint) (*client.TeacherInfo, error)
	GetStudentByUser(ctx context.Context, userID uint) (*client.StudentInfo, error)
}

// Catalog the schedule service calls. *client.ScheduleClient implements it.
type Catalog interface {
	GetSubject(ctx context.Context, subjectID uint) (*client.SubjectInfo, error)
	ListSchedule(ctx context.Context, f client.ScheduleFilter) ([]client.ScheduleEntry, error)
}

// Caller the authenticated user behind a request
type Caller struct {
	ID   uint
	Role string
}
