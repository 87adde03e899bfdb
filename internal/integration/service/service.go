package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	apperrors "github.com/yerk0w/EduLifeFor-merge/pkg/errors"
)

// Directory the auth service calls. *client.AuthClient implements it.
type Directory interface {
	GetTeacher(ctx context.Context, teacherID uint) (*client.TeacherInfo, error)
	GetGroup(ctx context.Context, groupID uint) (*client.GroupInfo, error)
	GetStudent(ctx context.Context, studentID uint) (*client.StudentInfo, error)
	GetStudentsByGroup(ctx context.Context, groupID uint) ([]client.StudentInfo, error)
}

// Timetable the schedule service calls. *client.ScheduleClient implements it.
type Timetable interface {
	ListSchedule(ctx context.Context, f client.ScheduleFilter) ([]client.ScheduleEntry, error)
}

// Attendance the QR service calls. *client.QRClient implements it.
type Attendance interface {
	Sessions(ctx context.Context, userID uint) ([]client.SessionInfo, error)
}

// Documents the document service calls. *client.DocumentClient implements it.
type Documents interface {
	CreateDocument(ctx context.Context, doc client.NewDocument) (*client.DocumentInfo, error)
	ListTemplates(ctx context.Context) ([]client.TemplateInfo, error)
}

// Deps sibling services the integration layer combines
type Deps struct {
	Directory  Directory
	Timetable  Timetable
	Attendance Attendance
	Documents  Documents
}

// Caller the authenticated user behind a request
type Caller struct {
	ID   uint
	Role string
}

// Service aggregates every integration service
type Service struct {
	Reports   ReportService
	Paperwork PaperworkService
	Views     ViewService
}

// NewService wires the aggregate
func NewService(deps Deps, logger *zap.Logger) *Service {
	b := &base{Deps: deps, logger: logger, now: time.Now}
	return &Service{
		Reports:   &reportService{base: b},
		Paperwork: &paperworkService{base: b},
		Views:     &viewService{base: b},
	}
}

// base shared by the services: siblings, logger and clock
type base struct {
	Deps
	logger *zap.Logger
	now    func() time.Time
}

// remote maps a sibling failure: a missing resource becomes notFound,
// rejected credentials ErrNotAllowed, a refused payload ErrRejected with the
// sibling's message, anything else down
func (b *base) remote(err, notFound, down error, fields ...zap.Field) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		return ErrNotAllowed
	case errors.Is(err, apperrors.ErrBadRequest), errors.Is(err, apperrors.ErrConflict):
		if rerr, ok := client.AsRemote(err); ok {
			return fmt.Errorf("%w: %s", ErrRejected, rerr.Message)
		}
		return ErrRejected
	}
	b.logger.Warn("sibling call failed", append(fields, zap.Error(err))...)
	return down
}

func (b *base) group(ctx context.Context, groupID uint) (*client.GroupInfo, error) {
	g, err := b.Directory.GetGroup(ctx, groupID)
	if err != nil {
		return nil, b.remote(err, ErrGroupNotFound, ErrAuthDown, zap.Uint("group_id", groupID))
	}
	return g, nil
}

func (b *base) student(ctx context.Context, studentID uint) (*client.StudentInfo, error) {
	st, err := b.Directory.GetStudent(ctx, studentID)
	if err != nil {
		return nil, b.remote(err, ErrStudentNotFound, ErrAuthDown, zap.Uint("student_id", studentID))
	}
	return st, nil
}

func (b *base) schedule(ctx context.Context, f client.ScheduleFilter) ([]client.ScheduleEntry, error) {
	entries, err := b.Timetable.ListSchedule(ctx, f)
	if err != nil {
		return nil, b.remote(err, nil, ErrScheduleDown, zap.Uint("group_id", f.GroupID), zap.Uint("teacher_id", f.TeacherID))
	}
	if entries == nil {
		entries = []client.ScheduleEntry{}
	}
	return entries, nil
}

func (b *base) sessions(ctx context.Context, userID uint) ([]client.SessionInfo, error) {
	list, err := b.Attendance.Sessions(ctx, userID)
	if err != nil {
		return nil, b.remote(err, nil, ErrQRDown, zap.Uint("user_id", userID))
	}
	return list, nil
}

func (b *base) createDocument(ctx context.Context, doc client.NewDocument) (*client.DocumentInfo, error) {
	d, err := b.Documents.CreateDocument(ctx, doc)
	if err != nil {
		// only the recipient can be missing
		var notFound error
		if doc.RecipientID != nil {
			notFound = ErrStudentNotFound
		}
		return nil, b.remote(err, notFound, ErrDocumentDown, zap.String("title", doc.Title))
	}
	b.logger.Info("document created",
		zap.Uint("document_id", d.ID),
		zap.String("title", doc.Title),
		zap.String("template_type", doc.TemplateType),
	)
	return d, nil
}
