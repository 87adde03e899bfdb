package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/migrations"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	"github.com/yerk0w/EduLifeFor-merge/pkg/database"
	apperrors "github.com/yerk0w/EduLifeFor-merge/pkg/errors"
	"github.com/yerk0w/EduLifeFor-merge/pkg/notify"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// ── helpers ──

// fakeDirectory map-backed auth lookups; down makes every call fail
type fakeDirectory struct {
	teachers map[uint]*client.TeacherInfo
	groups   map[uint]*client.GroupInfo
	students map[uint][]client.StudentInfo
	down     bool
	calls    int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		teachers: map[uint]*client.TeacherInfo{
			7: {ID: 7, UserID: 70, FullName: "Иванов И.И.", Email: "ivanov@edulife.local", DepartmentName: "Кафедра ПО"},
		},
		groups: map[uint]*client.GroupInfo{
			3: {ID: 3, Name: "ПО-21", FacultyName: "ФИТ"},
		},
		students: map[uint][]client.StudentInfo{
			3: {
				{ID: 1, UserID: 31, FullName: "Петров П.", Email: "petrov@edulife.local", GroupID: 3},
				{ID: 2, UserID: 32, FullName: "Сидоров С.", Telegram: "12345", GroupID: 3},
				{ID: 4, UserID: 34, FullName: "Без адреса", GroupID: 3},
			},
		},
	}
}

func (f *fakeDirectory) GetTeacher(_ context.Context, id uint) (*client.TeacherInfo, error) {
	f.calls++
	if f.down {
		return nil, apperrors.ErrUnavailable
	}
	if t, ok := f.teachers[id]; ok {
		return t, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeDirectory) GetTeacherByUser(_ context.Context, userID uint) (*client.TeacherInfo, error) {
	if f.down {
		return nil, apperrors.ErrUnavailable
	}
	for _, t := range f.teachers {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeDirectory) GetGroup(_ context.Context, id uint) (*client.GroupInfo, error) {
	f.calls++
	if f.down {
		return nil, apperrors.ErrUnavailable
	}
	if g, ok := f.groups[id]; ok {
		return g, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeDirectory) GetStudentByUser(_ context.Context, userID uint) (*client.StudentInfo, error) {
	if f.down {
		return nil, apperrors.ErrUnavailable
	}
	for _, list := range f.students {
		for i := range list {
			if list[i].UserID == userID {
				return &list[i], nil
			}
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeDirectory) GetStudentsByGroup(_ context.Context, groupID uint) ([]client.StudentInfo, error) {
	if f.down {
		return nil, apperrors.ErrUnavailable
	}
	return f.students[groupID], nil
}

// fakeSender accepts only recipients with an email
type fakeSender struct {
	sent []notify.Recipient
	msgs []notify.Message
	fail bool
}

func (s *fakeSender) Channel() string { return "fake" }

func (s *fakeSender) Send(_ context.Context, to notify.Recipient, msg notify.Message) error {
	if to.Email == "" {
		return notify.ErrNoAddress
	}
	if s.fail {
		return errors.New("smtp down")
	}
	s.sent = append(s.sent, to)
	s.msgs = append(s.msgs, msg)
	return nil
}

type fixture struct {
	svc         *Service
	repo        *repository.Repository
	dir         *fakeDirectory
	sender      *fakeSender
	subjectID   uint
	classroomID uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenMemory(migrations.FS)
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	repo := repository.NewRepository(db)
	dir := newFakeDirectory()
	sender := &fakeSender{}
	svc := NewService(repo, dir, []notify.Sender{sender}, false, zap.NewNop())

	ctx := context.Background()
	subj, err := svc.Catalog.CreateSubject(ctx, &dto.SubjectRequest{Name: "Базы данных"})
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	room, err := svc.Catalog.CreateClassroom(ctx, &dto.ClassroomRequest{Name: "A-101", Building: "Главный", Capacity: 30})
	if err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	return &fixture{svc: svc, repo: repo, dir: dir, sender: sender, subjectID: subj.ID, classroomID: room.ID}
}

func (f *fixture) lesson(date, start, end string) *dto.CreateScheduleRequest {
	return &dto.CreateScheduleRequest{
		Date:         date,
		TimeStart:    start,
		TimeEnd:      end,
		SubjectID:    f.subjectID,
		TeacherID:    7,
		GroupID:      3,
		ClassroomID:  f.classroomID,
		LessonTypeID: 1,
	}
}

func (f *fixture) create(t *testing.T, date, start, end string) *dto.ScheduleResponse {
	t.Helper()
	e, err := f.svc.Schedule.Create(context.Background(), f.lesson(date, start, end))
	if err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	return e
}

// ═══════════════════════════════════════════════════════════
// Schedule
// ═══════════════════════════════════════════════════════════

func TestSchedule_CreateEnrichesAndRecords(t *testing.T) {
	f := newFixture(t)

	e := f.create(t, "2026-09-01", "09:00", "10:30")
	if e.SubjectName != "Базы данных" || e.ClassroomName != "A-101" || e.LessonTypeName != "лекция" {
		t.Errorf("local names = %q/%q/%q", e.SubjectName, e.ClassroomName, e.LessonTypeName)
	}
	if e.TeacherName != "Иванов И.И." || e.TeacherDepartment != "Кафедра ПО" {
		t.Errorf("teacher = %q/%q", e.TeacherName, e.TeacherDepartment)
	}
	if e.GroupName != "ПО-21" || e.FacultyName != "ФИТ" {
		t.Errorf("group = %q/%q", e.GroupName, e.FacultyName)
	}

	pending, err := f.svc.Notification.ListPending(context.Background())
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	n := pending[0]
	if n.ChangeType != model.ChangeCreate || n.ScheduleID != e.ID {
		t.Errorf("notification = %+v", n)
	}
	if string(n.PreviousData) != "null" {
		t.Errorf("previous_data = %s, want null", n.PreviousData)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(n.NewData, &snap); err != nil {
		t.Fatalf("decode new_data: %v", err)
	}
	if snap.GroupID != 3 || snap.SubjectName != "Базы данных" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestSchedule_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(r *dto.CreateScheduleRequest)
		want   error
	}{
		{"end before start", func(r *dto.CreateScheduleRequest) { r.TimeEnd = "08:00" }, ErrInvalidTimeRange},
		{"equal times", func(r *dto.CreateScheduleRequest) { r.TimeEnd = r.TimeStart }, ErrInvalidTimeRange},
		{"unknown subject", func(r *dto.CreateScheduleRequest) { r.SubjectID = 999 }, ErrUnknownSubject},
		{"unknown classroom", func(r *dto.CreateScheduleRequest) { r.ClassroomID = 999 }, ErrUnknownClassroom},
		{"unknown lesson type", func(r *dto.CreateScheduleRequest) { r.LessonTypeID = 99 }, ErrUnknownLessonType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.lesson("2026-09-01", "09:00", "10:30")
			tt.mutate(req)
			if _, err := f.svc.Schedule.Create(ctx, req); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	pending, _ := f.svc.Notification.ListPending(ctx)
	if len(pending) != 0 {
		t.Errorf("rejected writes left %d notifications", len(pending))
	}
}

func TestSchedule_ListFiltersAndOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, "2026-09-02", "09:00", "10:30")
	f.create(t, "2026-09-01", "11:00", "12:30")
	f.create(t, "2026-09-01", "09:00", "10:30")

	list, err := f.svc.Schedule.List(ctx, &dto.ScheduleFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if list[0].Date != "2026-09-01" || list[0].TimeStart != "09:00" || list[2].Date != "2026-09-02" {
		t.Errorf("order = %v %v / %v", list[0].Date, list[0].TimeStart, list[2].Date)
	}

	list, _ = f.svc.Schedule.List(ctx, &dto.ScheduleFilter{Date: "2026-09-01"})
	if len(list) != 2 {
		t.Errorf("date filter len = %d, want 2", len(list))
	}
	list, _ = f.svc.Schedule.List(ctx, &dto.ScheduleFilter{GroupID: 99})
	if len(list) != 0 {
		t.Errorf("group filter len = %d, want 0", len(list))
	}
}

func TestSchedule_ListLooksUpOncePerID(t *testing.T) {
	f := newFixture(t)
	f.create(t, "2026-09-01", "09:00", "10:30")
	f.create(t, "2026-09-01", "11:00", "12:30")

	f.dir.calls = 0
	if _, err := f.svc.Schedule.List(context.Background(), nil); err != nil {
		t.Fatalf("list: %v", err)
	}
	// one teacher + one group
	if f.dir.calls != 2 {
		t.Errorf("directory calls = %d, want 2", f.dir.calls)
	}
}

func TestSchedule_ListFallsBackWhenAuthDown(t *testing.T) {
	f := newFixture(t)
	f.create(t, "2026-09-01", "09:00", "10:30")
	f.dir.down = true

	list, err := f.svc.Schedule.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[0].TeacherName != "" || list[0].GroupName != "" {
		t.Errorf("fallback names = %q/%q, want empty", list[0].TeacherName, list[0].GroupName)
	}
	if list[0].SubjectName != "Базы данных" {
		t.Errorf("local name lost: %q", list[0].SubjectName)
	}
}

func TestSchedule_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.create(t, "2026-09-01", "09:00", "10:30")

	start, end := "13:00", "14:30"
	updated, err := f.svc.Schedule.Update(ctx, e.ID, &dto.UpdateScheduleRequest{TimeStart: &start, TimeEnd: &end})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TimeStart != "13:00" || updated.Date != "2026-09-01" {
		t.Errorf("updated = %+v", updated)
	}

	bad := "12:00"
	if _, err := f.svc.Schedule.Update(ctx, e.ID, &dto.UpdateScheduleRequest{TimeEnd: &bad}); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("update to bad range err = %v", err)
	}

	if err := f.svc.Schedule.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.Schedule.GetByID(ctx, e.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("get after delete err = %v", err)
	}
	if err := f.svc.Schedule.Delete(ctx, e.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("second delete err = %v", err)
	}

	pending, _ := f.svc.Notification.ListPending(ctx)
	if len(pending) != 3 {
		t.Fatalf("pending = %d, want 3", len(pending))
	}
	upd := pending[1]
	if upd.ChangeType != model.ChangeUpdate {
		t.Fatalf("second change = %s", upd.ChangeType)
	}
	var before, after model.Snapshot
	_ = json.Unmarshal(upd.PreviousData, &before)
	_ = json.Unmarshal(upd.NewData, &after)
	if before.TimeStart != "09:00" || after.TimeStart != "13:00" {
		t.Errorf("update snapshots %s → %s", before.TimeStart, after.TimeStart)
	}
	if pending[2].ChangeType != model.ChangeDelete || string(pending[2].NewData) != "null" {
		t.Errorf("delete notification = %+v", pending[2])
	}
}

// ═══════════════════════════════════════════════════════════
// Catalog
// ═══════════════════════════════════════════════════════════

func TestCatalog_NamesAndInUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Catalog.CreateSubject(ctx, &dto.SubjectRequest{Name: " Базы данных "}); !errors.Is(err, ErrSubjectNameExists) {
		t.Errorf("duplicate subject err = %v", err)
	}
	if _, err := f.svc.Catalog.CreateClassroom(ctx, &dto.ClassroomRequest{Name: "A-101"}); !errors.Is(err, ErrClassroomNameExists) {
		t.Errorf("duplicate classroom err = %v", err)
	}
	if _, err := f.svc.Catalog.UpdateSubject(ctx, f.subjectID, &dto.SubjectRequest{Name: "Базы данных", Description: "SQL"}); err != nil {
		t.Errorf("rename to own name: %v", err)
	}

	e := f.create(t, "2026-09-01", "09:00", "10:30")
	if err := f.svc.Catalog.DeleteSubject(ctx, f.subjectID); !errors.Is(err, ErrSubjectInUse) {
		t.Errorf("delete used subject err = %v", err)
	}
	if err := f.svc.Catalog.DeleteClassroom(ctx, f.classroomID); !errors.Is(err, ErrClassroomInUse) {
		t.Errorf("delete used classroom err = %v", err)
	}

	if err := f.svc.Schedule.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete lesson: %v", err)
	}
	if err := f.svc.Catalog.DeleteSubject(ctx, f.subjectID); err != nil {
		t.Errorf("delete free subject: %v", err)
	}
	if err := f.svc.Catalog.DeleteSubject(ctx, f.subjectID); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("delete missing subject err = %v", err)
	}
}

func TestCatalog_LessonTypesSeeded(t *testing.T) {
	f := newFixture(t)
	list, err := f.svc.Catalog.ListLessonTypes(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 8 {
		t.Errorf("lesson types = %d, want 8", len(list))
	}
}

// ═══════════════════════════════════════════════════════════
// Notifications
// ═══════════════════════════════════════════════════════════

func TestNotification_Dispatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "2026-09-01", "09:00", "10:30")

	result, err := f.svc.Notification.Dispatch(ctx)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result.Processed != 1 || result.Sent != 1 {
		t.Errorf("result = %+v, want 1/1", result)
	}
	// petrov and the teacher have email; the others are skipped
	if len(f.sender.sent) != 2 {
		t.Errorf("deliveries = %d, want 2", len(f.sender.sent))
	}
	if !strings.Contains(f.sender.msgs[0].HTML, "01.09.2026") {
		t.Errorf("message lacks formatted date: %s", f.sender.msgs[0].HTML)
	}

	pending, _ := f.svc.Notification.ListPending(ctx)
	if len(pending) != 0 {
		t.Errorf("pending after dispatch = %d", len(pending))
	}
	result, _ = f.svc.Notification.Dispatch(ctx)
	if result.Processed != 0 {
		t.Errorf("second run processed %d", result.Processed)
	}
}

func TestNotification_DispatchKeepsPendingOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "2026-09-01", "09:00", "10:30")

	f.dir.down = true
	result, err := f.svc.Notification.Dispatch(ctx)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result.Processed != 1 || result.Sent != 0 {
		t.Errorf("auth down result = %+v", result)
	}

	f.dir.down = false
	f.sender.fail = true
	result, _ = f.svc.Notification.Dispatch(ctx)
	if result.Sent != 0 {
		t.Errorf("all channels failed but sent = %d", result.Sent)
	}

	pending, _ := f.svc.Notification.ListPending(ctx)
	if len(pending) != 1 {
		t.Errorf("pending = %d, want 1", len(pending))
	}
}

func TestNotification_DispatchWithoutRecipients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.lesson("2026-09-01", "09:00", "10:30")
	req.GroupID, req.TeacherID = 50, 51
	if _, err := f.svc.Schedule.Create(ctx, req); err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := f.svc.Notification.Dispatch(ctx)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if result.Sent != 1 {
		t.Errorf("nobody to tell should count as sent, got %+v", result)
	}
}

func TestNotification_ListForGroupAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "2026-09-01", "09:00", "10:30")

	tests := []struct {
		name     string
		groupID  uint
		callerID uint
		role     string
		want     error
	}{
		{"admin", 3, 1, roles.Admin, nil},
		{"student of group", 3, 31, roles.Student, nil},
		{"student of other group", 4, 31, roles.Student, ErrGroupAccessDenied},
		{"unknown student", 3, 99, roles.Student, ErrGroupAccessDenied},
		{"teacher of group", 3, 70, roles.Teacher, nil},
		{"teacher without lessons", 4, 70, roles.Teacher, ErrGroupAccessDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := f.svc.Notification.ListForGroup(ctx, tt.groupID, tt.callerID, tt.role)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if tt.want == nil && tt.groupID == 3 && len(list) != 1 {
				t.Errorf("len = %d, want 1", len(list))
			}
		})
	}

	f.dir.down = true
	if _, err := f.svc.Notification.ListForGroup(ctx, 3, 31, roles.Student); !errors.Is(err, ErrDirectoryDown) {
		t.Errorf("auth down err = %v", err)
	}
}
