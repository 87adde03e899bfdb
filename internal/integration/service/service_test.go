package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/integration/dto"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	apperrors "github.com/yerk0w/EduLifeFor-merge/pkg/errors"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// ── fakes ──

type fakeDirectory struct {
	teachers   map[uint]*client.TeacherInfo
	groups     map[uint]*client.GroupInfo
	students   map[uint]*client.StudentInfo // by student id
	groupCalls map[uint]int
	down       bool
}

func (f *fakeDirectory) GetTeacher(_ context.Context, id uint) (*client.TeacherInfo, error) {
	if f.down {
		return nil, apperrors.ErrUnavailable
	}
	if t, ok := f.teachers[id]; ok {
		return t, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeDirectory) GetGroup(_ context.Context, id uint) (*client.GroupInfo, error) {
	f.groupCalls[id]++
	if f.down {
		return nil, apperrors.ErrUnavailable
	}
	if g, ok := f.groups[id]; ok {
		return g, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeDirectory) GetStudent(_ context.Context, id uint) (*client.StudentInfo, error) {
	if f.down {
		return nil, apperrors.ErrUnavailable
	}
	if st, ok := f.students[id]; ok {
		return st, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeDirectory) GetStudentsByGroup(_ context.Context, groupID uint) ([]client.StudentInfo, error) {
	if f.down {
		return nil, apperrors.ErrUnavailable
	}
	var out []client.StudentInfo
	for _, id := range []uint{5, 6, 8} {
		if st, ok := f.students[id]; ok && st.GroupID == groupID {
			out = append(out, *st)
		}
	}
	return out, nil
}

type fakeTimetable struct {
	entries []client.ScheduleEntry
	last    client.ScheduleFilter
	down    bool
}

func (f *fakeTimetable) ListSchedule(_ context.Context, q client.ScheduleFilter) ([]client.ScheduleEntry, error) {
	f.last = q
	if f.down {
		return nil, apperrors.ErrUnavailable
	}
	var out []client.ScheduleEntry
	for _, e := range f.entries {
		switch {
		case q.GroupID != 0 && e.GroupID != q.GroupID,
			q.TeacherID != 0 && e.TeacherID != q.TeacherID,
			q.Date != "" && e.Date != q.Date,
			q.DateFrom != "" && e.Date < q.DateFrom,
			q.DateTo != "" && e.Date > q.DateTo:
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeQR struct {
	sessions map[uint][]client.SessionInfo
	err      error
}

func (f *fakeQR) Sessions(_ context.Context, userID uint) ([]client.SessionInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[userID], nil
}

type fakeDocs struct {
	created   []client.NewDocument
	templates []client.TemplateInfo
	err       error
	tmplErr   error
}

func (f *fakeDocs) CreateDocument(_ context.Context, doc client.NewDocument) (*client.DocumentInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, doc)
	return &client.DocumentInfo{ID: uint(100 + len(f.created)), Title: doc.Title, Status: "pending"}, nil
}

func (f *fakeDocs) ListTemplates(_ context.Context) ([]client.TemplateInfo, error) {
	if f.tmplErr != nil {
		return nil, f.tmplErr
	}
	return f.templates, nil
}

type fixture struct {
	dir  *fakeDirectory
	tt   *fakeTimetable
	qr   *fakeQR
	docs *fakeDocs
	b    *base
}

func newFixture() *fixture {
	f := &fixture{
		dir: &fakeDirectory{
			teachers: map[uint]*client.TeacherInfo{
				7: {ID: 7, UserID: 20, FullName: "Иванов И.И.", Position: "доцент", DepartmentName: "Кафедра ПО"},
			},
			groups: map[uint]*client.GroupInfo{
				3: {ID: 3, Name: "ПО-21", FacultyName: "ИТ", Year: 2},
			},
			students: map[uint]*client.StudentInfo{
				5: {ID: 5, UserID: 10, FullName: "Петров П.", GroupID: 3},
				6: {ID: 6, UserID: 11, FullName: "Сидоров С.", GroupID: 3},
				8: {ID: 8, UserID: 12, FullName: "Без Группы"},
			},
			groupCalls: map[uint]int{},
		},
		tt: &fakeTimetable{entries: []client.ScheduleEntry{
			{ID: 1, Date: "2026-09-02", TimeStart: "09:00", TimeEnd: "10:30", SubjectID: 4, SubjectName: "Алгоритмы", TeacherID: 7, TeacherName: "Иванов", GroupID: 3, GroupName: "ПО-21", ClassroomName: "301"},
			{ID: 2, Date: "2026-09-02", TimeStart: "10:40", TimeEnd: "12:10", SubjectID: 5, SubjectName: "Базы данных", TeacherID: 8, GroupID: 3},
			{ID: 3, Date: "2026-09-09", TimeStart: "09:00", TimeEnd: "10:30", SubjectID: 4, SubjectName: "Алгоритмы", TeacherID: 7, GroupID: 3, ClassroomName: "301"},
			{ID: 4, Date: "2026-10-05", TimeStart: "09:00", TimeEnd: "10:30", SubjectID: 4, TeacherID: 7, GroupID: 9, GroupName: "ПО-22", FacultyName: "ИТ"},
			{ID: 5, Date: "2026-08-28", TimeStart: "09:00", TimeEnd: "10:30", SubjectID: 4, TeacherID: 7, GroupID: 3},
		}},
		qr: &fakeQR{sessions: map[uint][]client.SessionInfo{
			10: {
				{ID: 1, UserID: 10, SessionTime: "2026-09-02T09:05:00+05:00", SubjectID: 4, TeacherID: 7},
				{ID: 2, UserID: 10, SessionTime: "2026-09-09T09:02:00+05:00", SubjectID: 4, TeacherID: 7},
				{ID: 3, UserID: 10, SessionTime: "2026-08-28T09:00:00+05:00", SubjectID: 4, TeacherID: 7},
			},
		}},
		docs: &fakeDocs{templates: []client.TemplateInfo{
			{ID: 1, Name: "Справка об обучении"},
			{ID: 2, Name: "Заявление на Отпуск"},
		}},
	}
	f.b = &base{
		Deps:   Deps{Directory: f.dir, Timetable: f.tt, Attendance: f.qr, Documents: f.docs},
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) },
	}
	return f
}

var (
	admin   = Caller{ID: 1, Role: roles.Admin}
	petrov  = Caller{ID: 10, Role: roles.Student}
	sidorov = Caller{ID: 11, Role: roles.Student}
)

func mustNot(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func expectErr(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

// ── attendance report ──

func TestReport_CountsMarksInPeriod(t *testing.T) {
	f := newFixture()
	svc := &reportService{base: f.b}

	resp, err := svc.AttendanceReport(context.Background(), 3, &dto.ReportQuery{StartDate: "2026-09-01", EndDate: "2026-09-30"})
	mustNot(t, err)

	if f.tt.last.DateFrom != "2026-09-01" || f.tt.last.DateTo != "2026-09-30" || f.tt.last.GroupID != 3 {
		t.Errorf("unexpected schedule filter %+v", f.tt.last)
	}
	if resp.DocumentID != 101 || resp.GroupInfo.Name != "ПО-21" || resp.Period.End != "2026-09-30" {
		t.Errorf("unexpected report %+v", resp)
	}
	if len(resp.AttendanceData) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(resp.AttendanceData))
	}
	got := resp.AttendanceData[0]
	if got.StudentID != 5 || got.TotalClasses != 3 || got.AttendedClasses != 2 || got.AttendancePercent != 66.67 {
		t.Errorf("petrov row = %+v", got)
	}
	if got := resp.AttendanceData[1]; got.AttendedClasses != 0 || got.AttendancePercent != 0 {
		t.Errorf("sidorov row = %+v", got)
	}

	doc := f.docs.created[0]
	if doc.Title != "Отчет о посещаемости группы ПО-21 (2026-09-01 - 2026-09-30)" {
		t.Errorf("title = %q", doc.Title)
	}
	if !strings.Contains(doc.Content, "| Петров П. | 2 | 3 | 66.67% |") {
		t.Errorf("report table missing row:\n%s", doc.Content)
	}
}

func TestReport_NoLessonsInPeriod(t *testing.T) {
	f := newFixture()
	svc := &reportService{base: f.b}

	resp, err := svc.AttendanceReport(context.Background(), 3, &dto.ReportQuery{StartDate: "2027-01-01", EndDate: "2027-01-31"})
	mustNot(t, err)
	for _, r := range resp.AttendanceData {
		if r.TotalClasses != 0 || r.AttendancePercent != 0 {
			t.Errorf("expected empty row, got %+v", r)
		}
	}
}

func TestReport_Errors(t *testing.T) {
	ctx := context.Background()
	sept := &dto.ReportQuery{StartDate: "2026-09-01", EndDate: "2026-09-30"}

	f := newFixture()
	svc := &reportService{base: f.b}
	_, err := svc.AttendanceReport(ctx, 3, &dto.ReportQuery{StartDate: "2026-10-01", EndDate: "2026-09-01"})
	expectErr(t, err, ErrInvalidRange)

	_, err = svc.AttendanceReport(ctx, 99, sept)
	expectErr(t, err, ErrGroupNotFound)

	if len(f.docs.created) != 0 {
		t.Errorf("no report should be filed, got %d", len(f.docs.created))
	}
}

func TestReport_SiblingFailures(t *testing.T) {
	ctx := context.Background()
	sept := &dto.ReportQuery{StartDate: "2026-09-01", EndDate: "2026-09-30"}

	f := newFixture()
	f.qr.err = apperrors.ErrUnauthorized
	_, err := (&reportService{base: f.b}).AttendanceReport(ctx, 3, sept)
	expectErr(t, err, ErrNotAllowed)

	f = newFixture()
	f.qr.err = apperrors.ErrUnavailable
	_, err = (&reportService{base: f.b}).AttendanceReport(ctx, 3, sept)
	expectErr(t, err, ErrQRDown)

	f = newFixture()
	f.tt.down = true
	_, err = (&reportService{base: f.b}).AttendanceReport(ctx, 3, sept)
	expectErr(t, err, ErrScheduleDown)

	f = newFixture()
	f.docs.err = apperrors.ErrUnavailable
	_, err = (&reportService{base: f.b}).AttendanceReport(ctx, 3, sept)
	expectErr(t, err, ErrDocumentDown)

	f = newFixture()
	f.dir.down = true
	_, err = (&reportService{base: f.b}).AttendanceReport(ctx, 3, sept)
	expectErr(t, err, ErrAuthDown)
}

// ── student attendance ──

func TestStudentAttendance_NamesLessons(t *testing.T) {
	f := newFixture()
	f.qr.sessions[10] = append(f.qr.sessions[10],
		client.SessionInfo{ID: 4, UserID: 10, SessionTime: "2026-09-02T10:45:00+05:00", SubjectID: 5, TeacherID: 8},
		client.SessionInfo{ID: 5, UserID: 10, SessionTime: "2026-09-03T10:45:00+05:00", SubjectID: 6, TeacherID: 9},
	)
	svc := &reportService{base: f.b}

	resp, err := svc.StudentAttendance(context.Background(), petrov, 5)
	mustNot(t, err)
	if resp.StudentInfo.ID != 5 || len(resp.Attendance) != 5 {
		t.Fatalf("unexpected response %+v", resp)
	}

	first := resp.Attendance[0]
	if first.SubjectName != "Алгоритмы" || first.TeacherName != "Иванов" || first.Classroom != "301" || first.ID != 1 {
		t.Errorf("matched record = %+v", first)
	}
	partial := resp.Attendance[3]
	if partial.SubjectName != "Базы данных" || partial.TeacherName != unknownTeacher || partial.Classroom != unknownClassroom {
		t.Errorf("partially named record = %+v", partial)
	}
	missing := resp.Attendance[4]
	if missing.SubjectName != unknownSubject || missing.TeacherName != unknownTeacher || missing.Classroom != unknownClassroom {
		t.Errorf("unmatched record = %+v", missing)
	}
}

func TestStudentAttendance_Access(t *testing.T) {
	f := newFixture()
	svc := &reportService{base: f.b}
	ctx := context.Background()

	_, err := svc.StudentAttendance(ctx, sidorov, 5)
	expectErr(t, err, ErrNotSelf)

	resp, err := svc.StudentAttendance(ctx, admin, 5)
	mustNot(t, err)
	if len(resp.Attendance) != 3 {
		t.Errorf("admin should see every mark, got %d", len(resp.Attendance))
	}

	_, err = svc.StudentAttendance(ctx, admin, 99)
	expectErr(t, err, ErrStudentNotFound)

	resp, err = svc.StudentAttendance(ctx, Caller{ID: 12, Role: roles.Student}, 8)
	mustNot(t, err)
	if resp.Attendance == nil || len(resp.Attendance) != 0 {
		t.Errorf("expected empty attendance list, got %+v", resp.Attendance)
	}
}

// ── paperwork ──

func TestAbsenceRequest_ListsTheDaysLessons(t *testing.T) {
	f := newFixture()
	svc := &paperworkService{base: f.b}

	resp, err := svc.AbsenceRequest(context.Background(), petrov, 5, &dto.AbsenceQuery{Date: "2026-09-02", Reason: "болезнь"})
	mustNot(t, err)
	if resp.DocumentID != 101 || len(resp.Schedule) != 2 || resp.Reason != "болезнь" {
		t.Errorf("unexpected response %+v", resp)
	}

	doc := f.docs.created[0]
	if doc.Title != "Заявление о пропуске занятий (2026-09-02)" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.TemplateType != "Заявление на Отпуск" {
		t.Errorf("template = %q", doc.TemplateType)
	}
	if doc.RecipientID != nil {
		t.Errorf("own request should have no recipient, got %d", *doc.RecipientID)
	}
	for _, want := range []string{
		"от студента группы ПО-21",
		"по причине: болезнь.",
		"1. Алгоритмы (09:00 - 10:30)",
		"2. Базы данных (10:40 - 12:10)",
	} {
		if !strings.Contains(doc.Content, want) {
			t.Errorf("content missing %q:\n%s", want, doc.Content)
		}
	}
}

func TestAbsenceRequest_AdminAddressesStudent(t *testing.T) {
	f := newFixture()
	svc := &paperworkService{base: f.b}

	_, err := svc.AbsenceRequest(context.Background(), admin, 5, &dto.AbsenceQuery{Date: "2026-09-02", Reason: "соревнования"})
	mustNot(t, err)
	if r := f.docs.created[0].RecipientID; r == nil || *r != 10 {
		t.Errorf("expected recipient 10, got %v", r)
	}
}

func TestAbsenceRequest_TemplatesUnavailable(t *testing.T) {
	f := newFixture()
	f.docs.tmplErr = apperrors.ErrUnavailable
	svc := &paperworkService{base: f.b}

	_, err := svc.AbsenceRequest(context.Background(), petrov, 5, &dto.AbsenceQuery{Date: "2026-09-02", Reason: "болезнь"})
	mustNot(t, err)
	if tt := f.docs.created[0].TemplateType; tt != "" {
		t.Errorf("expected no template, got %q", tt)
	}
}

func TestAbsenceRequest_Errors(t *testing.T) {
	f := newFixture()
	svc := &paperworkService{base: f.b}
	ctx := context.Background()
	q := &dto.AbsenceQuery{Date: "2026-09-02", Reason: "болезнь"}

	_, err := svc.AbsenceRequest(ctx, sidorov, 5, q)
	expectErr(t, err, ErrNotSelf)

	_, err = svc.AbsenceRequest(ctx, admin, 8, q)
	expectErr(t, err, ErrNoGroup)

	_, err = svc.AbsenceRequest(ctx, admin, 99, q)
	expectErr(t, err, ErrStudentNotFound)

	if len(f.docs.created) != 0 {
		t.Errorf("no document should be filed, got %d", len(f.docs.created))
	}
}

func TestPaperwork_DocumentRefused(t *testing.T) {
	ctx := context.Background()
	q := &dto.AbsenceQuery{Date: "2026-09-02", Reason: "болезнь"}

	f := newFixture()
	f.docs.err = apperrors.ErrBadRequest
	_, err := (&paperworkService{base: f.b}).AbsenceRequest(ctx, petrov, 5, q)
	expectErr(t, err, ErrRejected)

	// an admin-filed document names a recipient the document service may not know
	f = newFixture()
	f.docs.err = apperrors.ErrNotFound
	_, err = (&paperworkService{base: f.b}).Reference(ctx, admin, 5)
	expectErr(t, err, ErrStudentNotFound)

	f = newFixture()
	f.docs.err = apperrors.ErrNotFound
	_, err = (&paperworkService{base: f.b}).Reference(ctx, petrov, 5)
	expectErr(t, err, ErrDocumentDown)
}

func TestReference_Issued(t *testing.T) {
	f := newFixture()
	svc := &paperworkService{base: f.b}

	resp, err := svc.Reference(context.Background(), petrov, 5)
	mustNot(t, err)
	if resp.IssueDate != "19.10.2026" || resp.GroupInfo.Name != "ПО-21" {
		t.Errorf("unexpected response %+v", resp)
	}

	doc := f.docs.created[0]
	if doc.Title != "Справка с места учебы для Петров П." || doc.TemplateType != "Справка об обучении" {
		t.Errorf("unexpected document %q / %q", doc.Title, doc.TemplateType)
	}
	for _, want := range []string{"Дана Петров П.", "2 курса группы ПО-21 факультета ИТ", "Дата выдачи: 19.10.2026"} {
		if !strings.Contains(doc.Content, want) {
			t.Errorf("content missing %q:\n%s", want, doc.Content)
		}
	}
}

func TestReference_GroupGone(t *testing.T) {
	f := newFixture()
	delete(f.dir.groups, 3)
	svc := &paperworkService{base: f.b}

	_, err := svc.Reference(context.Background(), petrov, 5)
	expectErr(t, err, ErrGroupNotFound)
}

// ── views ──

func TestTeacherSchedule_FillsDetails(t *testing.T) {
	f := newFixture()
	svc := &viewService{base: f.b}

	resp, err := svc.TeacherSchedule(context.Background(), 7, &dto.ScheduleQuery{})
	mustNot(t, err)
	if resp.TeacherInfo.FullName != "Иванов И.И." || len(resp.Schedule) != 4 {
		t.Fatalf("unexpected response %+v", resp)
	}

	for _, l := range resp.Schedule {
		if l.TeacherName != "Иванов И.И." || l.TeacherPosition != "доцент" || l.TeacherDepartment != "Кафедра ПО" {
			t.Errorf("teacher details missing on lesson %d: %+v", l.ID, l)
		}
		switch l.GroupID {
		case 3:
			if l.GroupYear != 2 || l.FacultyName != "ИТ" {
				t.Errorf("group details missing on lesson %d: %+v", l.ID, l)
			}
		case 9:
			if l.GroupName != "ПО-22" || l.GroupYear != 0 {
				t.Errorf("unknown group should keep schedule names: %+v", l)
			}
		}
	}
	if f.dir.groupCalls[3] != 1 || f.dir.groupCalls[9] != 1 {
		t.Errorf("each group should be looked up once, got %v", f.dir.groupCalls)
	}
}

func TestTeacherSchedule_Errors(t *testing.T) {
	f := newFixture()
	svc := &viewService{base: f.b}
	ctx := context.Background()

	_, err := svc.TeacherSchedule(ctx, 99, &dto.ScheduleQuery{})
	expectErr(t, err, ErrTeacherNotFound)

	_, err = svc.TeacherSchedule(ctx, 7, &dto.ScheduleQuery{DateFrom: "2026-10-01", DateTo: "2026-09-01"})
	expectErr(t, err, ErrInvalidRange)

	resp, err := svc.TeacherSchedule(ctx, 7, &dto.ScheduleQuery{DateFrom: "2026-10-01"})
	mustNot(t, err)
	if len(resp.Schedule) != 1 {
		t.Errorf("expected 1 lesson from October, got %d", len(resp.Schedule))
	}

	f.dir.down = true
	_, err = svc.TeacherSchedule(ctx, 7, &dto.ScheduleQuery{})
	expectErr(t, err, ErrAuthDown)
}

// ── helpers ──

func TestSessionDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2026-09-02T23:30:00+05:00", "2026-09-02"},
		{"2026-09-02T01:00:00Z", "2026-09-02"},
		{"2026-09-02 09:00:00", "2026-09-02"},
		{"02.09.2026", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sessionDate(tt.in); got != tt.want {
			t.Errorf("sessionDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		attended, total int
		want            float64
	}{
		{2, 3, 66.67},
		{1, 3, 33.33},
		{3, 3, 100},
		{0, 0, 0},
		{4, 3, 133.33},
	}
	for _, tt := range tests {
		if got := percent(tt.attended, tt.total); got != tt.want {
			t.Errorf("percent(%d, %d) = %v, want %v", tt.attended, tt.total, got, tt.want)
		}
	}
}
