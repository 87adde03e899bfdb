package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/integration/dto"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	"github.com/yerk0w/EduLifeFor-merge/pkg/validate"
)

// ReportService attendance figures combined from auth, schedule and QR
type ReportService interface {
	AttendanceReport(ctx context.Context, groupID uint, q *dto.ReportQuery) (*dto.AttendanceReportResponse, error)
	StudentAttendance(ctx context.Context, caller Caller, studentID uint) (*dto.StudentAttendanceResponse, error)
}

type reportService struct {
	*base
}

// AttendanceReport counts each student's marks in the period against the
// group's lessons in the same period and files the table as a document
func (s *reportService) AttendanceReport(ctx context.Context, groupID uint, q *dto.ReportQuery) (*dto.AttendanceReportResponse, error) {
	if q.StartDate > q.EndDate {
		return nil, ErrInvalidRange
	}

	group, err := s.group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	students, err := s.Directory.GetStudentsByGroup(ctx, groupID)
	if err != nil {
		return nil, s.remote(err, ErrGroupNotFound, ErrAuthDown, zap.Uint("group_id", groupID))
	}
	lessons, err := s.schedule(ctx, client.ScheduleFilter{GroupID: groupID, DateFrom: q.StartDate, DateTo: q.EndDate})
	if err != nil {
		return nil, err
	}

	total := len(lessons)
	rows := make([]dto.StudentAttendance, 0, len(students))
	for _, st := range students {
		marks, err := s.sessions(ctx, st.UserID)
		if err != nil {
			return nil, err
		}
		attended := 0
		for _, m := range marks {
			if d := sessionDate(m.SessionTime); d != "" && d >= q.StartDate && d <= q.EndDate {
				attended++
			}
		}
		rows = append(rows, dto.StudentAttendance{
			StudentID:         st.ID,
			StudentName:       st.FullName,
			TotalClasses:      total,
			AttendedClasses:   attended,
			AttendancePercent: percent(attended, total),
		})
	}

	doc, err := s.createDocument(ctx, client.NewDocument{
		Title:   fmt.Sprintf("Отчет о посещаемости группы %s (%s - %s)", group.Name, q.StartDate, q.EndDate),
		Content: reportContent(group.Name, q, rows),
	})
	if err != nil {
		return nil, err
	}

	return &dto.AttendanceReportResponse{
		DocumentID:     doc.ID,
		GroupInfo:      *group,
		Period:         dto.Period{Start: q.StartDate, End: q.EndDate},
		AttendanceData: rows,
	}, nil
}

// StudentAttendance a student's marks, each named after the group lesson
// with the same subject and teacher
func (s *reportService) StudentAttendance(ctx context.Context, caller Caller, studentID uint) (*dto.StudentAttendanceResponse, error) {
	st, err := s.student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := checkSelf(caller, st.UserID); err != nil {
		return nil, err
	}

	marks, err := s.sessions(ctx, st.UserID)
	if err != nil {
		return nil, err
	}
	var lessons []client.ScheduleEntry
	if st.GroupID != 0 {
		if lessons, err = s.schedule(ctx, client.ScheduleFilter{GroupID: st.GroupID}); err != nil {
			return nil, err
		}
	}

	records := make([]dto.AttendanceRecord, 0, len(marks))
	for _, m := range marks {
		rec := dto.AttendanceRecord{
			SessionInfo: m,
			SubjectName: unknownSubject,
			TeacherName: unknownTeacher,
			Classroom:   unknownClassroom,
		}
		if l := matchLesson(lessons, m); l != nil {
			rec.SubjectName = orDefault(l.SubjectName, unknownSubject)
			rec.TeacherName = orDefault(l.TeacherName, unknownTeacher)
			rec.Classroom = orDefault(l.ClassroomName, unknownClassroom)
		}
		records = append(records, rec)
	}
	return &dto.StudentAttendanceResponse{StudentInfo: *st, Attendance: records}, nil
}

const (
	unknownSubject   = "Неизвестный предмет"
	unknownTeacher   = "Неизвестный преподаватель"
	unknownClassroom = "Неизвестная аудитория"
)

func matchLesson(lessons []client.ScheduleEntry, m client.SessionInfo) *client.ScheduleEntry {
	for i := range lessons {
		if lessons[i].SubjectID == m.SubjectID && lessons[i].TeacherID == m.TeacherID {
			return &lessons[i]
		}
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// sessionDate calendar date of a mark in its own offset; "" when unparseable
func sessionDate(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Format(validate.DateLayout)
	}
	if len(ts) >= len(validate.DateLayout) && validate.IsDate(ts[:len(validate.DateLayout)]) {
		return ts[:len(validate.DateLayout)]
	}
	return ""
}

// percent attended/total*100 rounded to two decimals; 0 without lessons
func percent(attended, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(total)*10000) / 100
}

func reportContent(groupName string, q *dto.ReportQuery, rows []dto.StudentAttendance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Отчет о посещаемости группы %s\n\n", groupName)
	fmt.Fprintf(&b, "Период: с %s по %s\n\n", q.StartDate, q.EndDate)
	b.WriteString("## Сводная информация\n\n")
	b.WriteString("| Студент | Посещено занятий | Всего занятий | Процент посещаемости |\n")
	b.WriteString("|---------|------------------|---------------|----------------------|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %d | %d | %.2f%% |\n", r.StudentName, r.AttendedClasses, r.TotalClasses, r.AttendancePercent)
	}
	return b.String()
}
