package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/model"
)

const timeLayout = time.RFC3339

// toScheduleResponse local names from preloads, teacher and group from auth
func toScheduleResponse(ctx context.Context, e *model.Entry, l *lookup) dto.ScheduleResponse {
	resp := dto.ScheduleResponse{
		ID:           e.ID,
		Date:         e.Date,
		TimeStart:    e.TimeStart,
		TimeEnd:      e.TimeEnd,
		SubjectID:    e.SubjectID,
		TeacherID:    e.TeacherID,
		GroupID:      e.GroupID,
		ClassroomID:  e.ClassroomID,
		LessonTypeID: e.LessonTypeID,
	}
	if e.Subject != nil {
		resp.SubjectName = e.Subject.Name
	}
	if e.Classroom != nil {
		resp.ClassroomName = e.Classroom.Name
	}
	if e.LessonType != nil {
		resp.LessonTypeName = e.LessonType.Name
	}

	if t := l.teacher(ctx, e.TeacherID); t != nil {
		resp.TeacherName = t.FullName
		resp.TeacherDepartment = t.DepartmentName
	}
	if g := l.group(ctx, e.GroupID); g != nil {
		resp.GroupName = g.Name
		resp.FacultyName = g.FacultyName
	}
	return resp
}

func toSubjectResponse(s *model.Subject) dto.SubjectResponse {
	return dto.SubjectResponse{ID: s.ID, Name: s.Name, Description: s.Description}
}

func toClassroomResponse(c *model.Classroom) dto.ClassroomResponse {
	return dto.ClassroomResponse{ID: c.ID, Name: c.Name, Building: c.Building, Capacity: c.Capacity}
}

func toNotificationResponse(n *model.Notification) dto.NotificationResponse {
	resp := dto.NotificationResponse{
		ID:           n.ID,
		ScheduleID:   n.ScheduleID,
		ChangeType:   n.ChangeType,
		PreviousData: rawOrNull(n.PreviousData),
		NewData:      rawOrNull(n.NewData),
		IsSent:       n.IsSent,
		CreatedAt:    n.CreatedAt.Format(timeLayout),
	}
	if n.SentAt != nil {
		s := n.SentAt.Format(timeLayout)
		resp.SentAt = &s
	}
	return resp
}

func rawOrNull(b []byte) json.RawMessage {
	if len(b) == 0 {
		return json.RawMessage("null")
	}
	return json.RawMessage(b)
}
