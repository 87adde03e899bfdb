package client

import (
	"context"

	"go.uber.org/zap"
)

// SubjectInfo subject as returned by the schedule service
type SubjectInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ScheduleEntry enriched schedule row as returned by the schedule service
type ScheduleEntry struct {
	ID                uint   `json:"id"`
	Date              string `json:"date"`
	TimeStart         string `json:"time_start"`
	TimeEnd           string `json:"time_end"`
	SubjectID         uint   `json:"subject_id"`
	SubjectName       string `json:"subject_name"`
	TeacherID         uint   `json:"teacher_id"`
	TeacherName       string `json:"teacher_name"`
	TeacherDepartment string `json:"teacher_department"`
	GroupID           uint   `json:"group_id"`
	GroupName         string `json:"group_name"`
	FacultyName       string `json:"faculty_name"`
	ClassroomID       uint   `json:"classroom_id"`
	ClassroomName     string `json:"classroom_name"`
	LessonTypeID      uint   `json:"lesson_type_id"`
	LessonTypeName    string `json:"lesson_type_name"`
}

// ScheduleFilter query of ListSchedule; zero values are omitted
type ScheduleFilter struct {
	TeacherID uint
	GroupID   uint
	Date      string
	DateFrom  string
	DateTo    string
}

// ScheduleClient typed client of the schedule service
type ScheduleClient struct {
	c *Client
}

// NewScheduleClient creates a ScheduleClient
func NewScheduleClient(opts Options, logger *zap.Logger) *ScheduleClient {
	return &ScheduleClient{c: New("schedule", opts, logger)}
}

// GetSubject GET /api/v1/subjects/:id
func (s *ScheduleClient) GetSubject(ctx context.Context, subjectID uint) (*SubjectInfo, error) {
	var out SubjectInfo
	if err := s.c.Get(ctx, "/api/v1/subjects/"+id(subjectID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSchedule GET /api/v1/schedule
func (s *ScheduleClient) ListSchedule(ctx context.Context, f ScheduleFilter) ([]ScheduleEntry, error) {
	q := map[string]string{}
	if f.TeacherID != 0 {
		q["teacher_id"] = id(f.TeacherID)
	}
	if f.GroupID != 0 {
		q["group_id"] = id(f.GroupID)
	}
	if f.Date != "" {
		q["date"] = f.Date
	}
	if f.DateFrom != "" {
		q["date_from"] = f.DateFrom
	}
	if f.DateTo != "" {
		q["date_to"] = f.DateTo
	}

	var out []ScheduleEntry
	if err := s.c.Get(ctx, "/api/v1/schedule", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
