package dto

import "github.com/yerk0w/EduLifeFor-merge/pkg/client"

// ── attendance report ──

// ReportQuery period of POST /integration/attendance-report/:group_id
type ReportQuery struct {
	StartDate string `form:"start_date" binding:"required,isodate"`
	EndDate   string `form:"end_date"   binding:"required,isodate"`
}

// Period inclusive date range
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// StudentAttendance one row of the group report
type StudentAttendance struct {
	StudentID         uint    `json:"student_id"`
	StudentName       string  `json:"student_name"`
	TotalClasses      int     `json:"total_classes"`
	AttendedClasses   int     `json:"attended_classes"`
	AttendancePercent float64 `json:"attendance_percent"`
}

// AttendanceReportResponse the stored report and the figures behind it
type AttendanceReportResponse struct {
	DocumentID     uint                `json:"document_id"`
	GroupInfo      client.GroupInfo    `json:"group_info"`
	Period         Period              `json:"period"`
	AttendanceData []StudentAttendance `json:"attendance_data"`
}

// ── paperwork ──

// AbsenceQuery POST /integration/absence-request/:student_id
type AbsenceQuery struct {
	Date   string `form:"date"   binding:"required,isodate"`
	Reason string `form:"reason" binding:"required,max=1000"`
}

// AbsenceRequestResponse the filed absence request
type AbsenceRequestResponse struct {
	DocumentID  uint                   `json:"document_id"`
	StudentInfo client.StudentInfo     `json:"student_info"`
	Date        string                 `json:"date"`
	Reason      string                 `json:"reason"`
	Schedule    []client.ScheduleEntry `json:"schedule"`
}

// ReferenceResponse the issued enrollment certificate
type ReferenceResponse struct {
	DocumentID  uint               `json:"document_id"`
	StudentInfo client.StudentInfo `json:"student_info"`
	GroupInfo   client.GroupInfo   `json:"group_info"`
	IssueDate   string             `json:"issue_date"`
}

// ── views ──

// ScheduleQuery optional bounds of GET /integration/teacher-schedule/:teacher_id
type ScheduleQuery struct {
	DateFrom string `form:"date_from" binding:"omitempty,isodate"`
	DateTo   string `form:"date_to"   binding:"omitempty,isodate"`
}

// TeacherLesson schedule row with teacher and group details filled in
type TeacherLesson struct {
	client.ScheduleEntry
	TeacherPosition string `json:"teacher_position"`
	GroupYear       int    `json:"group_year"`
}

// TeacherScheduleResponse GET /integration/teacher-schedule/:teacher_id
type TeacherScheduleResponse struct {
	TeacherInfo client.TeacherInfo `json:"teacher_info"`
	Schedule    []TeacherLesson    `json:"schedule"`
}

// AttendanceRecord attendance mark with the matching lesson's names
type AttendanceRecord struct {
	client.SessionInfo
	SubjectName string `json:"subject_name"`
	TeacherName string `json:"teacher_name"`
	Classroom   string `json:"classroom"`
}

// StudentAttendanceResponse GET /integration/student-attendance/:student_id
type StudentAttendanceResponse struct {
	StudentInfo client.StudentInfo `json:"student_info"`
	Attendance  []AttendanceRecord `json:"attendance"`
}

// ── health ──

// ServiceEndpoint sibling the integration layer talks to
type ServiceEndpoint struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// HealthResponse GET /integration/health
type HealthResponse struct {
	Status   string            `json:"status"`
	Services []ServiceEndpoint `json:"services"`
}
