package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/integration/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/integration/service"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
	"github.com/yerk0w/EduLifeFor-merge/pkg/validate"
)

func init() {
	gin.SetMode(gin.TestMode)
	validate.Register()
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

type mockReportService struct {
	service.ReportService
	err     error
	caller  service.Caller
	groupID uint
	q       *dto.ReportQuery
}

func (m *mockReportService) AttendanceReport(_ context.Context, groupID uint, q *dto.ReportQuery) (*dto.AttendanceReportResponse, error) {
	m.groupID, m.q = groupID, q
	if m.err != nil {
		return nil, m.err
	}
	return &dto.AttendanceReportResponse{DocumentID: 101, Period: dto.Period{Start: q.StartDate, End: q.EndDate}}, nil
}

func (m *mockReportService) StudentAttendance(_ context.Context, caller service.Caller, studentID uint) (*dto.StudentAttendanceResponse, error) {
	m.caller = caller
	if m.err != nil {
		return nil, m.err
	}
	return &dto.StudentAttendanceResponse{StudentInfo: client.StudentInfo{ID: studentID}, Attendance: []dto.AttendanceRecord{}}, nil
}

type mockPaperworkService struct {
	service.PaperworkService
	err    error
	caller service.Caller
	q      *dto.AbsenceQuery
}

func (m *mockPaperworkService) AbsenceRequest(_ context.Context, caller service.Caller, studentID uint, q *dto.AbsenceQuery) (*dto.AbsenceRequestResponse, error) {
	m.caller, m.q = caller, q
	if m.err != nil {
		return nil, m.err
	}
	return &dto.AbsenceRequestResponse{DocumentID: 102, StudentInfo: client.StudentInfo{ID: studentID}, Date: q.Date}, nil
}

func (m *mockPaperworkService) Reference(_ context.Context, caller service.Caller, studentID uint) (*dto.ReferenceResponse, error) {
	m.caller = caller
	if m.err != nil {
		return nil, m.err
	}
	return &dto.ReferenceResponse{DocumentID: 103, StudentInfo: client.StudentInfo{ID: studentID}}, nil
}

type mockViewService struct {
	service.ViewService
	err error
	q   *dto.ScheduleQuery
}

func (m *mockViewService) TeacherSchedule(_ context.Context, teacherID uint, q *dto.ScheduleQuery) (*dto.TeacherScheduleResponse, error) {
	m.q = q
	if m.err != nil {
		return nil, m.err
	}
	return &dto.TeacherScheduleResponse{TeacherInfo: client.TeacherInfo{ID: teacherID}, Schedule: []dto.TeacherLesson{}}, nil
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func withAuth(userID uint, role string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		h(c)
	}
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

// ═══════════════════════════════════════════════════════════
// ReportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReportHandler_AttendanceReport(t *testing.T) {
	svc := &mockReportService{}
	h := NewReportHandler(svc)
	r := gin.New()
	r.POST("/attendance-report/:group_id", withAuth(1, roles.Admin, h.AttendanceReport))

	w := serve(r, "POST", "/attendance-report/3?start_date=2026-09-01&end_date=2026-09-30")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.groupID != 3 || svc.q.StartDate != "2026-09-01" || svc.q.EndDate != "2026-09-30" {
		t.Errorf("group = %d, query = %+v", svc.groupID, svc.q)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing end", "/attendance-report/3?start_date=2026-09-01"},
		{"bad date", "/attendance-report/3?start_date=01.09.2026&end_date=2026-09-30"},
		{"bad id", "/attendance-report/abc?start_date=2026-09-01&end_date=2026-09-30"},
	}
	for _, tt := range tests {
		if w := serve(r, "POST", tt.path); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, w.Code)
		}
	}
}

func TestReportHandler_StudentAttendance(t *testing.T) {
	svc := &mockReportService{}
	h := NewReportHandler(svc)
	r := gin.New()
	r.GET("/student-attendance/:student_id", withAuth(10, roles.Student, h.StudentAttendance))

	w := serve(r, "GET", "/student-attendance/5")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.caller.ID != 10 || svc.caller.Role != roles.Student {
		t.Errorf("caller = %+v", svc.caller)
	}
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   int
	}{
		{service.ErrGroupNotFound, http.StatusNotFound, CodeGroupNotFound},
		{service.ErrStudentNotFound, http.StatusNotFound, CodeStudentNotFound},
		{service.ErrTeacherNotFound, http.StatusNotFound, CodeTeacherNotFound},
		{service.ErrNoGroup, http.StatusBadRequest, CodeNoGroup},
		{service.ErrNotSelf, http.StatusForbidden, CodeNotSelf},
		{service.ErrNotAllowed, http.StatusForbidden, CodeNotAllowed},
		{service.ErrInvalidRange, http.StatusBadRequest, CodeInvalidRange},
		{service.ErrRejected, http.StatusBadRequest, CodeRejected},
		{service.ErrAuthDown, http.StatusServiceUnavailable, response.CodeUnavailable},
		{service.ErrScheduleDown, http.StatusServiceUnavailable, response.CodeUnavailable},
		{service.ErrQRDown, http.StatusServiceUnavailable, response.CodeUnavailable},
		{service.ErrDocumentDown, http.StatusServiceUnavailable, response.CodeUnavailable},
	}
	for _, tt := range tests {
		h := NewReportHandler(&mockReportService{err: tt.err})
		r := gin.New()
		r.GET("/student-attendance/:student_id", withAuth(10, roles.Student, h.StudentAttendance))

		w := serve(r, "GET", "/student-attendance/5")
		if w.Code != tt.wantStatus {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.wantStatus, w.Code)
		}
		if resp := parseResponse(w); resp.Code != tt.wantCode {
			t.Errorf("%v: expected code %d, got %d", tt.err, tt.wantCode, resp.Code)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// PaperworkHandler Tests
// ═══════════════════════════════════════════════════════════

func TestPaperworkHandler_AbsenceRequest(t *testing.T) {
	svc := &mockPaperworkService{}
	h := NewPaperworkHandler(svc)
	r := gin.New()
	r.POST("/absence-request/:student_id", withAuth(10, roles.Student, h.AbsenceRequest))

	w := serve(r, "POST", "/absence-request/5?date=2026-09-02&reason=%D0%B1%D0%BE%D0%BB%D0%B5%D0%B7%D0%BD%D1%8C")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.caller.ID != 10 || svc.q.Reason != "болезнь" || svc.q.Date != "2026-09-02" {
		t.Errorf("caller = %+v, query = %+v", svc.caller, svc.q)
	}

	if w := serve(r, "POST", "/absence-request/5?date=2026-09-02"); w.Code != http.StatusBadRequest {
		t.Errorf("missing reason: expected 400, got %d", w.Code)
	}
}

func TestPaperworkHandler_Reference(t *testing.T) {
	svc := &mockPaperworkService{}
	h := NewPaperworkHandler(svc)
	r := gin.New()
	r.POST("/reference/:student_id", withAuth(1, roles.Admin, h.Reference))

	w := serve(r, "POST", "/reference/5")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if svc.caller.Role != roles.Admin {
		t.Errorf("caller = %+v", svc.caller)
	}

	h = NewPaperworkHandler(&mockPaperworkService{err: service.ErrNotSelf})
	r = gin.New()
	r.POST("/reference/:student_id", withAuth(11, roles.Student, h.Reference))
	if w := serve(r, "POST", "/reference/5"); w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ViewHandler / HealthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestViewHandler_TeacherSchedule(t *testing.T) {
	svc := &mockViewService{}
	h := NewViewHandler(svc)
	r := gin.New()
	r.GET("/teacher-schedule/:teacher_id", withAuth(10, roles.Student, h.TeacherSchedule))

	w := serve(r, "GET", "/teacher-schedule/7?date_from=2026-09-01")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.q.DateFrom != "2026-09-01" || svc.q.DateTo != "" {
		t.Errorf("query = %+v", svc.q)
	}

	if w := serve(r, "GET", "/teacher-schedule/7?date_to=tomorrow"); w.Code != http.StatusBadRequest {
		t.Errorf("bad date: expected 400, got %d", w.Code)
	}
}

func TestHealthHandler_ListsSiblings(t *testing.T) {
	h := &HealthHandler{siblings: []dto.ServiceEndpoint{{Name: "auth", URL: "http://localhost:8070"}}}
	r := gin.New()
	r.GET("/health", h.Health)

	w := serve(r, "GET", "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Data dto.HealthResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Status != "healthy" || len(body.Data.Services) != 1 || body.Data.Services[0].Name != "auth" {
		t.Errorf("unexpected body %+v", body.Data)
	}
}
