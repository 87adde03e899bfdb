package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/qr/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/service"
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

type mockAttendanceService struct {
	service.AttendanceService
	err    error
	caller service.Caller
	req    *dto.ValidateRequest
	userID uint
}

func (m *mockAttendanceService) Generate(_ context.Context, _ *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	return &dto.GenerateResponse{QRCode: "code", TokenID: "tid"}, m.err
}

func (m *mockAttendanceService) Validate(_ context.Context, caller service.Caller, req *dto.ValidateRequest) (*dto.ValidateResponse, error) {
	m.caller, m.req = caller, req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.ValidateResponse{Success: true, SessionData: &dto.SessionData{UserID: caller.ID}}, nil
}

func (m *mockAttendanceService) Sessions(_ context.Context, caller service.Caller, userID uint) (*dto.UserSessionsResponse, error) {
	m.caller, m.userID = caller, userID
	if m.err != nil {
		return nil, m.err
	}
	return &dto.UserSessionsResponse{UserID: userID, Sessions: []dto.SessionResponse{}}, nil
}

type mockScheduleService struct {
	service.ScheduleService
	err error
	q   *dto.ScheduleQuery
}

func (m *mockScheduleService) ForUser(_ context.Context, _ service.Caller, userID uint, q *dto.ScheduleQuery) (*dto.UserScheduleResponse, error) {
	m.q = q
	if m.err != nil {
		return nil, m.err
	}
	return &dto.UserScheduleResponse{UserID: userID, Role: roles.Student}, nil
}

type mockStatsService struct {
	service.StatsService
	err error
	req *dto.StatsRequest
}

func (m *mockStatsService) Stats(_ context.Context, req *dto.StatsRequest) ([]model.AttendanceStat, error) {
	m.req = req
	return []model.AttendanceStat{{SubjectID: 4, AttendanceCount: 2}}, m.err
}

func (m *mockStatsService) Export(_ context.Context, req *dto.StatsRequest) (*bytes.Buffer, string, error) {
	m.req = req
	if m.err != nil {
		return nil, "", m.err
	}
	return bytes.NewBufferString("PK"), "attendance_2026-09-01_2026-09-30.xlsx", nil
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

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// AttendanceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandler_Generate(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})
	r := gin.New()
	r.POST("/qr", withAuth(20, roles.Teacher, h.Generate))

	w := serve(r, "POST", "/qr", jsonBody(map[string]uint{"subject_id": 4, "shift_id": 2, "teacher_id": 7}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = serve(r, "POST", "/qr", jsonBody(map[string]uint{"subject_id": 4}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing ids: expected 400, got %d", w.Code)
	}
}

func TestAttendanceHandler_Validate(t *testing.T) {
	svc := &mockAttendanceService{}
	h := NewAttendanceHandler(svc)
	r := gin.New()
	r.POST("/validate_qr", withAuth(10, roles.Student, h.Validate))

	w := serve(r, "POST", "/validate_qr", jsonBody(map[string]string{"qr_code": "abc"}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.caller.ID != 10 || svc.req.QRCode != "abc" || svc.req.UserID != 0 {
		t.Errorf("caller = %+v, req = %+v", svc.caller, svc.req)
	}

	w = serve(r, "POST", "/validate_qr", jsonBody(map[string]string{}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing qr_code: expected 400, got %d", w.Code)
	}
}

func TestAttendanceHandler_Validate_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   int
	}{
		{service.ErrInvalidQR, http.StatusBadRequest, CodeInvalidQR},
		{service.ErrQRExpired, http.StatusBadRequest, CodeQRExpired},
		{service.ErrQRUsed, http.StatusConflict, CodeQRUsed},
		{service.ErrNotSelf, http.StatusForbidden, CodeNotSelf},
		{service.ErrUserNotFound, http.StatusNotFound, CodeUserNotFound},
		{service.ErrDirectoryDown, http.StatusServiceUnavailable, response.CodeUnavailable},
		{service.ErrReplayDown, http.StatusServiceUnavailable, response.CodeUnavailable},
	}
	for _, tt := range tests {
		h := NewAttendanceHandler(&mockAttendanceService{err: tt.err})
		r := gin.New()
		r.POST("/validate_qr", withAuth(10, roles.Student, h.Validate))

		w := serve(r, "POST", "/validate_qr", jsonBody(map[string]string{"qr_code": "abc"}))
		if w.Code != tt.wantStatus {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.wantStatus, w.Code)
		}
		if resp := parseResponse(w); resp.Code != tt.wantCode {
			t.Errorf("%v: expected code %d, got %d", tt.err, tt.wantCode, resp.Code)
		}
	}
}

func TestAttendanceHandler_Sessions(t *testing.T) {
	svc := &mockAttendanceService{}
	h := NewAttendanceHandler(svc)
	r := gin.New()
	r.GET("/sessions/:user_id", withAuth(1, roles.Admin, h.Sessions))

	w := serve(r, "GET", "/sessions/10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.userID != 10 || svc.caller.Role != roles.Admin {
		t.Errorf("userID = %d, caller = %+v", svc.userID, svc.caller)
	}

	w = serve(r, "GET", "/sessions/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}
}

func TestAttendanceHandler_Unauthenticated(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})
	r := gin.New()
	r.POST("/validate_qr", h.Validate)

	w := serve(r, "POST", "/validate_qr", jsonBody(map[string]string{"qr_code": "abc"}))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduleHandler_ForUser(t *testing.T) {
	svc := &mockScheduleService{}
	h := NewScheduleHandler(svc)
	r := gin.New()
	r.GET("/schedule/:user_id", withAuth(10, roles.Student, h.ForUser))

	w := serve(r, "GET", "/schedule/10?date_from=2026-09-01", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.q.DateFrom != "2026-09-01" {
		t.Errorf("query = %+v", svc.q)
	}

	w = serve(r, "GET", "/schedule/10?date_from=01.09.2026", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date: expected 400, got %d", w.Code)
	}

	tests := []struct {
		err        error
		wantStatus int
	}{
		{service.ErrNoSchedule, http.StatusBadRequest},
		{service.ErrProfileNotFound, http.StatusNotFound},
		{service.ErrScheduleDown, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		h := NewScheduleHandler(&mockScheduleService{err: tt.err})
		r := gin.New()
		r.GET("/schedule/:user_id", withAuth(10, roles.Student, h.ForUser))
		if w := serve(r, "GET", "/schedule/10", nil); w.Code != tt.wantStatus {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.wantStatus, w.Code)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// StatsHandler Tests
// ═══════════════════════════════════════════════════════════

func TestStatsHandler_Stats(t *testing.T) {
	svc := &mockStatsService{}
	h := NewStatsHandler(svc)
	r := gin.New()
	r.GET("/stats", h.Stats)

	w := serve(r, "GET", "/stats?start_date=2026-09-01&end_date=2026-09-30", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.req.StartDate != "2026-09-01" || svc.req.EndDate != "2026-09-30" {
		t.Errorf("req = %+v", svc.req)
	}
	if !strings.Contains(w.Body.String(), `"stats"`) {
		t.Errorf("body = %s", w.Body.String())
	}

	w = serve(r, "GET", "/stats?start_date=yesterday", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date: expected 400, got %d", w.Code)
	}

	h = NewStatsHandler(&mockStatsService{err: service.ErrInvalidRange})
	r = gin.New()
	r.GET("/stats", h.Stats)
	w = serve(r, "GET", "/stats", nil)
	if resp := parseResponse(w); w.Code != http.StatusBadRequest || resp.Code != CodeInvalidRange {
		t.Errorf("invalid range: got %d/%d", w.Code, resp.Code)
	}
}

func TestStatsHandler_Export(t *testing.T) {
	h := NewStatsHandler(&mockStatsService{})
	r := gin.New()
	r.GET("/stats/export", h.Export)

	w := serve(r, "GET", "/stats/export?start_date=2026-09-01&end_date=2026-09-30", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attendance_2026-09-01_2026-09-30.xlsx") {
		t.Errorf("content disposition = %q", cd)
	}
	if w.Body.String() != "PK" {
		t.Errorf("body = %q", w.Body.String())
	}
}
