package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/internal/keys/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/service"
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

type mockKeyService struct {
	service.KeyService
	err       error
	caller    service.Caller
	teacherID uint
	notes     string
	update    *dto.UpdateKeyRequest
}

func (m *mockKeyService) Get(_ context.Context, id uint) (*dto.KeyResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.KeyResponse{ID: id, KeyCode: "K001"}, nil
}

func (m *mockKeyService) ListByTeacher(_ context.Context, caller service.Caller, teacherID uint) ([]dto.KeyResponse, error) {
	m.caller, m.teacherID = caller, teacherID
	return []dto.KeyResponse{}, m.err
}

func (m *mockKeyService) Create(_ context.Context, req *dto.CreateKeyRequest) (*dto.KeyResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.KeyResponse{ID: 9, KeyCode: req.KeyCode}, nil
}

func (m *mockKeyService) Update(_ context.Context, id uint, req *dto.UpdateKeyRequest) (*dto.KeyResponse, error) {
	m.update = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.KeyResponse{ID: id}, nil
}

func (m *mockKeyService) Delete(_ context.Context, _ uint) error {
	return m.err
}

func (m *mockKeyService) Assign(_ context.Context, keyID, teacherID uint, notes string) (*dto.KeyResponse, error) {
	m.teacherID, m.notes = teacherID, notes
	if m.err != nil {
		return nil, m.err
	}
	return &dto.KeyResponse{ID: keyID, IsAssigned: true}, nil
}

type mockTransferService struct {
	service.TransferService
	err    error
	caller service.Caller
	status string
	reason string
	req    *dto.CreateTransferRequest
}

func (m *mockTransferService) List(_ context.Context, status string) ([]dto.TransferResponse, error) {
	m.status = status
	return []dto.TransferResponse{}, m.err
}

func (m *mockTransferService) Incoming(_ context.Context, caller service.Caller) ([]dto.TransferResponse, error) {
	m.caller = caller
	return []dto.TransferResponse{{ID: 1}}, m.err
}

func (m *mockTransferService) Create(_ context.Context, caller service.Caller, req *dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	m.caller, m.req = caller, req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.TransferResponse{ID: 3, Status: "pending"}, nil
}

func (m *mockTransferService) Approve(_ context.Context, caller service.Caller, id uint) (*dto.TransferResponse, error) {
	m.caller = caller
	if m.err != nil {
		return nil, m.err
	}
	return &dto.TransferResponse{ID: id, Status: "approved"}, nil
}

func (m *mockTransferService) Reject(_ context.Context, caller service.Caller, id uint, reason string) (*dto.TransferResponse, error) {
	m.caller, m.reason = caller, reason
	if m.err != nil {
		return nil, m.err
	}
	return &dto.TransferResponse{ID: id, Status: "rejected"}, nil
}

type mockHistoryService struct {
	service.HistoryService
	err error
	q   *dto.HistoryQuery
}

func (m *mockHistoryService) ByTeacher(_ context.Context, _ service.Caller, _ uint) ([]dto.HistoryResponse, error) {
	return []dto.HistoryResponse{}, m.err
}

func (m *mockHistoryService) List(_ context.Context, q *dto.HistoryQuery) (*dto.HistoryPage, error) {
	m.q = q
	if m.err != nil {
		return nil, m.err
	}
	return &dto.HistoryPage{History: []dto.HistoryResponse{}, Limit: q.Limit, Offset: q.Offset}, nil
}

func (m *mockHistoryService) Export(_ context.Context) (*bytes.Buffer, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return bytes.NewBufferString("PK"), "key_history_2026-10-19.xlsx", nil
}

type mockDashboardService struct {
	service.DashboardService
	caller service.Caller
}

func (m *mockDashboardService) ForCaller(_ context.Context, caller service.Caller) (*dto.DashboardResponse, error) {
	m.caller = caller
	return &dto.DashboardResponse{TeacherID: caller.ID}, nil
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
// Error Mapping
// ═══════════════════════════════════════════════════════════

func TestHandleError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   int
	}{
		{service.ErrKeyNotFound, http.StatusNotFound, CodeKeyNotFound},
		{service.ErrKeyCodeExists, http.StatusConflict, CodeKeyCodeExists},
		{service.ErrKeyAssigned, http.StatusConflict, CodeKeyAssigned},
		{service.ErrKeyPendingTransfer, http.StatusConflict, CodeKeyPendingTransfer},
		{service.ErrAlreadyHolder, http.StatusBadRequest, CodeAlreadyHolder},
		{service.ErrKeyNotAssigned, http.StatusBadRequest, CodeKeyNotAssigned},
		{service.ErrNoFields, http.StatusBadRequest, CodeNoFields},
		{service.ErrKeysAccessDenied, http.StatusForbidden, CodeKeysAccessDenied},
		{service.ErrTransferNotFound, http.StatusNotFound, CodeTransferNotFound},
		{service.ErrTransferExists, http.StatusConflict, CodeTransferExists},
		{service.ErrKeyNotHeld, http.StatusBadRequest, CodeKeyNotHeld},
		{service.ErrSameTeacher, http.StatusBadRequest, CodeSameTeacher},
		{service.ErrTransferAccessDenied, http.StatusForbidden, CodeTransferAccessDenied},
		{service.ErrHolderChanged, http.StatusConflict, CodeHolderChanged},
		{service.ErrHistoryAccessDenied, http.StatusForbidden, CodeHistoryAccessDenied},
		{service.ErrExportFailed, http.StatusInternalServerError, CodeExportFailed},
		{errors.New("disk full"), http.StatusInternalServerError, response.CodeInternal},
	}
	for _, tt := range tests {
		r := gin.New()
		r.GET("/", func(c *gin.Context) { handleError(c, tt.err) })

		w := serve(r, "GET", "/", nil)
		if w.Code != tt.wantStatus {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.wantStatus, w.Code)
		}
		if resp := parseResponse(w); resp.Code != tt.wantCode {
			t.Errorf("%v: expected code %d, got %d", tt.err, tt.wantCode, resp.Code)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// KeyHandler Tests
// ═══════════════════════════════════════════════════════════

func TestKeyHandler_Get(t *testing.T) {
	h := NewKeyHandler(&mockKeyService{})
	r := gin.New()
	r.GET("/keys/:id", h.Get)

	if w := serve(r, "GET", "/keys/5", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := serve(r, "GET", "/keys/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}

	h = NewKeyHandler(&mockKeyService{err: service.ErrKeyNotFound})
	r = gin.New()
	r.GET("/keys/:id", h.Get)
	if w := serve(r, "GET", "/keys/5", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing key: expected 404, got %d", w.Code)
	}
}

func TestKeyHandler_ListByTeacher(t *testing.T) {
	svc := &mockKeyService{}
	h := NewKeyHandler(svc)
	r := gin.New()
	r.GET("/keys/teacher/:user_id", withAuth(20, roles.Teacher, h.ListByTeacher))

	w := serve(r, "GET", "/keys/teacher/21", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.caller.ID != 20 || svc.caller.Role != roles.Teacher || svc.teacherID != 21 {
		t.Errorf("caller = %+v, teacher = %d", svc.caller, svc.teacherID)
	}

	r = gin.New()
	r.GET("/keys/teacher/:user_id", h.ListByTeacher)
	if w := serve(r, "GET", "/keys/teacher/21", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no caller: expected 401, got %d", w.Code)
	}
}

func TestKeyHandler_Create(t *testing.T) {
	h := NewKeyHandler(&mockKeyService{})
	r := gin.New()
	r.POST("/keys", h.Create)

	w := serve(r, "POST", "/keys", jsonBody(map[string]interface{}{"key_code": "K100", "room_number": "110", "floor": 1}))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = serve(r, "POST", "/keys", jsonBody(map[string]string{"key_code": "K100"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing room: expected 400, got %d", w.Code)
	}

	w = serve(r, "POST", "/keys", jsonBody(map[string]string{"key_code": strings.Repeat("K", 21), "room_number": "1"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("long code: expected 400, got %d", w.Code)
	}
}

func TestKeyHandler_Update(t *testing.T) {
	svc := &mockKeyService{}
	h := NewKeyHandler(svc)
	r := gin.New()
	r.PUT("/keys/:id", h.Update)

	w := serve(r, "PUT", "/keys/1", jsonBody(map[string]interface{}{"floor": 0}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.update.Floor == nil || *svc.update.Floor != 0 || svc.update.KeyCode != nil {
		t.Errorf("update = %+v", svc.update)
	}

	w = serve(r, "PUT", "/keys/1", jsonBody(map[string]string{"key_code": ""}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty code: expected 400, got %d", w.Code)
	}
}

func TestKeyHandler_Delete(t *testing.T) {
	h := NewKeyHandler(&mockKeyService{err: service.ErrKeyAssigned})
	r := gin.New()
	r.DELETE("/keys/:id", h.Delete)

	w := serve(r, "DELETE", "/keys/1", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != CodeKeyAssigned {
		t.Errorf("expected code %d, got %d", CodeKeyAssigned, resp.Code)
	}
}

func TestKeyHandler_Assign(t *testing.T) {
	svc := &mockKeyService{}
	h := NewKeyHandler(svc)
	r := gin.New()
	r.POST("/keys/:id/assign/:teacher_id", h.Assign)

	w := serve(r, "POST", "/keys/1/assign/21?notes=%D0%BD%D0%B0+%D0%BD%D0%B5%D0%B4%D0%B5%D0%BB%D1%8E", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.teacherID != 21 || svc.notes != "на неделю" {
		t.Errorf("teacher = %d, notes = %q", svc.teacherID, svc.notes)
	}

	if w := serve(r, "POST", "/keys/1/assign/0", nil); w.Code != http.StatusBadRequest {
		t.Errorf("zero teacher: expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TransferHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTransferHandler_List(t *testing.T) {
	svc := &mockTransferService{}
	h := NewTransferHandler(svc)
	r := gin.New()
	r.GET("/transfers", h.List)

	if w := serve(r, "GET", "/transfers?status=approved", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.status != "approved" {
		t.Errorf("status = %q", svc.status)
	}
	if w := serve(r, "GET", "/transfers?status=lost", nil); w.Code != http.StatusBadRequest {
		t.Errorf("unknown status: expected 400, got %d", w.Code)
	}
}

func TestTransferHandler_Incoming(t *testing.T) {
	svc := &mockTransferService{}
	h := NewTransferHandler(svc)
	r := gin.New()
	r.GET("/transfers/incoming", withAuth(21, roles.Teacher, h.Incoming))

	w := serve(r, "GET", "/transfers/incoming", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.caller.ID != 21 {
		t.Errorf("caller = %+v", svc.caller)
	}
	var body struct {
		Data []dto.TransferResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if len(body.Data) != 1 {
		t.Errorf("expected 1 transfer, got %d", len(body.Data))
	}
}

func TestTransferHandler_Create(t *testing.T) {
	svc := &mockTransferService{}
	h := NewTransferHandler(svc)
	r := gin.New()
	r.POST("/transfers", withAuth(20, roles.Teacher, h.Create))

	w := serve(r, "POST", "/transfers", jsonBody(map[string]interface{}{"key_id": 1, "to_teacher_id": 21, "notes": "на пару"}))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.caller.ID != 20 || svc.req.KeyID != 1 || svc.req.ToTeacherID != 21 || svc.req.FromTeacherID != 0 {
		t.Errorf("caller = %+v, req = %+v", svc.caller, svc.req)
	}

	w = serve(r, "POST", "/transfers", jsonBody(map[string]interface{}{"key_id": 1}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing recipient: expected 400, got %d", w.Code)
	}

	h = NewTransferHandler(&mockTransferService{err: service.ErrTransferExists})
	r = gin.New()
	r.POST("/transfers", withAuth(20, roles.Teacher, h.Create))
	w = serve(r, "POST", "/transfers", jsonBody(map[string]interface{}{"key_id": 1, "to_teacher_id": 21}))
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate: expected 409, got %d", w.Code)
	}
}

func TestTransferHandler_Decisions(t *testing.T) {
	svc := &mockTransferService{}
	h := NewTransferHandler(svc)
	r := gin.New()
	r.POST("/transfers/:id/approve", withAuth(21, roles.Teacher, h.Approve))
	r.POST("/transfers/:id/reject", withAuth(21, roles.Teacher, h.Reject))

	if w := serve(r, "POST", "/transfers/3/approve", nil); w.Code != http.StatusOK {
		t.Errorf("approve: expected 200, got %d", w.Code)
	}
	if w := serve(r, "POST", "/transfers/3/reject?reason=busy", nil); w.Code != http.StatusOK {
		t.Errorf("reject: expected 200, got %d", w.Code)
	}
	if svc.reason != "busy" || svc.caller.ID != 21 {
		t.Errorf("reason = %q, caller = %+v", svc.reason, svc.caller)
	}
	if w := serve(r, "POST", "/transfers/x/approve", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}

	h = NewTransferHandler(&mockTransferService{err: service.ErrHolderChanged})
	r = gin.New()
	r.POST("/transfers/:id/approve", withAuth(21, roles.Teacher, h.Approve))
	w := serve(r, "POST", "/transfers/3/approve", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("holder changed: expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != CodeHolderChanged {
		t.Errorf("expected code %d, got %d", CodeHolderChanged, resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// HistoryHandler / DashboardHandler Tests
// ═══════════════════════════════════════════════════════════

func TestHistoryHandler_List(t *testing.T) {
	svc := &mockHistoryService{}
	h := NewHistoryHandler(svc)
	r := gin.New()
	r.GET("/history", h.List)

	if w := serve(r, "GET", "/history?limit=20&offset=40", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.q.Limit != 20 || svc.q.Offset != 40 {
		t.Errorf("query = %+v", svc.q)
	}
	if w := serve(r, "GET", "/history?limit=5000", nil); w.Code != http.StatusBadRequest {
		t.Errorf("limit too large: expected 400, got %d", w.Code)
	}
}

func TestHistoryHandler_ByTeacherDenied(t *testing.T) {
	h := NewHistoryHandler(&mockHistoryService{err: service.ErrHistoryAccessDenied})
	r := gin.New()
	r.GET("/history/teacher/:id", withAuth(21, roles.Teacher, h.ByTeacher))

	if w := serve(r, "GET", "/history/teacher/20", nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestHistoryHandler_Export(t *testing.T) {
	h := NewHistoryHandler(&mockHistoryService{})
	r := gin.New()
	r.GET("/history/export", h.Export)

	w := serve(r, "GET", "/history/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "key_history_2026-10-19.xlsx") {
		t.Errorf("content disposition = %q", cd)
	}
	if w.Body.String() != "PK" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestDashboardHandler_Mine(t *testing.T) {
	svc := &mockDashboardService{}
	h := NewDashboardHandler(svc)
	r := gin.New()
	r.GET("/dashboard", withAuth(20, roles.Teacher, h.Mine))

	if w := serve(r, "GET", "/dashboard", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.caller.ID != 20 || svc.caller.Role != roles.Teacher {
		t.Errorf("caller = %+v", svc.caller)
	}
}
