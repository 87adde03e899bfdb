package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yerk0w/EduLifeFor-merge/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParamID(t *testing.T) {
	tests := []struct {
		path       string
		wantStatus int
		wantID     uint
	}{
		{"/items/42", http.StatusOK, 42},
		{"/items/0", http.StatusBadRequest, 0},
		{"/items/-1", http.StatusBadRequest, 0},
		{"/items/abc", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		var got uint
		r := gin.New()
		r.GET("/items/:id", func(c *gin.Context) {
			id, ok := ParamID(c, "id")
			if !ok {
				return
			}
			got = id
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))
		if w.Code != tt.wantStatus {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.wantStatus, w.Code)
		}
		if got != tt.wantID {
			t.Errorf("%s: expected id %d, got %d", tt.path, tt.wantID, got)
		}
	}
}

func TestQueryUint(t *testing.T) {
	tests := []struct {
		query  string
		wantOK bool
		want   uint
	}{
		{"", true, 0},
		{"?group_id=7", true, 7},
		{"?group_id=seven", false, 0},
	}
	for _, tt := range tests {
		var (
			got uint
			ok  bool
		)
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			got, ok = QueryUint(c, "group_id")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/"+tt.query, nil))
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("%q: got (%d, %v), want (%d, %v)", tt.query, got, ok, tt.want, tt.wantOK)
		}
		if !tt.wantOK && w.Code != http.StatusBadRequest {
			t.Errorf("%q: expected 400, got %d", tt.query, w.Code)
		}
	}
}

func TestBindError(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) { BindError(c, errors.New("Key: 'x' failed")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != response.CodeBadRequest || resp.Details == "" {
		t.Errorf("response = %+v", resp)
	}
}
