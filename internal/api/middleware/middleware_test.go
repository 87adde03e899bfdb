package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	"github.com/yerk0w/EduLifeFor-merge/pkg/jwt"
	"github.com/yerk0w/EduLifeFor-merge/pkg/redis"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "middleware-test-secret-0123456789",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
}

func TestJWTAuth(t *testing.T) {
	mgr := testJWT()
	access, _ := mgr.GenerateAccessToken(5, "sidorov", roles.Teacher)
	refresh, _ := mgr.GenerateRefreshToken(5, "sidorov", roles.Teacher)

	r := gin.New()
	r.GET("/me", JWTAuth(mgr, nil), func(c *gin.Context) {
		id, role, ok := MustGetCaller(c)
		if !ok {
			return
		}
		if client.TokenFrom(c.Request.Context()) != access {
			t.Error("token not propagated into request context")
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"malformed", "Token abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"valid", "Bearer " + access, http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, w.Code)
		}
	}
}

func TestJWTAuth_RevokedSession(t *testing.T) {
	mgr := testJWT()
	mr := miniredis.RunT(t)
	rdb := redis.NewFromUniversal(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), zap.NewNop())

	access, refresh, _ := mgr.GenerateTokenPair(5, "sidorov", roles.Teacher)
	claims, _ := mgr.ParseToken(refresh)
	// minted later from the same refresh token
	later, _ := mgr.GenerateSessionAccessToken(claims.SessionID, 5, "sidorov", roles.Teacher)
	other, _ := mgr.GenerateAccessToken(5, "sidorov", roles.Teacher)

	r := gin.New()
	r.GET("/me", JWTAuth(mgr, rdb), func(c *gin.Context) { c.Status(http.StatusOK) })
	call := func(token string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := call(later); code != http.StatusOK {
		t.Fatalf("live session: expected 200, got %d", code)
	}
	if err := rdb.RevokeSession(context.Background(), claims.SessionID, time.Hour); err != nil {
		t.Fatal(err)
	}
	for name, token := range map[string]string{"login token": access, "refreshed token": later} {
		if code := call(token); code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 after logout, got %d", name, code)
		}
	}
	if code := call(other); code != http.StatusOK {
		t.Errorf("other session: expected 200, got %d", code)
	}
}

func TestRoleAuth(t *testing.T) {
	r := gin.New()
	setRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) { c.Set(CtxRole, role) }
	}
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/admin", setRole(roles.Admin), RoleAuth(roles.Admin), ok)
	r.GET("/student", setRole(roles.Student), RoleAuth(roles.Admin, roles.Teacher), ok)
	r.GET("/anon", RoleAuth(roles.Admin), ok)

	for path, want := range map[string]int{
		"/admin":   http.StatusOK,
		"/student": http.StatusForbidden,
		"/anon":    http.StatusUnauthorized,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != want {
			t.Errorf("%s: expected %d, got %d", path, want, w.Code)
		}
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen, ip string
	r.GET("/", func(c *gin.Context) {
		seen = client.RequestIDFrom(c.Request.Context())
		ip = client.ClientIPFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	req.RemoteAddr = "192.0.2.10:40000"
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "abc-123" || seen != "abc-123" {
		t.Errorf("expected inbound id to be kept, header=%q ctx=%q", w.Header().Get("X-Request-ID"), seen)
	}
	if ip != "192.0.2.10" {
		t.Errorf("expected client ip in context, got %q", ip)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Header().Get("X-Request-ID")) != 36 {
		t.Errorf("expected generated uuid, got %q", w.Header().Get("X-Request-ID"))
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8, 64))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := []struct {
		name        string
		contentType string
		length      int64
		want        int
	}{
		{"small json", "application/json", 4, http.StatusOK},
		{"large json", "application/json", 100, http.StatusRequestEntityTooLarge},
		{"upload within limit", "multipart/form-data; boundary=x", 32, http.StatusOK},
		{"upload over limit", "multipart/form-data; boundary=x", 100, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		req.Header.Set("Content-Type", tc.contentType)
		req.ContentLength = tc.length
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, w.Code)
		}
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight: expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" ||
		w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Errorf("unexpected headers: %v", w.Header())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign preflight: expected 403, got %d", w.Code)
	}

	r = gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://any.example")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" || w.Header().Get("Access-Control-Allow-Credentials") != "" {
		t.Errorf("wildcard: unexpected headers: %v", w.Header())
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders("keys"))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/keys", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/keys", nil))
	if w.Header().Get("X-Served-By") != "edulife-keys" || w.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("api: unexpected headers: %v", w.Header())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Header().Get("Cache-Control") != "" {
		t.Errorf("health should stay cacheable, got %q", w.Header().Get("Cache-Control"))
	}
}

func TestRateLimitKey(t *testing.T) {
	r := gin.New()
	var keys []string
	r.POST("/auth/login", func(c *gin.Context) { keys = append(keys, rateLimitKey(c)) })
	r.POST("/validate_qr", func(c *gin.Context) {
		c.Set(CtxUserID, uint(10))
		keys = append(keys, rateLimitKey(c))
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.7:5555"
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/validate_qr", nil))

	want := []string{"rate_limit:/auth/login:ip:10.0.0.7", "rate_limit:/validate_qr:user:10"}
	if len(keys) != 2 || keys[0] != want[0] || keys[1] != want[1] {
		t.Errorf("keys = %v, want %v", keys, want)
	}
}

func TestRateLimitKey_ForwardedFor(t *testing.T) {
	r := gin.New()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		t.Fatal(err)
	}
	var keys []string
	r.POST("/auth/register", func(c *gin.Context) { keys = append(keys, rateLimitKey(c)) })

	send := func(remote, xff string) {
		req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
		req.RemoteAddr = remote
		req.Header.Set("X-Forwarded-For", xff)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	// two sign-ups relayed by a sibling on loopback, one client spoofing the header
	send("127.0.0.1:50001", "198.51.100.1")
	send("127.0.0.1:50002", "198.51.100.2")
	send("203.0.113.5:60000", "198.51.100.1")

	want := []string{
		"rate_limit:/auth/register:ip:198.51.100.1",
		"rate_limit:/auth/register:ip:198.51.100.2",
		"rate_limit:/auth/register:ip:203.0.113.5",
	}
	if !slices.Equal(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
}

func TestRateLimit_WithoutRedis(t *testing.T) {
	r := gin.New()
	r.POST("/", RateLimit(nil, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}
