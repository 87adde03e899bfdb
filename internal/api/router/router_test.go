package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
)

func testConfig(proxies ...string) *config.Config {
	return &config.Config{
		Service: config.ServiceAuth,
		Server: config.ServerConfig{
			BodyLimit:      1 << 20,
			CORS:           config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
			TrustedProxies: proxies,
		},
	}
}

// whoami echoes the address the engine resolved and the one queued for sibling calls
func whoami(r *gin.Engine) {
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.ClientIP()+"|"+client.ClientIPFrom(c.Request.Context()))
	})
}

func TestNewEngine_TrustedProxies(t *testing.T) {
	r := NewEngine(testConfig("127.0.0.1", "::1"), zap.NewNop())
	whoami(r)

	tests := []struct {
		name   string
		remote string
		xff    string
		want   string
	}{
		{"direct client", "203.0.113.9:41000", "", "203.0.113.9"},
		{"spoofed header ignored", "203.0.113.9:41000", "10.9.9.9", "203.0.113.9"},
		{"sibling forwards the caller", "127.0.0.1:52000", "198.51.100.7", "198.51.100.7"},
		{"sibling without header", "127.0.0.1:52000", "", "127.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := strings.Split(w.Body.String(), "|")
			if len(got) != 2 || got[0] != tt.want || got[1] != tt.want {
				t.Errorf("expected %s for both, got %q", tt.want, w.Body.String())
			}
		})
	}
}

func TestNewEngine_NoProxiesTrusted(t *testing.T) {
	r := NewEngine(testConfig(), zap.NewNop())
	whoami(r)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.RemoteAddr = "127.0.0.1:52000"
	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !strings.HasPrefix(w.Body.String(), "127.0.0.1|") {
		t.Errorf("no proxy is trusted, got %q", w.Body.String())
	}
}

func TestNewEngine_Health(t *testing.T) {
	r := NewEngine(testConfig(), zap.NewNop())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"service":"auth"`) {
		t.Errorf("unexpected health answer %d %s", w.Code, w.Body.String())
	}
}
