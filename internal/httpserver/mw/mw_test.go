package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MrSnakeDoc/comments/internal/logger"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func nopLogger() logger.Logger { return logger.NewFromZap(zap.NewNop()) }

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"api.example.com", "api.example.com", true},
		{"api.example.com", "*.example.com", true},
		{"a.b.example.com", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"evilexample.com", "*.example.com", false},
		{"other.com", "api.example.com", false},
	}
	for _, tt := range tests {
		if got := matchHost(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"API.example.com"}, nopLogger())(ok)

	tests := []struct {
		host string
		want int
	}{
		{"api.example.com", http.StatusOK},
		{"api.example.com:8080", http.StatusOK},
		{"evil.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Host = tt.host
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		if rec.Code != tt.want {
			t.Errorf("Host %q: status = %d, want %d", tt.host, rec.Code, tt.want)
		}
	}
}

func TestAllowOnlyCIDRSPassthrough(t *testing.T) {
	h := AllowOnlyCIDRS(nil, false, nopLogger())(ok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAllowOnlyCIDRSTrustProxy(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"203.0.113.0/24"}, true, nopLogger())(ok)

	r := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.50, 10.0.0.1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Errorf("forwarded client status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("direct client status = %d, want 403", rec.Code)
	}
}

func TestLogLevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewFromZap(zap.New(core))

	fail := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	silent := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	Log(log)(fail).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/comments", nil))
	Log(log)(silent).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 2 {
		t.Fatalf("got %d access lines, want 2", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel || entries[0].ContextMap()["status"] != int64(500) {
		t.Errorf("5xx entry = %v %v", entries[0].Level, entries[0].ContextMap())
	}
	if entries[1].Level != zapcore.InfoLevel || entries[1].ContextMap()["status"] != int64(200) {
		t.Errorf("implicit 200 entry = %v %v", entries[1].Level, entries[1].ContextMap())
	}
}

func TestCORSPassesNonPreflightOptions(t *testing.T) {
	reached := false
	h := CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { reached = true }))

	r := httptest.NewRequest(http.MethodOptions, "/comments", nil)
	r.Header.Set("Origin", "https://example.org")
	h.ServeHTTP(httptest.NewRecorder(), r)

	if !reached {
		t.Error("OPTIONS without Access-Control-Request-Method should reach the handler")
	}
}
