package routes

import (
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MrSnakeDoc/comments/internal/httpserver/deps"
	"github.com/MrSnakeDoc/comments/internal/logger"
	"github.com/MrSnakeDoc/comments/internal/store/memory"
)

func registered(t *testing.T, d deps.Deps) []string {
	t.Helper()
	r := chi.NewRouter()
	RegisterAll(r, d)

	var got []string
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		got = append(got, method+" "+strings.TrimSuffix(route, "/"))
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	sort.Strings(got)
	return got
}

func TestRegisterAll(t *testing.T) {
	d := deps.Deps{
		Logger:   logger.NewFromZap(zap.NewNop()),
		Store:    memory.NewStore(),
		ServeWeb: true,
	}

	got := strings.Join(registered(t, d), "\n")
	for _, want := range []string{
		"GET ",
		"GET /health",
		"GET /comments",
		"POST /comments",
		"GET /readyz",
		"GET /app",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("route %q not registered; have:\n%s", want, got)
		}
	}
}

func TestWebRoutesOptional(t *testing.T) {
	d := deps.Deps{Logger: logger.NewFromZap(zap.NewNop())}

	for _, route := range registered(t, d) {
		if strings.Contains(route, "/app") {
			t.Errorf("unexpected route %q with ServeWeb disabled", route)
		}
	}
}

func TestRegisterWithMiddlewares(t *testing.T) {
	saved := registry
	t.Cleanup(func() { registry = saved })
	registry = nil

	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	Register(func(r chi.Router, d deps.Deps) {
		r.Get("/x", func(w http.ResponseWriter, r *http.Request) { order = append(order, "handler") })
	}, mark("first"), mark("second"))

	r := chi.NewRouter()
	RegisterAll(r, deps.Deps{})
	req, _ := http.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(noopWriter{}, req)

	if strings.Join(order, ",") != "first,second,handler" {
		t.Errorf("order = %v", order)
	}
}

type noopWriter struct{}

func (noopWriter) Header() http.Header       { return http.Header{} }
func (noopWriter) Write(b []byte) (int, error) { return len(b), nil }
func (noopWriter) WriteHeader(int)             {}
