package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	adapthttp "github.com/pythia-plus/console/internal/adapters/http"
	"github.com/pythia-plus/console/internal/adapters/http/handlers"
	"github.com/pythia-plus/console/internal/app/comparison"
	"github.com/pythia-plus/console/internal/app/resource"
	"github.com/pythia-plus/console/internal/domain/masterdata"
	"github.com/pythia-plus/console/internal/ports"
)

type stubRegistry struct{}

func (stubRegistry) Register(ports.HealthChecker) {}

func (stubRegistry) CheckAll(context.Context) map[string]error {
	return map[string]error{"pythia-api": nil}
}

// techClient blocks List until ctx ends when slow is set.
type techClient struct{ slow bool }

func (c techClient) List(ctx context.Context) ([]masterdata.Technology, int, error) {
	if c.slow {
		<-ctx.Done()
		return nil, 0, ctx.Err()
	}
	return []masterdata.Technology{{ID: 1, Name: "Go", Category: "Language"}}, 1, nil
}

func (techClient) Create(_ context.Context, t *masterdata.Technology) (*masterdata.Technology, error) {
	return t, nil
}

func (techClient) Update(_ context.Context, _ int64, t *masterdata.Technology) (*masterdata.Technology, error) {
	return t, nil
}

func (techClient) Delete(context.Context, int64) error { return nil }

type noCandidates struct{}

func (noCandidates) BatchProfiles(context.Context, []string) (*ports.BatchResult, error) {
	return &ports.BatchResult{}, nil
}

func newTestRouter(t *testing.T, client techClient, apiMiddleware ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()

	store := resource.New[masterdata.Technology](client, resource.Config[masterdata.Technology]{
		Endpoint: "technologies",
	}, nil)
	cmp, err := comparison.New(noCandidates{}, nil)
	if err != nil {
		t.Fatalf("comparison.New: %v", err)
	}

	return adapthttp.NewRouter(adapthttp.Routes{
		Health:     handlers.NewHealthHandler(stubRegistry{}),
		Resources:  []adapthttp.ResourceRoutes{handlers.NewResourceHandler[masterdata.Technology](store)},
		Comparison: handlers.NewComparisonHandler(cmp),
	}, []func(http.Handler) http.Handler{
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Test-Middleware", "applied")
				next.ServeHTTP(w, r)
			})
		},
	}, apiMiddleware...)
}

func TestRouter_RoutesRegistered(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, techClient{})

	chiRouter, ok := router.(*chi.Mux)
	if !ok {
		t.Fatal("router is not *chi.Mux")
	}

	registered := make(map[string]bool)
	err := chi.Walk(chiRouter, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk error: %v", err)
	}

	for _, want := range []string{
		"GET /health/live",
		"GET /health/ready",
		"GET /console/v1/technologies/",
		"POST /console/v1/technologies/",
		"PUT /console/v1/technologies/{id}",
		"DELETE /console/v1/technologies/{id}",
		"GET /console/v1/comparison/",
		"POST /console/v1/comparison/selections",
		"DELETE /console/v1/comparison/selections/{id}",
		"POST /console/v1/comparison/open",
	} {
		if !registered[want] {
			t.Errorf("route %s not registered", want)
		}
	}
}

func TestRouter_ServesThroughMiddleware(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, techClient{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/v1/technologies", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Test-Middleware") != "applied" {
		t.Error("global middleware not applied")
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestRouter(t, techClient{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/v1/unknown", http.NoBody))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRouter_APITimeout(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, techClient{slow: true}, chimw.Timeout(20*time.Millisecond))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/v1/technologies", http.NoBody))

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", rec.Code)
	}
}
