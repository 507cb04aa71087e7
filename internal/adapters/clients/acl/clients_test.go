package acl_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/pythia-plus/console/internal/adapters/clients/acl"
	aclmd "github.com/pythia-plus/console/internal/adapters/clients/acl/masterdata"
	aclproject "github.com/pythia-plus/console/internal/adapters/clients/acl/project"
	"github.com/pythia-plus/console/internal/domain"
	dm "github.com/pythia-plus/console/internal/domain/masterdata"
	dp "github.com/pythia-plus/console/internal/domain/project"
	"github.com/pythia-plus/console/internal/platform/config"
	"github.com/pythia-plus/console/internal/platform/httpclient"
	"github.com/pythia-plus/console/internal/platform/telemetry"
	"github.com/pythia-plus/console/internal/ports"
)

// newRequester creates a Requester pointing at baseURL with a breaker that
// will not trip during a test.
func newRequester(t *testing.T, baseURL string) *acl.Requester {
	t.Helper()

	cfg := &config.APIConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   50,
			Timeout:       30 * time.Second,
			HalfOpenLimit: 1,
		},
	}
	return acl.NewRequester(httpclient.New(cfg, "pythia-api-test", nil, nil), nil)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func TestRequester_ConnectionFailureIsStatusZero(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	status, err := newRequester(t, url).Do(context.Background(), http.MethodGet, "/roles", nil, nil)

	if status != 0 {
		t.Errorf("status = %d, want 0", status)
	}
	if !errors.Is(err, domain.ErrConnection) {
		t.Errorf("error = %v, want ErrConnection", err)
	}
	if got := domain.StatusOf(err); got != 0 {
		t.Errorf("StatusOf = %d, want 0", got)
	}
}

func TestRequester_InvalidJSONIsContractError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{"))
	}))
	t.Cleanup(ts.Close)

	var out map[string]any
	_, err := newRequester(t, ts.URL).Do(context.Background(), http.MethodGet, "/roles", nil, &out)

	if !errors.Is(err, domain.ErrContract) {
		t.Errorf("error = %v, want ErrContract", err)
	}
}

func TestResourceClient_CRUD(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/technologies":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"items": []map[string]any{
					{"id": 1, "name": "Go", "category": "Language"},
					{"id": 2, "name": "Oracle", "category": "Database", "isActive": false},
				},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/technologies":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			body["id"] = 3
			writeJSON(t, w, http.StatusCreated, body)
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/technologies/3":
			writeJSON(t, w, http.StatusOK, map[string]any{"id": 3, "name": "Rust", "category": "Systems"})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/technologies/3":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete:
			writeJSON(t, w, http.StatusNotFound, map[string]any{"message": "Technology 99 does not exist"})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	t.Cleanup(ts.Close)

	client := acl.NewResourceClient(newRequester(t, ts.URL), "technologies", aclmd.TechnologyCodec, nil)
	ctx := context.Background()

	items, total, err := client.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want len(items) fallback 2", total)
	}
	if !items[0].Active || items[1].Active {
		t.Errorf("Active flags = %v/%v, want true/false", items[0].Active, items[1].Active)
	}

	created, err := client.Create(ctx, &dm.Technology{Name: "Rust", Category: "Language", Active: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != 3 || created.Name != "Rust" {
		t.Errorf("created = %+v", created)
	}

	updated, err := client.Update(ctx, 3, &dm.Technology{Name: "Rust", Category: "Language"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Category != "Systems" {
		t.Errorf("Category = %q, want server echo %q", updated.Category, "Systems")
	}

	if err := client.Delete(ctx, 3); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	err = client.Delete(ctx, 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete(99) error = %v, want ErrNotFound", err)
	}
	if msg := domain.ServerMessage(err); msg != "Technology 99 does not exist" {
		t.Errorf("ServerMessage = %q", msg)
	}
}

func TestResourceClient_ListTotalMismatchIsLogged(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"items": []map[string]any{{"id": 1, "name": "Backend", "description": "Server side"}},
			"total": 4,
		})
	}))
	t.Cleanup(ts.Close)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := acl.NewResourceClient(newRequester(t, ts.URL), "roles", aclmd.RoleCodec, logger)

	items, total, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 1 || total != 4 {
		t.Errorf("items = %d, total = %d; want 1 and the server total 4", len(items), total)
	}
	if !strings.Contains(buf.String(), "list total differs from item count") {
		t.Errorf("expected a mismatch warning, got logs: %s", buf.String())
	}
}

func TestDirectoryClient_ListPage(t *testing.T) {
	t.Parallel()

	var gotQuery map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/projects" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{"page": q.Get("page"), "size": q.Get("size"), "sort": q.Get("sort"), "search": q.Get("search")}

		writeJSON(t, w, http.StatusOK, map[string]any{
			"projects": []map[string]any{
				{"id": 1, "name": "Atlas", "status": "IN_PROGRESS", "complexity": "BOGUS"},
			},
			"pagination": map[string]any{"page": 1, "size": 10, "totalElements": 11, "totalPages": 2},
			"analytics":  map[string]any{"statusDistribution": map[string]int{"IN_PROGRESS": 1}},
		})
	}))
	t.Cleanup(ts.Close)

	client := aclproject.NewClient(newRequester(t, ts.URL), nil, nil)
	page, err := client.ListPage(context.Background(), ports.PageQuery{
		Page: 1, Size: 10, SortField: "name", SortDir: ports.SortDesc, Search: "atl",
	})
	if err != nil {
		t.Fatalf("ListPage() error = %v", err)
	}

	want := map[string]string{"page": "1", "size": "10", "sort": "name,desc", "search": "atl"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
	if len(page.Items) != 1 || page.Items[0].Status != dp.StatusActive || page.Items[0].Complexity != dp.ComplexityModerate {
		t.Errorf("Items = %+v", page.Items)
	}
	if page.Pagination.TotalElements != 11 {
		t.Errorf("TotalElements = %d, want 11", page.Pagination.TotalElements)
	}
	if page.Facets == nil || page.Facets.ByStatus[dp.StatusActive] != 1 {
		t.Errorf("Facets = %+v", page.Facets)
	}
}

func TestDirectoryClient_ContractViolation(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"projects":   []any{},
			"pagination": map[string]any{"page": "0", "size": 20, "totalElements": 5, "totalPages": 1},
		})
	}))
	t.Cleanup(ts.Close)

	metrics, err := telemetry.NewMetrics(noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	client := aclproject.NewClient(newRequester(t, ts.URL), metrics, nil)
	_, err = client.ListPage(context.Background(), ports.PageQuery{Size: 20})

	var cerr *domain.ContractError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *domain.ContractError", err)
	}
	if cerr.Field != "pagination.page" {
		t.Errorf("Field = %q, want pagination.page", cerr.Field)
	}
}

func TestDirectoryClient_Get(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/projects/7" {
			writeJSON(t, w, http.StatusNotFound, map[string]any{"message": "no such project"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"id": 7, "name": "Atlas", "priority": "urgent",
			"teamMembers": []map[string]any{{"employeeId": 1, "fullName": "Dana Ruiz"}},
		})
	}))
	t.Cleanup(ts.Close)

	client := aclproject.NewClient(newRequester(t, ts.URL), nil, nil)

	d, err := client.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if d.Priority != dp.PriorityCritical || d.Team.Size != 1 {
		t.Errorf("detail = %+v", d)
	}

	_, err = client.Get(context.Background(), 8)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(8) error = %v, want ErrNotFound", err)
	}
}
