package candidate_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pythia-plus/console/internal/adapters/clients/acl"
	"github.com/pythia-plus/console/internal/adapters/clients/acl/candidate"
	"github.com/pythia-plus/console/internal/domain"
	"github.com/pythia-plus/console/internal/platform/config"
	"github.com/pythia-plus/console/internal/platform/httpclient"
)

func newClient(t *testing.T, h http.HandlerFunc) *candidate.Client {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	hc := httpclient.New(&config.APIConfig{
		BaseURL: ts.URL,
		Timeout: 5 * time.Second,
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       30 * time.Second,
			HalfOpenLimit: 1,
		},
	}, "pythia-api-test", nil, nil)
	return candidate.NewClient(acl.NewRequester(hc, nil), nil)
}

func TestBatchProfiles_Success(t *testing.T) {
	t.Parallel()

	var gotIDs []string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/candidates/batch-profiles" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			IDs []string `json:"ids"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotIDs = body.IDs

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"candidates": []map[string]any{
				{"id": "a", "fullName": "Ada"},
				{"id": "b", "fullName": "Bo"},
			},
			"metadata": map[string]any{"requested": 2, "found": 2},
		})
	})

	got, err := client.BatchProfiles(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("BatchProfiles() error = %v", err)
	}
	if len(gotIDs) != 2 {
		t.Errorf("request ids = %v, want [a b]", gotIDs)
	}
	if len(got.Profiles) != 2 || got.Profiles[1].FullName != "Bo" {
		t.Errorf("Profiles = %+v", got.Profiles)
	}
	if got.Partial {
		t.Error("Partial = true, want false")
	}
}

func TestBatchProfiles_PartialContent(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPartialContent)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"candidates": []map[string]any{{"id": "a", "fullName": "Ada"}},
			"metadata":   map[string]any{"requested": 2, "found": 1, "notFound": []string{"zz"}},
		})
	})

	got, err := client.BatchProfiles(context.Background(), []string{"a", "zz"})
	if err != nil {
		t.Fatalf("BatchProfiles() error = %v", err)
	}
	if !got.Partial {
		t.Error("Partial = false, want true")
	}
	if len(got.NotFound) != 1 || got.NotFound[0] != "zz" {
		t.Errorf("NotFound = %v, want [zz]", got.NotFound)
	}
}

func TestBatchProfiles_SuccessFalse(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "profile service unavailable"})
	})

	_, err := client.BatchProfiles(context.Background(), []string{"a", "b"})
	if !errors.Is(err, domain.ErrUnexpected) {
		t.Fatalf("error = %v, want ErrUnexpected", err)
	}
	if msg := domain.ServerMessage(err); msg != "profile service unavailable" {
		t.Errorf("ServerMessage = %q", msg)
	}
}

func TestBatchProfiles_ServerError(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.BatchProfiles(context.Background(), []string{"a", "b"})
	if !errors.Is(err, domain.ErrServer) {
		t.Fatalf("error = %v, want ErrServer", err)
	}
	if got := domain.StatusOf(err); got != http.StatusBadGateway {
		t.Errorf("StatusOf = %d, want 502", got)
	}
}
