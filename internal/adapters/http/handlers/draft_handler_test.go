package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pythia-plus/console/internal/adapters/http/dto"
	"github.com/pythia-plus/console/internal/adapters/http/handlers"
	"github.com/pythia-plus/console/internal/app/draft"
	"github.com/pythia-plus/console/internal/domain"
	"github.com/pythia-plus/console/internal/domain/employee"
)

type memDrafts struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memDrafts) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = payload
	return nil
}

func (m *memDrafts) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *memDrafts) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func newDraftHandler(t *testing.T) (*handlers.DraftHandler, *memDrafts) {
	t.Helper()
	store := &memDrafts{data: map[string][]byte{}}
	svc := draft.New(store, draft.EmployeeKey, time.Hour, nil)
	t.Cleanup(svc.Close)
	return handlers.NewDraftHandler(svc), store
}

func TestDraftHandler_EditThenSave(t *testing.T) {
	t.Parallel()

	h, store := newDraftHandler(t)

	rec := httptest.NewRecorder()
	h.Edit(rec, httptest.NewRequest(http.MethodPut, "/console/v1/drafts/employee",
		jsonBody(t, employee.Draft{FirstName: "Ada"})))
	requireStatus(t, rec, http.StatusAccepted)
	if resp := decodeJSON[dto.DraftResponse[employee.Draft]](t, rec); !resp.Dirty || resp.Draft.FirstName != "Ada" {
		t.Errorf("after edit: %+v", resp)
	}

	rec = httptest.NewRecorder()
	h.Save(rec, httptest.NewRequest(http.MethodPost, "/console/v1/drafts/employee/save", http.NoBody))
	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.DraftResponse[employee.Draft]](t, rec)
	if resp.Dirty || resp.SavedAt == "" {
		t.Errorf("after save: %+v", resp)
	}
	if _, ok := store.data[draft.EmployeeKey]; !ok {
		t.Error("draft not persisted")
	}
}

func TestDraftHandler_SubmitInvalid(t *testing.T) {
	t.Parallel()

	h, _ := newDraftHandler(t)
	h.Edit(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/console/v1/drafts/employee",
		jsonBody(t, employee.Draft{FirstName: "Ada"})))

	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/console/v1/drafts/employee/submit", http.NoBody))

	requireStatus(t, rec, http.StatusBadRequest)
	if resp := decodeJSON[dto.ErrorResponse](t, rec); len(resp.Errors) == 0 {
		t.Error("expected field errors")
	}
}

func TestDraftHandler_SubmitValidAndDiscard(t *testing.T) {
	t.Parallel()

	h, store := newDraftHandler(t)
	h.Edit(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/console/v1/drafts/employee",
		jsonBody(t, employee.Draft{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})))

	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/console/v1/drafts/employee/submit", http.NoBody))
	requireStatus(t, rec, http.StatusOK)

	rec = httptest.NewRecorder()
	h.Discard(rec, httptest.NewRequest(http.MethodDelete, "/console/v1/drafts/employee", http.NoBody))
	requireStatus(t, rec, http.StatusNoContent)
	if len(store.data) != 0 {
		t.Errorf("store not empty: %v", store.data)
	}
}
