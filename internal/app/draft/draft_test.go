package draft_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pythia-plus/console/internal/app/draft"
	"github.com/pythia-plus/console/internal/domain"
	"github.com/pythia-plus/console/internal/domain/employee"
)

type memStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	saves int
	err   error
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.data[key] = payload
	return nil
}

func (m *memStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func validDraft() employee.Draft {
	return employee.Draft{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Seniority: employee.SenioritySenior}
}

func TestEdit_DebouncesAutosave(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := draft.New(store, draft.EmployeeKey, 20*time.Millisecond, nil)
	t.Cleanup(svc.Close)
	ctx := t.Context()

	svc.Edit(ctx, employee.Draft{FirstName: "A"})
	svc.Edit(ctx, employee.Draft{FirstName: "Ad"})
	svc.Edit(ctx, employee.Draft{FirstName: "Ada"})
	assert.True(t, svc.Pending())
	assert.True(t, svc.Dirty().Get())

	assert.Eventually(t, func() bool { return store.saveCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return !svc.Dirty().Get() }, time.Second, 5*time.Millisecond)

	restored := draft.New(store, draft.EmployeeKey, 0, nil)
	found, err := restored.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Ada", restored.Draft().Get().FirstName)
}

func TestSave_FlushesImmediately(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := draft.New(store, draft.EmployeeKey, time.Hour, nil)
	ctx := t.Context()

	svc.Edit(ctx, validDraft())
	require.NoError(t, svc.Save(ctx))

	assert.False(t, svc.Pending())
	assert.Equal(t, 1, store.saveCount())
	assert.False(t, svc.SavedAt().Get().IsZero())
}

func TestLoad_NothingSaved(t *testing.T) {
	t.Parallel()

	svc := draft.New(newMemStore(), draft.EmployeeKey, 0, nil)

	found, err := svc.Load(t.Context())

	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoad_CorruptDraftIsDiscarded(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.data[draft.EmployeeKey] = []byte("{not json")
	svc := draft.New(store, draft.EmployeeKey, 0, nil)

	found, err := svc.Load(t.Context())

	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, store.data)
}

func TestSave_StoreFailure(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.err = errors.New("disk full")
	svc := draft.New(store, draft.EmployeeKey, time.Hour, nil)
	svc.Edit(t.Context(), validDraft())

	err := svc.Save(t.Context())

	require.Error(t, err)
	assert.NotEmpty(t, svc.Error().Get())
	assert.True(t, svc.Dirty().Get())
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := draft.New(store, draft.EmployeeKey, 0, nil)
	ctx := t.Context()

	svc.Edit(ctx, employee.Draft{FirstName: "Ada", Email: "not-an-email"})
	_, err := svc.Submit(ctx)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "lastName")
	assert.Contains(t, verr.Fields, "email")
	assert.Len(t, store.data, 1, "invalid drafts stay saved")

	svc.Edit(ctx, validDraft())
	got, err := svc.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", got.LastName)
	assert.Empty(t, store.data)
	assert.Equal(t, employee.Draft{}, svc.Draft().Get())
}
