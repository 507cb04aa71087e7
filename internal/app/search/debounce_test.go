package search_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pythia-plus/console/internal/app/search"
)

type recorder struct {
	mu      sync.Mutex
	queries []string
}

func (r *recorder) record(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

func TestDebouncer_CollapsesBurst(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	d := search.NewDebouncer(30*time.Millisecond, rec.record)

	d.Trigger("j")
	d.Trigger("ja")
	d.Trigger("jav")
	assert.True(t, d.Pending())

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, []string{"jav"}, rec.snapshot())
	assert.False(t, d.Pending())
}

func TestDebouncer_EmptyQueryBypassesDelay(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	d := search.NewDebouncer(time.Hour, rec.record)

	d.Trigger("pending")
	d.Trigger("  ")

	assert.Equal(t, []string{"  "}, rec.snapshot(), "blank query runs synchronously")
	assert.False(t, d.Pending(), "blank query cancels the pending one")
}

func TestDebouncer_CancelDropsPendingQuery(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	d := search.NewDebouncer(20*time.Millisecond, rec.record)

	d.Trigger("go")
	d.Cancel()
	time.Sleep(60 * time.Millisecond)

	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_ZeroDelayRunsImmediately(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	d := search.NewDebouncer(0, rec.record)

	d.Trigger("go")

	assert.Equal(t, []string{"go"}, rec.snapshot())
}
