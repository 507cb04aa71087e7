package health_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pythia-plus/console/internal/platform/health"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                      { return s.name }
func (s stubChecker) HealthCheck(context.Context) error { return s.err }

func TestCheckAll_Empty(t *testing.T) {
	t.Parallel()

	results := health.New().CheckAll(context.Background())

	require.NotNil(t, results)
	assert.Empty(t, results)
	assert.True(t, health.Healthy(results))
}

func TestCheckAll_MixedHealth(t *testing.T) {
	t.Parallel()

	breakerOpen := errors.New("pythia-api: failing (circuit breaker open)")

	r := health.New()
	r.Register(stubChecker{name: "draft-store"})
	r.Register(stubChecker{name: "pythia-api", err: breakerOpen})

	results := r.CheckAll(context.Background())

	require.Len(t, results, 2)
	assert.NoError(t, results["draft-store"])
	assert.ErrorIs(t, results["pythia-api"], breakerOpen)
	assert.False(t, health.Healthy(results))
}

func TestRegistry_ConcurrentRegisterAndCheck(t *testing.T) {
	t.Parallel()

	r := health.New()
	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() { r.Register(stubChecker{name: "svc"}) })
		wg.Go(func() { _ = r.CheckAll(context.Background()) })
	}
	wg.Wait()

	assert.Len(t, r.CheckAll(context.Background()), 1)
}
