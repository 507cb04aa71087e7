package ports

import "context"

// HealthChecker is implemented by any component that can report its health:
// the REST backend client (via its circuit breaker) and the draft store.
type HealthChecker interface {
	// Name returns a human-readable identifier ("pythia-api", "draft-store").
	Name() string

	// HealthCheck returns nil if healthy, or an error describing the failure.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry manages registration and execution of health checkers.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll returns results keyed by checker name; nil means healthy.
	CheckAll(ctx context.Context) map[string]error
}
