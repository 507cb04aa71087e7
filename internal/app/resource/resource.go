// Package resource implements the generic CRUD list service every
// master-data screen is built on. One Store per resource type holds the
// loaded items and the loading/error/search state as signals; behaviour that
// differs between resources comes from a Config record, not from subtyping.
package resource

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pythia-plus/console/internal/app/apperr"
	"github.com/pythia-plus/console/internal/app/state"
	"github.com/pythia-plus/console/internal/domain"
	"github.com/pythia-plus/console/internal/platform/logging"
	"github.com/pythia-plus/console/internal/ports"
)

// Config describes one REST resource.
type Config[T any] struct {
	// Endpoint is the resource path under /api/v1 ("technologies").
	Endpoint string

	// SearchFields returns the strings the search query is matched against.
	SearchFields func(T) []string

	NotFoundMessage  string
	DuplicateMessage string
}

func (c Config[T]) messages() apperr.Messages {
	return apperr.Messages{NotFound: c.NotFoundMessage, Duplicate: c.DuplicateMessage}
}

// Snapshot is a consistent-enough copy of a Store's state for rendering.
type Snapshot[T any] struct {
	Items       []T    `json:"items"`
	Filtered    []T    `json:"filtered"`
	Loading     bool   `json:"loading"`
	Error       string `json:"error,omitempty"`
	Total       int    `json:"total"`
	SearchQuery string `json:"searchQuery,omitempty"`
}

// Store is the list state of one resource. Items keep load order; Create
// appends, Update replaces in place and Delete removes by id. Nothing is
// retried: a failed call sets Error, clears Loading and is returned once.
type Store[T domain.Entity] struct {
	client ports.ResourceClient[T]
	cfg    Config[T]
	logger *slog.Logger

	items    *state.Signal[[]T]
	loading  *state.Signal[bool]
	err      *state.Signal[string]
	total    *state.Signal[int]
	query    *state.Signal[string]
	filtered *state.Computed[[]T]
}

// New creates an empty Store for the resource described by cfg.
func New[T domain.Entity](client ports.ResourceClient[T], cfg Config[T], logger *slog.Logger) *Store[T] {
	s := &Store[T]{
		client:  client,
		cfg:     cfg,
		logger:  logging.OrDiscard(logger).With(slog.String("resource", cfg.Endpoint)),
		items:   state.NewSignal([]T{}),
		loading: state.NewSignal(false),
		err:     state.NewSignal(""),
		total:   state.NewSignal(0),
		query:   state.NewSignal(""),
	}
	s.filtered = state.NewComputed(s.filter, s.items, s.query)
	return s
}

// Endpoint returns the resource path this store manages.
func (s *Store[T]) Endpoint() string { return s.cfg.Endpoint }

// Items is the loaded collection in load order.
func (s *Store[T]) Items() state.Watchable[[]T] { return s.items }

// Loading is true while a call is in flight.
func (s *Store[T]) Loading() state.Watchable[bool] { return s.loading }

// Error is the user-facing message of the last failure, "" when none.
func (s *Store[T]) Error() state.Watchable[string] { return s.err }

// Total is the backend's item count.
func (s *Store[T]) Total() state.Watchable[int] { return s.total }

// SearchQuery is the current filter text.
func (s *Store[T]) SearchQuery() state.Watchable[string] { return s.query }

// FilteredItems is Items narrowed by SearchQuery, recomputed lazily.
func (s *Store[T]) FilteredItems() state.Readable[[]T] { return s.filtered }

// SetSearchQuery updates the filter text.
func (s *Store[T]) SetSearchQuery(q string) { s.query.Set(q) }

// Snapshot copies the current state.
func (s *Store[T]) Snapshot() Snapshot[T] {
	return Snapshot[T]{
		Items:       s.items.Get(),
		Filtered:    s.filtered.Get(),
		Loading:     s.loading.Get(),
		Error:       s.err.Get(),
		Total:       s.total.Get(),
		SearchQuery: s.query.Get(),
	}
}

// Load replaces the items wholesale with the backend's list. Calling it
// again is always safe.
func (s *Store[T]) Load(ctx context.Context) error {
	s.begin()

	items, total, err := s.client.List(ctx)
	if err != nil {
		return s.fail(ctx, "Load", err)
	}

	s.items.Set(items)
	s.total.Set(total)
	s.loading.Set(false)
	return nil
}

// Create validates item, posts it and appends the server's echo.
func (s *Store[T]) Create(ctx context.Context, item T) (*T, error) {
	if err := domain.ValidateStruct(item); err != nil {
		return nil, s.reject(ctx, "Create", err)
	}
	s.begin()

	created, err := s.client.Create(ctx, &item)
	if err != nil {
		return nil, s.fail(ctx, "Create", err)
	}

	s.items.Update(func(items *[]T) {
		*items = append(append([]T(nil), (*items)...), *created)
	})
	s.total.Update(func(n *int) { *n++ })
	s.loading.Set(false)
	return created, nil
}

// Update puts item and replaces the entry with the same id by the server's
// echo, which wins over anything the caller sent.
func (s *Store[T]) Update(ctx context.Context, id int64, item T) (*T, error) {
	if err := domain.ValidateStruct(item); err != nil {
		return nil, s.reject(ctx, "Update", err)
	}
	s.begin()

	updated, err := s.client.Update(ctx, id, &item)
	if err != nil {
		return nil, s.fail(ctx, "Update", err)
	}

	replaced := false
	s.items.Update(func(items *[]T) {
		next := append([]T(nil), (*items)...)
		for i := range next {
			if next[i].EntityID() == id {
				next[i] = *updated
				replaced = true
				break
			}
		}
		*items = next
	})
	if !replaced {
		s.logger.WarnContext(ctx, "updated item not present in loaded list",
			slog.String("operation", "resource.Update"),
			slog.Int64("id", id),
		)
	}
	s.loading.Set(false)
	return updated, nil
}

// Delete removes the item server-side, then drops the first entry with
// that id and decrements Total.
func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	s.begin()

	if err := s.client.Delete(ctx, id); err != nil {
		return s.fail(ctx, "Delete", err)
	}

	s.items.Update(func(items *[]T) {
		next := make([]T, 0, len(*items))
		removed := false
		for _, it := range *items {
			if !removed && it.EntityID() == id {
				removed = true
				continue
			}
			next = append(next, it)
		}
		*items = next
	})
	s.total.Update(func(n *int) { *n = max(*n-1, 0) })
	s.loading.Set(false)
	return nil
}

func (s *Store[T]) begin() {
	s.loading.Set(true)
	s.err.Set("")
}

// fail records a REST failure and returns it wrapped with its message.
func (s *Store[T]) fail(ctx context.Context, op string, err error) error {
	uerr := apperr.Wrap(err, s.cfg.messages())
	s.err.Set(apperr.Describe(err, s.cfg.messages()))
	s.loading.Set(false)

	s.logger.ErrorContext(ctx, "resource call failed",
		slog.String("operation", "resource."+op),
		slog.Int("status", domain.StatusOf(err)),
		slog.Any("error", err),
	)
	return uerr
}

// reject records a payload refused before any request was sent.
func (s *Store[T]) reject(ctx context.Context, op string, err error) error {
	s.err.Set(apperr.Describe(err, s.cfg.messages()))
	s.logger.InfoContext(ctx, "payload rejected",
		slog.String("operation", "resource."+op),
		slog.Any("error", err),
	)
	return apperr.Wrap(err, s.cfg.messages())
}

func (s *Store[T]) filter() []T {
	items := s.items.Get()
	q := strings.ToLower(strings.TrimSpace(s.query.Get()))
	if q == "" || s.cfg.SearchFields == nil {
		return items
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range s.cfg.SearchFields(it) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
