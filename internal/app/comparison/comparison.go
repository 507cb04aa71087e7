// Package comparison implements the compare-up-to-three candidate workflow:
// a capped, ordered selection of ids and a profile cache that outlives the
// selection.
package comparison

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel/metric"

	"github.com/pythia-plus/console/internal/app/apperr"
	"github.com/pythia-plus/console/internal/app/state"
	"github.com/pythia-plus/console/internal/domain"
	"github.com/pythia-plus/console/internal/domain/candidate"
	"github.com/pythia-plus/console/internal/platform/logging"
	"github.com/pythia-plus/console/internal/platform/telemetry"
	"github.com/pythia-plus/console/internal/ports"
)

// DefaultCacheSize bounds the profile cache when no size is configured.
const DefaultCacheSize = 64

// MsgTooFewProfiles is shown when a partial batch leaves fewer than two
// profiles to compare.
const MsgTooFewProfiles = "Not enough candidate profiles are available to compare"

// Stage is the workflow position derived from the selection.
type Stage string

const (
	StageEmpty      Stage = "empty"
	StageSelecting  Stage = "selecting"
	StageComparable Stage = "comparable"
	StageOpen       Stage = "open"
)

// Option configures a Service.
type Option func(*Service)

// WithCacheSize sets the profile cache capacity.
func WithCacheSize(n int) Option {
	return func(s *Service) { s.cacheSize = n }
}

// WithLookupCounter counts cache hits and misses on c.
func WithLookupCounter(c metric.Int64Counter) Option {
	return func(s *Service) { s.lookups = c }
}

// Snapshot is a copy of the comparison state for rendering.
type Snapshot struct {
	Stage        Stage               `json:"stage"`
	SelectedIDs  []string            `json:"selectedIds"`
	Profiles     []candidate.Profile `json:"profiles"`
	Open         bool                `json:"open"`
	Loading      bool                `json:"loading"`
	Error        string              `json:"error,omitempty"`
	CanCompare   bool                `json:"canCompare"`
	IsMaxReached bool                `json:"isMaxReached"`
	Missing      []string            `json:"missing,omitempty"`
}

// Service holds one comparison workflow.
//
// The cache is an LRU bounded by WithCacheSize. Selection changes never evict
// from it except RemoveSelection, which drops the removed id's entry.
// Selection signals are published under the service lock, so subscribers
// must not call back into the Service.
type Service struct {
	client    ports.CandidateClient
	logger    *slog.Logger
	cacheSize int
	lookups   metric.Int64Counter

	mu    sync.Mutex
	cache *lru.Cache[string, candidate.Profile]

	selected *state.Signal[[]string]
	profiles *state.Signal[[]candidate.Profile]
	missing  *state.Signal[[]string]
	open     *state.Signal[bool]
	loading  *state.Signal[bool]
	err      *state.Signal[string]

	canCompare   *state.Computed[bool]
	isMaxReached *state.Computed[bool]
}

// New creates an empty comparison.
func New(client ports.CandidateClient, logger *slog.Logger, opts ...Option) (*Service, error) {
	s := &Service{
		client:    client,
		logger:    logging.OrDiscard(logger).With(slog.String("component", "comparison")),
		cacheSize: DefaultCacheSize,
		selected:  state.NewSignal([]string{}),
		profiles:  state.NewSignal([]candidate.Profile{}),
		missing:   state.NewSignal([]string{}),
		open:      state.NewSignal(false),
		loading:   state.NewSignal(false),
		err:       state.NewSignal(""),
	}
	for _, opt := range opts {
		opt(s)
	}

	cache, err := lru.New[string, candidate.Profile](s.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating profile cache: %w", err)
	}
	s.cache = cache

	s.canCompare = state.NewComputed(func() bool {
		n := len(s.selected.Get())
		return n >= 2 && n <= candidate.MaxCompared
	}, s.selected)
	s.isMaxReached = state.NewComputed(func() bool {
		return len(s.selected.Get()) >= candidate.MaxCompared
	}, s.selected)

	return s, nil
}

// SelectedIDs is the selection in insertion order.
func (s *Service) SelectedIDs() state.Watchable[[]string] { return s.selected }

// Profiles are the profiles of the open comparison, in selection order.
func (s *Service) Profiles() state.Watchable[[]candidate.Profile] { return s.profiles }

// IsOpen reports whether the comparison is showing.
func (s *Service) IsOpen() state.Watchable[bool] { return s.open }

// Loading is true while a batch fetch is in flight.
func (s *Service) Loading() state.Watchable[bool] { return s.loading }

// Error is the message of the last failed open.
func (s *Service) Error() state.Watchable[string] { return s.err }

// CanCompare is true with two or three ids selected.
func (s *Service) CanCompare() state.Readable[bool] { return s.canCompare }

// IsMaxReached is true once the selection is full.
func (s *Service) IsMaxReached() state.Readable[bool] { return s.isMaxReached }

// IsSelected reports whether id is selected.
func (s *Service) IsSelected(id string) bool {
	return slices.Contains(s.selected.Get(), id)
}

// Stage derives the workflow position.
func (s *Service) Stage() Stage {
	switch n := len(s.selected.Get()); {
	case s.open.Get():
		return StageOpen
	case n == 0:
		return StageEmpty
	case n == 1:
		return StageSelecting
	default:
		return StageComparable
	}
}

// Snapshot copies the current state.
func (s *Service) Snapshot() Snapshot {
	return Snapshot{
		Stage:        s.Stage(),
		SelectedIDs:  s.selected.Get(),
		Profiles:     s.profiles.Get(),
		Open:         s.open.Get(),
		Loading:      s.loading.Get(),
		Error:        s.err.Get(),
		CanCompare:   s.canCompare.Get(),
		IsMaxReached: s.isMaxReached.Get(),
		Missing:      s.missing.Get(),
	}
}

// ToggleSelection selects id, or deselects it when already selected. With
// the selection full a new id is ignored and false is returned; the caller
// must remove one first. Deselecting keeps the cached profile.
func (s *Service) ToggleSelection(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.selected.Get()
	if i := slices.Index(sel, id); i >= 0 {
		s.setSelectionLocked(slices.Delete(slices.Clone(sel), i, i+1))
		return true
	}

	if len(sel) >= candidate.MaxCompared {
		s.logger.InfoContext(ctx, "selection full, ignoring candidate",
			slog.String("candidate_id", id),
			slog.Int("max", candidate.MaxCompared),
		)
		return false
	}

	s.setSelectionLocked(append(slices.Clone(sel), id))
	return true
}

// RemoveSelection deselects id and drops its cached profile.
func (s *Service) RemoveSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Remove(id)

	sel := s.selected.Get()
	if i := slices.Index(sel, id); i >= 0 {
		s.setSelectionLocked(slices.Delete(slices.Clone(sel), i, i+1))
	}
}

// ClearSelections empties the selection and the shown profiles. The profile
// cache is kept.
func (s *Service) ClearSelections() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected.Set([]string{})
	s.profiles.Set([]candidate.Profile{})
	s.missing.Set([]string{})
	s.open.Set(false)
	s.err.Set("")
}

// OpenComparison loads the selected profiles and opens the comparison.
// Cached profiles are served from the cache; the rest are fetched in a
// single batch. A failed fetch leaves the selection as it was and sets
// Error. A partial batch still opens when at least two profiles are
// available.
func (s *Service) OpenComparison(ctx context.Context) error {
	s.mu.Lock()
	sel := s.selected.Get()
	if !s.canCompare.Get() {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d selected, need 2 to %d", domain.ErrNotComparable, len(sel), candidate.MaxCompared)
	}
	cached, uncached := s.lookupLocked(ctx, sel)
	s.mu.Unlock()

	s.loading.Set(true)
	s.err.Set("")

	var missing []string
	if len(uncached) > 0 {
		res, err := s.client.BatchProfiles(ctx, uncached)
		if err != nil {
			return s.fail(ctx, err, sel)
		}

		for _, p := range res.Profiles {
			cached[p.ID] = p
		}
		missing = res.NotFound

		if res.Partial {
			s.logger.WarnContext(ctx, "comparison opened with partial profiles",
				slog.Any("not_found", res.NotFound),
			)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The selection may have changed while the batch was in flight; only
	// ids still selected are cached and shown.
	cur := s.selected.Get()
	profiles := make([]candidate.Profile, 0, len(cur))
	for _, id := range cur {
		p, ok := cached[id]
		if !ok {
			p, ok = s.cache.Get(id)
		}
		if ok {
			s.cache.Add(id, p)
			profiles = append(profiles, p)
		}
	}
	if len(profiles) < 2 {
		s.err.Set(MsgTooFewProfiles)
		s.loading.Set(false)
		return &domain.UserError{Message: MsgTooFewProfiles, Err: domain.ErrNotComparable}
	}

	s.profiles.Set(profiles)
	s.missing.Set(missingOrEmpty(keepSelected(missing, cur)))
	s.open.Set(true)
	s.loading.Set(false)
	return nil
}

// CloseComparison hides the comparison. Selection and cache are kept.
func (s *Service) CloseComparison() {
	s.open.Set(false)
}

// setSelectionLocked publishes sel and narrows the shown profiles to it.
func (s *Service) setSelectionLocked(sel []string) {
	s.selected.Set(sel)

	shown := s.profiles.Get()
	kept := slices.DeleteFunc(slices.Clone(shown), func(p candidate.Profile) bool {
		return !slices.Contains(sel, p.ID)
	})
	if len(kept) != len(shown) {
		s.profiles.Set(kept)
	}
	if missing := s.missing.Get(); len(missing) > 0 {
		s.missing.Set(missingOrEmpty(keepSelected(missing, sel)))
	}

	if len(sel) < 2 && s.open.Get() {
		s.open.Set(false)
	}
}

// keepSelected returns the ids of ids that are in sel.
func keepSelected(ids, sel []string) []string {
	return slices.DeleteFunc(slices.Clone(ids), func(id string) bool {
		return !slices.Contains(sel, id)
	})
}

// lookupLocked splits ids into cached profiles and ids still to fetch.
func (s *Service) lookupLocked(ctx context.Context, ids []string) (map[string]candidate.Profile, []string) {
	cached := make(map[string]candidate.Profile, len(ids))
	var uncached []string
	for _, id := range ids {
		if p, ok := s.cache.Get(id); ok {
			cached[id] = p
			s.countLookup(ctx, "hit")
			continue
		}
		uncached = append(uncached, id)
		s.countLookup(ctx, "miss")
	}
	return cached, uncached
}

func (s *Service) countLookup(ctx context.Context, result string) {
	if s.lookups == nil {
		return
	}
	s.lookups.Add(ctx, 1, metric.WithAttributes(telemetry.AttrResult.String(result)))
}

func (s *Service) fail(ctx context.Context, err error, sel []string) error {
	msgs := apperr.Messages{NotFound: "Candidate not found"}
	s.err.Set(apperr.Describe(err, msgs))
	s.loading.Set(false)

	level := slog.LevelError
	if errors.Is(err, context.Canceled) {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "batch profile fetch failed",
		slog.String("operation", "comparison.OpenComparison"),
		slog.Any("candidate_ids", sel),
		slog.Int("status", domain.StatusOf(err)),
		slog.Any("error", err),
	)

	return apperr.Wrap(err, msgs)
}

func missingOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
