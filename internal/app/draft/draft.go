// Package draft autosaves the employee-creation form so an interrupted
// session can pick up where it left off.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pythia-plus/console/internal/app/state"
	"github.com/pythia-plus/console/internal/domain"
	"github.com/pythia-plus/console/internal/domain/employee"
	"github.com/pythia-plus/console/internal/platform/logging"
	"github.com/pythia-plus/console/internal/ports"
)

// EmployeeKey is the store key of the employee-creation draft.
const EmployeeKey = "employee-create"

// DefaultDelay is the autosave window after the last edit.
const DefaultDelay = time.Second

// Service holds the in-progress employee draft and saves it after edits
// settle. Each save overwrites the previous one.
type Service struct {
	store  ports.DraftStore
	key    string
	delay  time.Duration
	logger *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
	ctx   context.Context

	draft   *state.Signal[employee.Draft]
	dirty   *state.Signal[bool]
	savedAt *state.Signal[time.Time]
	err     *state.Signal[string]
}

// New creates a draft service saving under key. A non-positive delay saves
// on every edit.
func New(store ports.DraftStore, key string, delay time.Duration, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		key:     key,
		delay:   delay,
		logger:  logging.OrDiscard(logger).With(slog.String("draft", key)),
		ctx:     context.Background(),
		draft:   state.NewSignal(employee.Draft{}),
		dirty:   state.NewSignal(false),
		savedAt: state.NewSignal(time.Time{}),
		err:     state.NewSignal(""),
	}
}

// Draft is the current form content.
func (s *Service) Draft() state.Watchable[employee.Draft] { return s.draft }

// Dirty is true while edits are not yet saved.
func (s *Service) Dirty() state.Watchable[bool] { return s.dirty }

// SavedAt is the time of the last successful save.
func (s *Service) SavedAt() state.Watchable[time.Time] { return s.savedAt }

// Error is set when an autosave failed.
func (s *Service) Error() state.Watchable[string] { return s.err }

// Edit replaces the draft and schedules an autosave. The save runs with
// ctx's values but not its cancellation.
func (s *Service) Edit(ctx context.Context, d employee.Draft) {
	s.draft.Set(d)
	s.dirty.Set(true)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.ctx = context.WithoutCancel(ctx)
	s.stopLocked()

	if s.delay <= 0 {
		s.mu.Unlock()
		s.autosave(gen)
		return
	}
	s.timer = time.AfterFunc(s.delay, func() { s.autosave(gen) })
	s.mu.Unlock()
}

// Pending reports whether an autosave is scheduled.
func (s *Service) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Save writes the current draft now, cancelling any scheduled autosave.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	s.stopLocked()
	s.mu.Unlock()

	return s.write(ctx)
}

// Load restores the saved draft. It returns false when nothing was saved.
func (s *Service) Load(ctx context.Context) (bool, error) {
	payload, err := s.store.Load(ctx, s.key)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading draft %s: %w", s.key, err)
	}

	var d employee.Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		// A corrupt draft is dropped rather than blocking the form.
		s.logger.WarnContext(ctx, "discarding unreadable draft", slog.Any("error", err))
		return false, s.Discard(ctx)
	}

	s.draft.Set(d)
	s.dirty.Set(false)
	return true, nil
}

// Discard drops the draft, both in memory and in the store.
func (s *Service) Discard(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	s.stopLocked()
	s.mu.Unlock()

	s.draft.Set(employee.Draft{})
	s.dirty.Set(false)
	s.err.Set("")

	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("deleting draft %s: %w", s.key, err)
	}
	return nil
}

// Submit validates the draft. On success the saved draft is discarded and
// the validated content returned; on failure the draft is kept and a
// *domain.ValidationError is returned.
func (s *Service) Submit(ctx context.Context) (*employee.Draft, error) {
	d := s.draft.Get()
	if err := domain.ValidateStruct(d); err != nil {
		return nil, err
	}
	if err := s.Discard(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

// Close cancels any scheduled autosave without saving.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.stopLocked()
}

func (s *Service) autosave(gen uint64) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	ctx := s.ctx
	s.mu.Unlock()

	if err := s.write(ctx); err != nil {
		s.logger.ErrorContext(ctx, "draft autosave failed",
			slog.String("operation", "draft.autosave"),
			slog.Any("error", err),
		)
	}
}

func (s *Service) write(ctx context.Context) error {
	payload, err := json.Marshal(s.draft.Get())
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}

	if err := s.store.Save(ctx, s.key, payload); err != nil {
		s.err.Set("Draft could not be saved")
		return fmt.Errorf("saving draft %s: %w", s.key, err)
	}

	s.err.Set("")
	s.dirty.Set(false)
	s.savedAt.Set(time.Now())
	return nil
}

func (s *Service) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
