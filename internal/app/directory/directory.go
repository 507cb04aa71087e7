// Package directory implements the server-paged list services behind the
// employee and project directories: page navigation, sorting, debounced
// search and a single "current entity" detail slot.
package directory

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pythia-plus/console/internal/app/apperr"
	"github.com/pythia-plus/console/internal/app/search"
	"github.com/pythia-plus/console/internal/app/state"
	"github.com/pythia-plus/console/internal/domain"
	"github.com/pythia-plus/console/internal/domain/pagination"
	"github.com/pythia-plus/console/internal/platform/logging"
	"github.com/pythia-plus/console/internal/ports"
)

// Config describes one directory.
type Config struct {
	// Name labels logs ("projects").
	Name string

	PageSize    int
	SearchDelay time.Duration

	// DefaultSort is applied until SetSort is called.
	DefaultSort     string
	DefaultSortDir  ports.SortDirection
	NotFoundMessage string
}

// Request changes several navigation parameters at once. Zero fields are
// left as they are; Search nil keeps the current query. Page is 1-indexed.
type Request struct {
	Page      int
	Size      int
	SortField string
	SortDir   ports.SortDirection
	Search    *string
}

// Snapshot is a copy of a directory's state for rendering.
type Snapshot[T, D, F any] struct {
	Items       []T              `json:"items"`
	Pagination  pagination.State `json:"pagination"`
	Facets      *F               `json:"facets,omitempty"`
	Loading     bool             `json:"loading"`
	Error       string           `json:"error,omitempty"`
	SearchQuery string           `json:"searchQuery,omitempty"`
	SortField   string           `json:"sortField,omitempty"`
	SortDir     string           `json:"sortDir,omitempty"`
	Current     *D               `json:"current,omitempty"`
	HasNext     bool             `json:"hasNext"`
	HasPrevious bool             `json:"hasPrevious"`
	FirstItem   int              `json:"firstItem"`
	LastItem    int              `json:"lastItem"`
}

// Service is one paged directory. T is the row, D the detail and F the
// facet type.
//
// Known limitation: overlapping calls are not sequenced. Two concurrent Get
// calls both write Current and the response that resolves last wins,
// whatever the request order. The same holds for overlapping page loads.
// Nothing is cancelled besides what the caller's context cancels.
type Service[T domain.Entity, D, F any] struct {
	client ports.DirectoryClient[T, D, F]
	cfg    Config
	msgs   apperr.Messages
	logger *slog.Logger

	mu        sync.Mutex
	pager     *pagination.Paginator[T]
	sortField string
	sortDir   ports.SortDirection
	query     string
	searchCtx context.Context

	items   *state.Signal[[]T]
	page    *state.Signal[pagination.State]
	facets  *state.Signal[*F]
	loading *state.Signal[bool]
	err     *state.Signal[string]
	current *state.Signal[*D]
	queryS  *state.Signal[string]

	debouncer *search.Debouncer
}

// New creates a directory service on page 1 with no data loaded.
func New[T domain.Entity, D, F any](client ports.DirectoryClient[T, D, F], cfg Config, logger *slog.Logger) *Service[T, D, F] {
	if cfg.PageSize < 1 {
		cfg.PageSize = pagination.DefaultSize
	}
	if cfg.DefaultSortDir == "" {
		cfg.DefaultSortDir = ports.SortAsc
	}

	pager := pagination.NewPaginator[T](cfg.PageSize)
	s := &Service[T, D, F]{
		client:    client,
		cfg:       cfg,
		msgs:      apperr.Messages{NotFound: cfg.NotFoundMessage},
		logger:    logging.OrDiscard(logger).With(slog.String("directory", cfg.Name)),
		pager:     pager,
		sortField: cfg.DefaultSort,
		sortDir:   cfg.DefaultSortDir,
		searchCtx: context.Background(),
		items:     state.NewSignal([]T{}),
		page:      state.NewSignal(pager.State()),
		facets:    state.NewSignal[*F](nil),
		loading:   state.NewSignal(false),
		err:       state.NewSignal(""),
		current:   state.NewSignal[*D](nil),
		queryS:    state.NewSignal(""),
	}
	s.debouncer = search.NewDebouncer(cfg.SearchDelay, s.runSearch)
	return s
}

// Items is the current page's rows.
func (s *Service[T, D, F]) Items() state.Watchable[[]T] { return s.items }

// Pagination is the current position.
func (s *Service[T, D, F]) Pagination() state.Watchable[pagination.State] { return s.page }

// Facets is the analytics of the last page, nil when the backend sent none.
func (s *Service[T, D, F]) Facets() state.Watchable[*F] { return s.facets }

// Loading is true while a call is in flight.
func (s *Service[T, D, F]) Loading() state.Watchable[bool] { return s.loading }

// Error is the user-facing message of the last failure.
func (s *Service[T, D, F]) Error() state.Watchable[string] { return s.err }

// Current is the entity last loaded by Get.
func (s *Service[T, D, F]) Current() state.Watchable[*D] { return s.current }

// SearchQuery is the last query passed to Search.
func (s *Service[T, D, F]) SearchQuery() state.Watchable[string] { return s.queryS }

// Snapshot copies the current state.
func (s *Service[T, D, F]) Snapshot() Snapshot[T, D, F] {
	s.mu.Lock()
	sortField, sortDir := s.sortField, s.sortDir
	s.mu.Unlock()

	p := s.page.Get()
	return Snapshot[T, D, F]{
		Items:       s.items.Get(),
		Pagination:  p,
		Facets:      s.facets.Get(),
		Loading:     s.loading.Get(),
		Error:       s.err.Get(),
		SearchQuery: s.queryS.Get(),
		SortField:   sortField,
		SortDir:     string(sortDir),
		Current:     s.current.Get(),
		HasNext:     p.HasNext(),
		HasPrevious: p.HasPrevious(),
		FirstItem:   p.FirstItem(),
		LastItem:    p.LastItem(),
	}
}

// LoadPage (re)loads the current page.
func (s *Service[T, D, F]) LoadPage(ctx context.Context) error {
	return s.fetch(ctx, s.page.Get().Page)
}

// NextPage loads the following page. At the last page nothing is fetched
// and it returns false.
func (s *Service[T, D, F]) NextPage(ctx context.Context) (bool, error) {
	p := s.page.Get()
	if !p.HasNext() {
		return false, nil
	}
	return true, s.fetch(ctx, p.Page+1)
}

// PreviousPage loads the preceding page. At page 1 it is a no-op.
func (s *Service[T, D, F]) PreviousPage(ctx context.Context) (bool, error) {
	p := s.page.Get()
	if !p.HasPrevious() {
		return false, nil
	}
	return true, s.fetch(ctx, p.Page-1)
}

// GoTo loads page (1-indexed). Out-of-range pages are ignored.
func (s *Service[T, D, F]) GoTo(ctx context.Context, page int) (bool, error) {
	p := s.page.Get()
	if page < 1 || page > p.TotalPages {
		return false, nil
	}
	return true, s.fetch(ctx, page)
}

// SetPageSize changes the page size and reloads from page 1.
func (s *Service[T, D, F]) SetPageSize(ctx context.Context, size int) error {
	s.mu.Lock()
	s.pager.SetPageSize(size)
	st := s.pager.State()
	s.mu.Unlock()

	s.page.Set(st)
	return s.fetch(ctx, 1)
}

// SetSort changes the sort order and reloads from page 1.
func (s *Service[T, D, F]) SetSort(ctx context.Context, field string, dir ports.SortDirection) error {
	if dir != ports.SortDesc {
		dir = ports.SortAsc
	}

	s.mu.Lock()
	s.sortField = field
	s.sortDir = dir
	s.mu.Unlock()

	return s.fetch(ctx, 1)
}

// Apply applies req and loads the resulting page with a single fetch. A
// change of size, sort or query restarts from page 1 unless req names a
// page. A query given here runs at once and drops any debounced one.
func (s *Service[T, D, F]) Apply(ctx context.Context, req Request) error {
	s.mu.Lock()
	st := s.pager.State()
	reset := false

	if req.Size > 0 && req.Size != st.Size {
		s.pager.SetPageSize(req.Size)
		st = s.pager.State()
		reset = true
	}
	if req.SortField != "" {
		dir := req.SortDir
		if dir != ports.SortDesc {
			dir = ports.SortAsc
		}
		if req.SortField != s.sortField || dir != s.sortDir {
			s.sortField, s.sortDir = req.SortField, dir
			reset = true
		}
	}
	if req.Search != nil {
		if q := strings.TrimSpace(*req.Search); q != s.query {
			s.query = q
			reset = true
		}
	}
	s.mu.Unlock()

	if req.Search != nil {
		s.debouncer.Cancel()
		s.queryS.Set(*req.Search)
	}
	if reset {
		s.page.Set(st)
	}

	page := st.Page
	switch {
	case req.Page > 0:
		page = req.Page
	case reset:
		page = 1
	}
	return s.fetch(ctx, page)
}

// Search debounces query and then reloads from page 1 with it. A blank
// query runs at once. Failures of the debounced load land in Error.
// Only ctx's values are kept: the load outlives the call.
func (s *Service[T, D, F]) Search(ctx context.Context, query string) {
	s.mu.Lock()
	s.searchCtx = context.WithoutCancel(ctx)
	s.mu.Unlock()

	s.queryS.Set(query)
	s.debouncer.Trigger(query)
}

// SearchPending reports whether a debounced search is waiting.
func (s *Service[T, D, F]) SearchPending() bool {
	return s.debouncer.Pending()
}

// Close drops any pending search.
func (s *Service[T, D, F]) Close() {
	s.debouncer.Cancel()
}

// Get loads one entity into Current. See the type's known limitation:
// concurrent calls resolve last-write-wins.
func (s *Service[T, D, F]) Get(ctx context.Context, id int64) (*D, error) {
	s.loading.Set(true)
	s.err.Set("")

	d, err := s.client.Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "Get", err, slog.Int64("id", id))
	}

	s.current.Set(d)
	s.loading.Set(false)
	return d, nil
}

// ClearCurrent empties the detail slot.
func (s *Service[T, D, F]) ClearCurrent() {
	s.current.Set(nil)
}

func (s *Service[T, D, F]) runSearch(query string) {
	s.mu.Lock()
	s.query = strings.TrimSpace(query)
	ctx := s.searchCtx
	s.mu.Unlock()

	// Errors are already in the Error signal and the log.
	_ = s.fetch(ctx, 1)
}

// fetch loads page (1-indexed). State only moves once the response is in.
func (s *Service[T, D, F]) fetch(ctx context.Context, page int) error {
	s.mu.Lock()
	q := ports.PageQuery{
		Page:      max(page-1, 0),
		Size:      s.pager.State().Size,
		SortField: s.sortField,
		SortDir:   s.sortDir,
		Search:    s.query,
	}
	s.mu.Unlock()

	s.loading.Set(true)
	s.err.Set("")

	res, err := s.client.ListPage(ctx, q)
	if err != nil {
		return s.fail(ctx, "ListPage", err, slog.Int("page", page))
	}

	s.mu.Lock()
	s.pager.SetPage(res.Pagination, res.Items)
	st := s.pager.State()
	items := s.pager.Items()
	s.mu.Unlock()

	s.items.Set(items)
	s.page.Set(st)
	s.facets.Set(res.Facets)
	s.loading.Set(false)
	return nil
}

func (s *Service[T, D, F]) fail(ctx context.Context, op string, err error, attrs ...any) error {
	s.err.Set(apperr.Describe(err, s.msgs))
	s.loading.Set(false)

	args := append([]any{
		slog.String("operation", "directory."+op),
		slog.Int("status", domain.StatusOf(err)),
		slog.Any("error", err),
	}, attrs...)
	s.logger.ErrorContext(ctx, "directory call failed", args...)

	return apperr.Wrap(err, s.msgs)
}
