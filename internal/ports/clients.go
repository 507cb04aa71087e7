package ports

import (
	"context"

	"github.com/pythia-plus/console/internal/domain/candidate"
	"github.com/pythia-plus/console/internal/domain/pagination"
)

// ResourceClient is the REST port for one master-data resource. List
// returns every item plus the backend's total count.
type ResourceClient[T any] interface {
	List(ctx context.Context) ([]T, int, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id int64, item *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// SortDirection is the direction half of the wire sort parameter.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PageQuery selects one backend page. Page is 0-indexed (wire form).
type PageQuery struct {
	Page      int
	Size      int
	SortField string
	SortDir   SortDirection
	Search    string
}

// Page is one validated and mapped backend list page. Facets is nil when the
// backend sent no analytics block.
type Page[T, F any] struct {
	Items      []T
	Pagination pagination.Metadata
	Facets     *F
}

// DirectoryClient is the REST port for a server-paged entity directory
// (employees, projects). T is the row model, D the detail model and F the
// facet model.
type DirectoryClient[T, D, F any] interface {
	ListPage(ctx context.Context, q PageQuery) (*Page[T, F], error)
	Get(ctx context.Context, id int64) (*D, error)
}

// BatchResult is the outcome of a batch profile fetch. Partial is set when
// the backend answered 206 or reported ids it could not find.
type BatchResult struct {
	Profiles []candidate.Profile
	NotFound []string
	Partial  bool
}

// CandidateClient is the REST port for the batched candidate profile fetch.
type CandidateClient interface {
	BatchProfiles(ctx context.Context, ids []string) (*BatchResult, error)
}
