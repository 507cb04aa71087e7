package dto

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pythia-plus/console/internal/domain"
	"github.com/pythia-plus/console/internal/ports"
)

// maxPageSize bounds ?size on directory navigation.
const maxPageSize = 500

// Navigation is the query of GET /console/v1/{directory}. Zero fields mean
// "leave as is". Page is 1-indexed.
type Navigation struct {
	Page    int
	Size    int
	Sort    string
	SortDir ports.SortDirection
	Search  *string
}

// ParseNavigation reads page, size, sort ("field" or "field,dir") and search
// from q. A present but empty search clears the query.
func ParseNavigation(q url.Values) (Navigation, error) {
	var (
		nav    Navigation
		fields = make(map[string]string)
	)

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fields["page"] = "must be a positive integer"
		}
		nav.Page = n
	}
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageSize {
			fields["size"] = "must be between 1 and " + strconv.Itoa(maxPageSize)
		}
		nav.Size = n
	}
	if raw := q.Get("sort"); raw != "" {
		field, dir, _ := strings.Cut(raw, ",")
		nav.Sort = strings.TrimSpace(field)
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
			nav.SortDir = ports.SortAsc
		case "desc":
			nav.SortDir = ports.SortDesc
		default:
			fields["sort"] = "direction must be asc or desc"
		}
		if nav.Sort == "" {
			fields["sort"] = domain.MsgRequired
		}
	}
	if q.Has("search") {
		s := q.Get("search")
		nav.Search = &s
	}

	if len(fields) > 0 {
		return Navigation{}, &domain.ValidationError{Fields: fields}
	}
	return nav, nil
}

// SelectionRequest is the body of the comparison selection endpoints.
type SelectionRequest struct {
	ID string `json:"id"`
}

// Validate checks that an id was sent.
func (r *SelectionRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return &domain.ValidationError{Fields: map[string]string{"id": domain.MsgRequired}}
	}
	return nil
}
