package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pythia-plus/console/internal/adapters/http/dto"
	"github.com/pythia-plus/console/internal/app/directory"
)

// Directory is the paged directory service a DirectoryHandler drives.
type Directory[T, D, F any] interface {
	Apply(ctx context.Context, req directory.Request) error
	NextPage(ctx context.Context) (bool, error)
	PreviousPage(ctx context.Context) (bool, error)
	Get(ctx context.Context, id int64) (*D, error)
	Snapshot() directory.Snapshot[T, D, F]
}

// DirectoryHandler serves navigation over one paged directory.
type DirectoryHandler[T, D, F any] struct {
	dir Directory[T, D, F]
}

// NewDirectoryHandler creates a DirectoryHandler over dir.
func NewDirectoryHandler[T, D, F any](dir Directory[T, D, F]) *DirectoryHandler[T, D, F] {
	return &DirectoryHandler[T, D, F]{dir: dir}
}

// Routes registers the navigation routes on r.
func (h *DirectoryHandler[T, D, F]) Routes(r chi.Router) {
	r.Get("/", h.Page)
	r.Post("/next", h.Next)
	r.Post("/previous", h.Previous)
	r.Get("/{id}", h.Get)
}

// Page handles GET /{directory}?page=&size=&sort=field,dir&search=.
func (h *DirectoryHandler[T, D, F]) Page(w http.ResponseWriter, r *http.Request) {
	nav, err := dto.ParseNavigation(r.URL.Query())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	err = h.dir.Apply(r.Context(), directory.Request{
		Page:      nav.Page,
		Size:      nav.Size,
		SortField: nav.Sort,
		SortDir:   nav.SortDir,
		Search:    nav.Search,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, h.dir.Snapshot())
}

// Next handles POST /{directory}/next. At the last page the current
// snapshot is returned unchanged.
func (h *DirectoryHandler[T, D, F]) Next(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.dir.NextPage)
}

// Previous handles POST /{directory}/previous.
func (h *DirectoryHandler[T, D, F]) Previous(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.dir.PreviousPage)
}

// Get handles GET /{directory}/{id}.
func (h *DirectoryHandler[T, D, F]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	d, err := h.dir.Get(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, d)
}

func (h *DirectoryHandler[T, D, F]) move(w http.ResponseWriter, r *http.Request, step func(context.Context) (bool, error)) {
	if _, err := step(r.Context()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, h.dir.Snapshot())
}
