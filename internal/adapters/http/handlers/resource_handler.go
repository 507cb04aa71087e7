package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pythia-plus/console/internal/adapters/http/dto"
	"github.com/pythia-plus/console/internal/app/resource"
)

// ResourceStore is the master-data service a ResourceHandler drives.
type ResourceStore[T any] interface {
	Endpoint() string
	Load(ctx context.Context) error
	SetSearchQuery(q string)
	Snapshot() resource.Snapshot[T]
	Create(ctx context.Context, item T) (*T, error)
	Update(ctx context.Context, id int64, item T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// ResourceHandler serves CRUD for one master-data resource.
type ResourceHandler[T any] struct {
	store ResourceStore[T]
}

// NewResourceHandler creates a ResourceHandler over store.
func NewResourceHandler[T any](store ResourceStore[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{store: store}
}

// Pattern is the mount path, "/{endpoint}".
func (h *ResourceHandler[T]) Pattern() string {
	return "/" + h.store.Endpoint()
}

// Routes registers the CRUD routes on r.
func (h *ResourceHandler[T]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List handles GET /{resource}?search=. The collection is reloaded from the
// backend and filtered by the query; without ?search the previous query
// stays in effect.
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query(); q.Has("search") {
		h.store.SetSearchQuery(q.Get("search"))
	}

	if err := h.store.Load(r.Context()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	snap := h.store.Snapshot()
	writeJSON(w, r, http.StatusOK, dto.ListResponse[T]{
		Items:       snap.Filtered,
		Total:       snap.Total,
		SearchQuery: snap.SearchQuery,
	})
}

// Create handles POST /{resource}.
func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var item T
	if !decodeJSONBody(w, r, &item) {
		return
	}

	created, err := h.store.Create(r.Context(), item)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, created)
}

// Update handles PUT /{resource}/{id}.
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var item T
	if !decodeJSONBody(w, r, &item) {
		return
	}

	updated, err := h.store.Update(r.Context(), id, item)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /{resource}/{id}.
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
