package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pythia-plus/console/internal/adapters/http/dto"
	"github.com/pythia-plus/console/internal/app/state"
	"github.com/pythia-plus/console/internal/domain/employee"
)

// Drafts is the employee draft service a DraftHandler drives.
type Drafts interface {
	Draft() state.Watchable[employee.Draft]
	Dirty() state.Watchable[bool]
	SavedAt() state.Watchable[time.Time]
	Error() state.Watchable[string]
	Edit(ctx context.Context, d employee.Draft)
	Save(ctx context.Context) error
	Discard(ctx context.Context) error
	Submit(ctx context.Context) (*employee.Draft, error)
}

// DraftHandler serves the employee-creation draft.
type DraftHandler struct {
	svc Drafts
}

// NewDraftHandler creates a DraftHandler over svc.
func NewDraftHandler(svc Drafts) *DraftHandler {
	return &DraftHandler{svc: svc}
}

// Routes registers the draft routes on r.
func (h *DraftHandler) Routes(r chi.Router) {
	r.Get("/", h.Get)
	r.Put("/", h.Edit)
	r.Delete("/", h.Discard)
	r.Post("/save", h.Save)
	r.Post("/submit", h.Submit)
}

// Get handles GET /drafts/employee.
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.response())
}

// Edit handles PUT /drafts/employee. The draft is saved once edits settle,
// so the answer is 202.
func (h *DraftHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var d employee.Draft
	if !decodeJSONBody(w, r, &d) {
		return
	}

	h.svc.Edit(r.Context(), d)
	writeJSON(w, r, http.StatusAccepted, h.response())
}

// Save handles POST /drafts/employee/save.
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Save(r.Context()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, h.response())
}

// Discard handles DELETE /drafts/employee.
func (h *DraftHandler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Discard(r.Context()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Submit handles POST /drafts/employee/submit. A draft that fails
// validation answers 400 with the field errors and stays saved.
func (h *DraftHandler) Submit(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Submit(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, d)
}

func (h *DraftHandler) response() dto.DraftResponse[employee.Draft] {
	resp := dto.DraftResponse[employee.Draft]{
		Draft: h.svc.Draft().Get(),
		Dirty: h.svc.Dirty().Get(),
		Error: h.svc.Error().Get(),
	}
	if at := h.svc.SavedAt().Get(); !at.IsZero() {
		resp.SavedAt = at.UTC().Format(time.RFC3339)
	}
	return resp
}
