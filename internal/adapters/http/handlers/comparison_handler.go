package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pythia-plus/console/internal/adapters/http/dto"
	"github.com/pythia-plus/console/internal/app/comparison"
)

// Comparison is the comparison workflow a ComparisonHandler drives.
type Comparison interface {
	ToggleSelection(ctx context.Context, id string) bool
	RemoveSelection(id string)
	ClearSelections()
	OpenComparison(ctx context.Context) error
	CloseComparison()
	Snapshot() comparison.Snapshot
}

// ComparisonHandler serves the candidate comparison endpoints.
type ComparisonHandler struct {
	svc Comparison
}

// NewComparisonHandler creates a ComparisonHandler over svc.
func NewComparisonHandler(svc Comparison) *ComparisonHandler {
	return &ComparisonHandler{svc: svc}
}

// Routes registers the comparison routes on r.
func (h *ComparisonHandler) Routes(r chi.Router) {
	r.Get("/", h.State)
	r.Post("/selections", h.Toggle)
	r.Delete("/selections", h.Clear)
	r.Delete("/selections/{id}", h.Remove)
	r.Post("/open", h.Open)
	r.Post("/close", h.Close)
}

// State handles GET /comparison.
func (h *ComparisonHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.Snapshot())
}

// Toggle handles POST /comparison/selections {"id": ...}. A full selection
// answers 409 with the unchanged state.
func (h *ComparisonHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status := http.StatusOK
	if !h.svc.ToggleSelection(r.Context(), req.ID) {
		status = http.StatusConflict
	}
	writeJSON(w, r, status, h.svc.Snapshot())
}

// Remove handles DELETE /comparison/selections/{id}.
func (h *ComparisonHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.svc.RemoveSelection(chi.URLParam(r, "id"))
	writeJSON(w, r, http.StatusOK, h.svc.Snapshot())
}

// Clear handles DELETE /comparison/selections.
func (h *ComparisonHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearSelections()
	writeJSON(w, r, http.StatusOK, h.svc.Snapshot())
}

// Open handles POST /comparison/open.
func (h *ComparisonHandler) Open(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.OpenComparison(r.Context()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, h.svc.Snapshot())
}

// Close handles POST /comparison/close.
func (h *ComparisonHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.svc.CloseComparison()
	writeJSON(w, r, http.StatusOK, h.svc.Snapshot())
}
