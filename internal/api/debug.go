package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glassgovernment/legistar-sync/internal/debuglog"
	"github.com/glassgovernment/legistar-sync/internal/pipeline"
)

// DebugHandler exposes the diagnostic surface: toggling diagnostic mode,
// reading/clearing the diagnostic log, and raw cache-bypassing fetches.
type DebugHandler struct {
	diag *debuglog.Log
	pipe *pipeline.Pipeline
}

func NewDebugHandler(diag *debuglog.Log, pipe *pipeline.Pipeline) *DebugHandler {
	return &DebugHandler{diag: diag, pipe: pipe}
}

type toggleDebugRequest struct {
	Enabled *bool `json:"enabled"`
}

type toggleDebugResponse struct {
	Enabled bool `json:"enabled"`
}

// Toggle flips diagnostic mode, or sets it explicitly when the request body
// carries an "enabled" field.
func (h *DebugHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	next := !h.diag.Enabled()

	var req toggleDebugRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Enabled != nil {
		next = *req.Enabled
	}

	h.diag.SetEnabled(next)
	respondJSON(w, http.StatusOK, toggleDebugResponse{Enabled: next})
}

func (h *DebugHandler) Log(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.diag.Entries())
}

func (h *DebugHandler) ClearLog(w http.ResponseWriter, r *http.Request) {
	h.diag.Clear()
	w.WriteHeader(http.StatusNoContent)
}

type sourcesResponse struct {
	Sources []string `json:"sources"`
}

func (h *DebugHandler) Sources(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, sourcesResponse{Sources: h.pipe.SourceNames()})
}

// Raw returns the verbatim upstream payload for one source. The fetch
// bypasses the edge cache and is never stored.
func (h *DebugHandler) Raw(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "source")

	res, ok := h.pipe.FetchRaw(r.Context(), name)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown source")
		return
	}
	respondJSON(w, http.StatusOK, res)
}
