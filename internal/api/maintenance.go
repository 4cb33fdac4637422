package api

import (
	"net/http"
	"time"

	calsync "github.com/glassgovernment/legistar-sync/internal/sync"
)

// MaintenanceHandler exposes the store maintenance passes: stale-event purge
// and venue deduplication.
type MaintenanceHandler struct {
	engine      *calsync.Engine
	maxPastDays int
}

func NewMaintenanceHandler(e *calsync.Engine, maxPastDays int) *MaintenanceHandler {
	return &MaintenanceHandler{engine: e, maxPastDays: maxPastDays}
}

type purgeResponse struct {
	Deleted int `json:"deleted"`
}

func (h *MaintenanceHandler) Purge(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.engine.PurgeOldEvents(r.Context(), time.Now(), h.maxPastDays)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "purge failed")
		return
	}
	respondJSON(w, http.StatusOK, purgeResponse{Deleted: deleted})
}

func (h *MaintenanceHandler) Dedupe(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.DeduplicateVenues(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "dedupe failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
