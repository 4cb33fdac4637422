package api

import (
	"net/http"

	"github.com/glassgovernment/legistar-sync/internal/pipeline"
)

// SyncHandler exposes the manual sync trigger. It calls the same run path
// as the scheduled trigger.
type SyncHandler struct {
	pipe *pipeline.Pipeline
}

func NewSyncHandler(p *pipeline.Pipeline) *SyncHandler {
	return &SyncHandler{pipe: p}
}

func (h *SyncHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	report := h.pipe.Run(r.Context())
	respondJSON(w, http.StatusOK, report)
}
