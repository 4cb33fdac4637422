package api

import (
	"net/http"
	"time"

	"github.com/glassgovernment/legistar-sync/internal/config"
	"github.com/glassgovernment/legistar-sync/internal/debuglog"
	"github.com/glassgovernment/legistar-sync/internal/domain"
	"github.com/glassgovernment/legistar-sync/internal/pipeline"
)

// StatusHandler reports the last run's outcome and the current
// configuration, for operator visibility.
type StatusHandler struct {
	pipe *pipeline.Pipeline
	diag *debuglog.Log
	cfg  *config.Config
}

func NewStatusHandler(p *pipeline.Pipeline, diag *debuglog.Log, cfg *config.Config) *StatusHandler {
	return &StatusHandler{pipe: p, diag: diag, cfg: cfg}
}

type statusResponse struct {
	LastSync    *time.Time                   `json:"last_sync,omitempty"`
	LastResults map[string]domain.SyncResult `json:"last_results,omitempty"`
	DebugMode   bool                         `json:"debug_mode"`
	WindowDays  int                          `json:"window_days"`
	Timezone    string                       `json:"timezone"`
	Sources     []string                     `json:"sources"`
}

func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	lastRun, results := h.pipe.LastRun()

	resp := statusResponse{
		DebugMode:  h.diag.Enabled(),
		WindowDays: h.cfg.MaxPastDays,
		Timezone:   h.cfg.DisplayTimezone,
		Sources:    h.pipe.SourceNames(),
	}
	if !lastRun.IsZero() {
		resp.LastSync = &lastRun
		resp.LastResults = results
	}

	respondJSON(w, http.StatusOK, resp)
}
