package handler

import (
	"net/http"

	"github.com/profxlabs/fxterm/internal/engine"
)

// StatusHandler serves the aggregate engine status for the dashboard.
type StatusHandler struct {
	engine *engine.Engine
	mode   string
}

// NewStatusHandler creates a StatusHandler.
func NewStatusHandler(e *engine.Engine, mode string) *StatusHandler {
	return &StatusHandler{engine: e, mode: mode}
}

// GetStatus responds with the engine status snapshot plus the run mode.
// GET /api/status
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"mode":   h.mode,
		"status": h.engine.Status(),
	})
}
