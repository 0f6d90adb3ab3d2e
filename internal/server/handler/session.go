package handler

import (
	"net/http"
	"time"

	"github.com/profxlabs/fxterm/internal/domain"
)

// SessionHandler serves the trading-session liquidity windows.
type SessionHandler struct {
	windows []domain.SessionWindow
}

// NewSessionHandler creates a SessionHandler over the configured windows.
func NewSessionHandler(windows []domain.SessionWindow) *SessionHandler {
	return &SessionHandler{windows: windows}
}

// ListSessions responds with every window and whether it is open right now.
// GET /api/sessions
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()

	type row struct {
		Name      string `json:"name"`
		StartHour int    `json:"start_hour"`
		EndHour   int    `json:"end_hour"`
		Open      bool   `json:"open"`
	}
	rows := make([]row, 0, len(h.windows))
	for _, win := range h.windows {
		rows = append(rows, row{
			Name:      win.Name,
			StartHour: win.StartHour,
			EndHour:   win.EndHour,
			Open:      win.IsOpen(now),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"time":     now.Format(time.RFC3339),
		"sessions": rows,
	})
}
