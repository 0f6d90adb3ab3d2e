package handler

import (
	"net/http"

	"github.com/profxlabs/fxterm/internal/engine"
)

// AnalysisHandler serves the narrative-analysis endpoints.
type AnalysisHandler struct {
	engine *engine.Engine
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(e *engine.Engine) *AnalysisHandler {
	return &AnalysisHandler{engine: e}
}

// RequestAnalysis dispatches an asynchronous analysis run. The result
// arrives later on the analysis WebSocket channel and via GetAnalysis.
// POST /api/analysis
func (h *AnalysisHandler) RequestAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := h.engine.RequestAnalysis(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"request_id": id,
		"status":     "pending",
	})
}

// GetAnalysis responds with the most recent narrative result.
// GET /api/analysis
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	res, ok := h.engine.Analysis()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"analysis": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analysis": res})
}
