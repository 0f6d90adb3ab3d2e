package handler

import (
	"net/http"

	"github.com/profxlabs/fxterm/internal/engine"
)

// InstrumentHandler serves the watchlist and the active instrument snapshot.
type InstrumentHandler struct {
	engine *engine.Engine
}

// NewInstrumentHandler creates an InstrumentHandler.
func NewInstrumentHandler(e *engine.Engine) *InstrumentHandler {
	return &InstrumentHandler{engine: e}
}

// ListInstruments responds with the configured watchlist.
// GET /api/instruments
func (h *InstrumentHandler) ListInstruments(w http.ResponseWriter, r *http.Request) {
	active := h.engine.Instrument()

	type row struct {
		Symbol   string `json:"symbol"`
		Name     string `json:"name"`
		Decimals int    `json:"decimals"`
		Active   bool   `json:"active"`
	}
	rows := make([]row, 0)
	for _, inst := range h.engine.Instruments() {
		rows = append(rows, row{
			Symbol:   inst.Symbol,
			Name:     inst.Name,
			Decimals: inst.Decimals,
			Active:   inst.Symbol == active.Symbol,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"instruments": rows})
}

// GetInstrument responds with the active instrument: current price, the full
// history window, and the zone layout.
// GET /api/instrument
func (h *InstrumentHandler) GetInstrument(w http.ResponseWriter, r *http.Request) {
	st := h.engine.Status()
	writeJSON(w, http.StatusOK, map[string]any{
		"symbol":     st.Symbol,
		"name":       st.Name,
		"price":      st.Price,
		"change_24h": st.Change24h,
		"history":    h.engine.History(),
		"zones":      h.engine.Zones(),
		"trends":     st.Trends,
	})
}

// SelectInstrument switches the active instrument. The order book and
// balance survive the switch.
// POST /api/instrument/select
func (h *InstrumentHandler) SelectInstrument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbol string `json:"symbol"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	if err := h.engine.SelectInstrument(req.Symbol); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"symbol": req.Symbol})
}
