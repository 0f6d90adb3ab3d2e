package handler

import (
	"net/http"
	"strings"

	"github.com/profxlabs/fxterm/internal/domain"
	"github.com/profxlabs/fxterm/internal/engine"
)

// OrderHandler serves the order book endpoints.
type OrderHandler struct {
	engine *engine.Engine
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(e *engine.Engine) *OrderHandler {
	return &OrderHandler{engine: e}
}

// ListOrders responds with every order plus the floating aggregate. Pass
// ?status=open to restrict to open orders.
// GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var orders []domain.Order
	if strings.EqualFold(r.URL.Query().Get("status"), "open") {
		orders = h.engine.OpenOrders()
	} else {
		orders = h.engine.Orders()
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	st := h.engine.Status()
	writeJSON(w, http.StatusOK, map[string]any{
		"orders":       orders,
		"floating_pnl": st.FloatingPnL,
		"balance":      st.Balance,
		"equity":       st.Equity,
	})
}

// PlaceOrder opens an order on the active instrument.
// POST /api/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Side        string  `json:"side"`
		RiskPercent float64 `json:"risk_percent"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.engine.ExecuteTrade(r.Context(), domain.SignalSide(strings.ToUpper(req.Side)), req.RiskPercent)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// CloseOrder manually closes one order at the current price.
// DELETE /api/orders/{id}
func (h *OrderHandler) CloseOrder(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	order, err := h.engine.CloseOrder(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// CloseAll closes every open order at the current price.
// POST /api/orders/close-all
func (h *OrderHandler) CloseAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.engine.CloseAllOrders(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"closed": n})
}
