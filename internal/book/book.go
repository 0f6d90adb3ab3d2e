// Package book holds the in-memory order book: open positions, floating
// profit tracking, stop-loss and take-profit enforcement, and risk-based
// position sizing. The book is the single writer of order state; everything
// else reads snapshots.
package book

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/profxlabs/fxterm/internal/domain"
)

// OrderBook tracks every order opened during a session, open and closed.
// All methods are safe for concurrent use.
type OrderBook struct {
	mu     sync.Mutex
	orders []*domain.Order
	index  map[string]*domain.Order
}

// NewOrderBook returns an empty book.
func NewOrderBook() *OrderBook {
	return &OrderBook{index: make(map[string]*domain.Order)}
}

// Open registers a new order. The book assigns the ID, open status, and
// timestamp; the caller supplies everything else. Returns the stored order.
func (b *OrderBook) Open(o domain.Order, now time.Time) domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	o.ID = uuid.NewString()
	o.Status = domain.OrderStatusOpen
	o.OpenedAt = now
	o.PnL = 0

	stored := o
	b.orders = append(b.orders, &stored)
	b.index[stored.ID] = &stored
	return stored
}

// RepriceAll marks every open order to price: floating PnL is refreshed, and
// orders whose stop or target the price has reached are closed with PnL fixed
// at the current price. Returns the orders closed by this pass. Closed orders
// are never touched again.
func (b *OrderBook) RepriceAll(price float64, now time.Time) []domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	var closed []domain.Order
	for _, o := range b.orders {
		if o.Status != domain.OrderStatusOpen {
			continue
		}
		o.PnL = pnl(o, price)

		reason, hit := exitReason(o, price)
		if !hit {
			continue
		}
		closeLocked(o, price, reason, now)
		closed = append(closed, *o)
	}
	return closed
}

// Close manually closes one open order at price. Returns domain.ErrNotFound
// for unknown IDs; closing an already-closed order is a no-op that returns
// the settled order with closedNow false.
func (b *OrderBook) Close(id string, price float64, now time.Time) (o domain.Order, closedNow bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored, ok := b.index[id]
	if !ok {
		return domain.Order{}, false, domain.ErrNotFound
	}
	if stored.Status != domain.OrderStatusOpen {
		return *stored, false, nil
	}
	closeLocked(stored, price, domain.CloseReasonManual, now)
	return *stored, true, nil
}

// CloseAll closes every open order at price with a manual close reason and
// returns the orders it closed.
func (b *OrderBook) CloseAll(price float64, now time.Time) []domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	var closed []domain.Order
	for _, o := range b.orders {
		if o.Status != domain.OrderStatusOpen {
			continue
		}
		closeLocked(o, price, domain.CloseReasonManual, now)
		closed = append(closed, *o)
	}
	return closed
}

// Orders returns a snapshot of every order, oldest first.
func (b *OrderBook) Orders() []domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.Order, len(b.orders))
	for i, o := range b.orders {
		out[i] = *o
	}
	return out
}

// OpenOrders returns a snapshot of only the open orders.
func (b *OrderBook) OpenOrders() []domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []domain.Order
	for _, o := range b.orders {
		if o.Status == domain.OrderStatusOpen {
			out = append(out, *o)
		}
	}
	return out
}

// FloatingPnL sums the floating profit of all open orders as of the last
// reprice.
func (b *OrderBook) FloatingPnL() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := 0.0
	for _, o := range b.orders {
		if o.Status == domain.OrderStatusOpen {
			total += o.PnL
		}
	}
	return total
}

func closeLocked(o *domain.Order, price float64, reason domain.CloseReason, now time.Time) {
	o.PnL = pnl(o, price)
	o.Status = domain.OrderStatusClosed
	o.CloseReason = reason
	t := now
	o.ClosedAt = &t
}

func pnl(o *domain.Order, price float64) float64 {
	diff := price - o.EntryPrice
	if o.Side == domain.SideSell {
		diff = o.EntryPrice - price
	}
	return diff * o.Size * o.ContractSize
}

func exitReason(o *domain.Order, price float64) (domain.CloseReason, bool) {
	if o.Side == domain.SideBuy {
		switch {
		case o.StopLoss > 0 && price <= o.StopLoss:
			return domain.CloseReasonStopLoss, true
		case o.TakeProfit > 0 && price >= o.TakeProfit:
			return domain.CloseReasonTakeProfit, true
		}
		return "", false
	}
	switch {
	case o.StopLoss > 0 && price >= o.StopLoss:
		return domain.CloseReasonStopLoss, true
	case o.TakeProfit > 0 && price <= o.TakeProfit:
		return domain.CloseReasonTakeProfit, true
	}
	return "", false
}
