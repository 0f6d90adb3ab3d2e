package domain

import "time"

// OrderStatus tracks the order lifecycle. An order transitions OPEN -> CLOSED
// at most once and never reverses.
type OrderStatus string

const (
	OrderStatusOpen   OrderStatus = "OPEN"
	OrderStatusClosed OrderStatus = "CLOSED"
)

// CloseReason records why a closed order was closed.
type CloseReason string

const (
	CloseReasonStopLoss   CloseReason = "STOP_LOSS"
	CloseReasonTakeProfit CloseReason = "TAKE_PROFIT"
	CloseReasonManual     CloseReason = "MANUAL"
)

// Order is a simulated position. While OPEN its PnL is recomputed on every
// tick; once CLOSED it is immutable apart from the final PnL snapshot.
type Order struct {
	ID           string      `json:"id"`
	Instrument   string      `json:"instrument"`
	Side         SignalSide  `json:"side"`
	EntryPrice   float64     `json:"entry_price"`
	StopLoss     float64     `json:"stop_loss"`
	TakeProfit   float64     `json:"take_profit"`
	Size         float64     `json:"size"`
	ContractSize float64     `json:"contract_size"`
	PnL          float64     `json:"pnl"`
	Status       OrderStatus `json:"status"`
	CloseReason  CloseReason `json:"close_reason,omitempty"`
	OpenedAt     time.Time   `json:"opened_at"`
	ClosedAt     *time.Time  `json:"closed_at,omitempty"`
}
