package domain

import "time"

// SignalSide is the direction of a reversal signal or an order.
type SignalSide string

const (
	SideBuy  SignalSide = "BUY"
	SideSell SignalSide = "SELL"
)

// MarkerDirection is the direction of a structure marker.
type MarkerDirection string

const (
	MarkerUp   MarkerDirection = "UP"
	MarkerDown MarkerDirection = "DOWN"
)

// StructureMarker flags a change of character: the most recent swing high or
// low was invalidated and price came back through it. Markers are ephemeral
// and attach only to the point that triggered them.
type StructureMarker struct {
	Direction MarkerDirection `json:"direction"`
	Price     float64         `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

// PricePoint is one computed observation of the simulated series. Immutable
// once appended to history; produced exactly once per tick.
type PricePoint struct {
	Timestamp time.Time        `json:"timestamp"`
	Price     float64          `json:"price"`
	FastEMA   float64          `json:"fast_ema"`
	SlowEMA   float64          `json:"slow_ema"`
	Volume    int64            `json:"volume"`
	Marker    *StructureMarker `json:"marker,omitempty"`
	Signal    SignalSide       `json:"signal,omitempty"` // empty when no reversal fired
}

// Timeframe identifies one row of the multi-timeframe trend matrix.
type Timeframe string

// Timeframes lists the matrix rows in display order.
var Timeframes = []Timeframe{"1M", "5M", "1H", "4H", "1D", "1W"}

// Trend is the per-timeframe directional reading.
type Trend string

const (
	TrendUp   Trend = "UP"
	TrendDown Trend = "DOWN"
	TrendWait Trend = "WAIT"
)
