// Package domain defines the core types shared across the terminal engine:
// instruments, price points, zones, orders, analysis results, and the
// interfaces implemented by the cache layer.
package domain

import (
	"strconv"
	"time"
)

// Instrument describes a tradable symbol and its simulation parameters.
// Instruments are static reference data supplied at configuration time.
type Instrument struct {
	Symbol       string  // e.g. "EURUSD=X"
	Name         string  // e.g. "EUR/USD"
	InitialPrice float64 // session starting price
	Volatility   float64 // per-tick perturbation as a fraction of price
	ContractSize float64 // PnL multiplier (100000 FX, 100 metals, 1 crypto)
	Decimals     int     // display precision
}

// FormatPrice renders a price at the instrument's display precision.
func (i Instrument) FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', i.Decimals, 64)
}

// SessionWindow is a named trading-session window in UTC hours.
type SessionWindow struct {
	Name      string
	StartHour int // inclusive, 0-23 UTC
	EndHour   int // exclusive, 0-23 UTC; may wrap past midnight
}

// IsOpen reports whether the window contains the given instant (UTC).
// Windows like Sydney 22-06 wrap past midnight.
func (w SessionWindow) IsOpen(at time.Time) bool {
	h := at.UTC().Hour()
	if w.StartHour < w.EndHour {
		return h >= w.StartHour && h < w.EndHour
	}
	return h >= w.StartHour || h < w.EndHour
}
