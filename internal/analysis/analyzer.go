// Package analysis produces the narrative market read shown alongside the
// chart: a bias, a confidence score, and short reasoning text. The concrete
// backend is pluggable; callers only see the Analyzer interface and are
// expected to bound every call with a context deadline.
package analysis

import (
	"context"

	"github.com/profxlabs/fxterm/internal/domain"
)

// Snapshot is the market state handed to an Analyzer.
type Snapshot struct {
	Instrument string                             `json:"instrument"`
	Price      float64                            `json:"price"`
	FastEMA    float64                            `json:"fast_ema"`
	SlowEMA    float64                            `json:"slow_ema"`
	Change24h  float64                            `json:"change_24h"`
	Trends     map[domain.Timeframe]domain.Trend  `json:"trends,omitempty"`
	Zones      []domain.Zone                      `json:"zones,omitempty"`
	OpenOrders int                                `json:"open_orders"`
}

// Analyzer turns a market snapshot into a narrative result. Implementations
// must honor ctx cancellation; slow or failed calls are replaced by a neutral
// fallback upstream.
type Analyzer interface {
	Analyze(ctx context.Context, snap Snapshot) (domain.AnalysisResult, error)
	Name() string
}
