package market

import (
	"github.com/profxlabs/fxterm/internal/domain"
)

// Per-timeframe lookbacks in history points. Seed points are spaced a minute
// apart, so longer timeframes map to proportionally longer windows up to the
// full buffer.
var timeframeLookbacks = map[domain.Timeframe]int{
	"1M": 3,
	"5M": 5,
	"1H": 12,
	"4H": 30,
	"1D": 60,
	"1W": 120,
}

// Ties within this fraction of price read as no established trend.
const trendTolerance = 0.0002

// TrendMatrix classifies the series direction per timeframe by comparing the
// latest price against the mean of that timeframe's lookback window. A
// timeframe with too little data, or with price within tolerance of its
// mean, reads WAIT.
func TrendMatrix(points []domain.PricePoint) map[domain.Timeframe]domain.Trend {
	out := make(map[domain.Timeframe]domain.Trend, len(domain.Timeframes))
	n := len(points)
	for _, tf := range domain.Timeframes {
		lookback := timeframeLookbacks[tf]
		if n < lookback+1 {
			out[tf] = domain.TrendWait
			continue
		}
		window := points[n-1-lookback : n-1]
		sum := 0.0
		for _, p := range window {
			sum += p.Price
		}
		mean := sum / float64(lookback)
		last := points[n-1].Price
		tol := last * trendTolerance
		switch {
		case last > mean+tol:
			out[tf] = domain.TrendUp
		case last < mean-tol:
			out[tf] = domain.TrendDown
		default:
			out[tf] = domain.TrendWait
		}
	}
	return out
}
