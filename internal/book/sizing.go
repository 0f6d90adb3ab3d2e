package book

import (
	"github.com/profxlabs/fxterm/internal/domain"
	"github.com/profxlabs/fxterm/internal/market"
)

// SizeParams bounds risk-based position sizing.
type SizeParams struct {
	MinSize float64
	MaxSize float64
}

// ComputeSize derives a position size from the risk budget: riskPercent of
// balance divided by the loss a full stop-out would realize per unit of size.
// The result is clamped to [MinSize, MaxSize].
func ComputeSize(balance, riskPercent, stopDistance, contractSize float64, p SizeParams) (float64, error) {
	if balance <= 0 || riskPercent <= 0 || stopDistance <= 0 || contractSize <= 0 {
		return 0, domain.ErrInvalidRisk
	}
	riskAmount := balance * riskPercent / 100
	size := riskAmount / (stopDistance * contractSize)
	if size < p.MinSize {
		size = p.MinSize
	}
	if size > p.MaxSize {
		size = p.MaxSize
	}
	return size, nil
}

// StopParams provides the percentage fallbacks used when no zone is
// available on the relevant side of the entry.
type StopParams struct {
	FallbackStopPct   float64
	FallbackTargetPct float64
}

// PlaceStops derives stop-loss and take-profit levels for a new order from
// the zone layout. A buy stops under the demand band below the entry and
// targets the underside of the supply band above; a sell mirrors that. When
// no zone exists on the needed side the percentage fallbacks apply.
func PlaceStops(side domain.SignalSide, entry float64, zones *market.Registry, p StopParams) (stopLoss, takeProfit float64) {
	if side == domain.SideBuy {
		stopLoss = entry * (1 - p.FallbackStopPct)
		takeProfit = entry * (1 + p.FallbackTargetPct)
		if zones != nil {
			if z, ok := zones.NearestBelow(entry, domain.ZoneDemand); ok {
				stopLoss = z.Bottom
			}
			if z, ok := zones.NearestAbove(entry, domain.ZoneSupply); ok {
				takeProfit = z.Bottom
			}
		}
		return stopLoss, takeProfit
	}

	stopLoss = entry * (1 + p.FallbackStopPct)
	takeProfit = entry * (1 - p.FallbackTargetPct)
	if zones != nil {
		if z, ok := zones.NearestAbove(entry, domain.ZoneSupply); ok {
			stopLoss = z.Top
		}
		if z, ok := zones.NearestBelow(entry, domain.ZoneDemand); ok {
			takeProfit = z.Top
		}
	}
	return stopLoss, takeProfit
}
