package market

import (
	"github.com/profxlabs/fxterm/internal/domain"
)

// Detection is the outcome of one detector pass: an optional structural
// marker where a recent swing level was reclaimed, and an optional trade
// signal side. Both are zero when the series shows no change of character.
type Detection struct {
	Signal domain.SignalSide
	Marker *domain.StructureMarker
}

// Detect scans the newest point of the series for a change of character
// against the swing range of the lookback window, then lets an unmitigated
// zone at the current price override the tentative side.
//
// The window covers the lookback points that precede the previous point, so
// the previous point can itself sit outside the range it is compared to. The
// series must hold at least lookback+2 points; shorter series yield an empty
// Detection. Detect never mutates its inputs, so repeated calls over an
// unchanged series return identical results.
func Detect(points []domain.PricePoint, zones *Registry, lookback int) Detection {
	n := len(points)
	if lookback < 1 || n < lookback+2 {
		return Detection{}
	}

	cur := points[n-1]
	prev := points[n-2]
	window := points[n-2-lookback : n-2]

	recentLow := window[0].Price
	recentHigh := window[0].Price
	for _, p := range window[1:] {
		if p.Price < recentLow {
			recentLow = p.Price
		}
		if p.Price > recentHigh {
			recentHigh = p.Price
		}
	}

	var det Detection

	// Change of character: the previous tick pierced a swing level and the
	// current tick reclaimed it.
	switch {
	case prev.Price < recentLow && cur.Price > recentLow:
		det.Signal = domain.SideBuy
		det.Marker = &domain.StructureMarker{
			Direction: domain.MarkerUp,
			Price:     recentLow,
			Timestamp: cur.Timestamp,
		}
	case prev.Price > recentHigh && cur.Price < recentHigh:
		det.Signal = domain.SideSell
		det.Marker = &domain.StructureMarker{
			Direction: domain.MarkerDown,
			Price:     recentHigh,
			Timestamp: cur.Timestamp,
		}
	}

	// Zone mitigation overrides the tentative side: price reacting inside a
	// demand band above its fast EMA is a buy regardless of structure, and
	// the mirror case inside supply is a sell.
	if zones != nil {
		if z, ok := zones.Containing(cur.Price); ok && !z.Mitigated {
			switch {
			case z.Kind == domain.ZoneDemand && cur.Price > cur.FastEMA:
				det.Signal = domain.SideBuy
			case z.Kind == domain.ZoneSupply && cur.Price < cur.FastEMA:
				det.Signal = domain.SideSell
			}
		}
	}

	return det
}
