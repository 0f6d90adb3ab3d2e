package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profxlabs/fxterm/internal/domain"
	"github.com/profxlabs/fxterm/internal/market"
)

func sizeParams() SizeParams {
	return SizeParams{MinSize: 0.01, MaxSize: 5.0}
}

func TestComputeSizeRiskBudget(t *testing.T) {
	// 1% of 10000 risks 100; a 20 pip stop on a standard lot loses 200 per
	// unit of size, so the budget buys half a lot.
	size, err := ComputeSize(10000, 1, 0.0020, 100000, sizeParams())
	require.NoError(t, err)
	assert.InDelta(t, 0.5, size, 1e-9)
}

func TestComputeSizeClamps(t *testing.T) {
	size, err := ComputeSize(100, 0.1, 0.0500, 100000, sizeParams())
	require.NoError(t, err)
	assert.Equal(t, 0.01, size)

	size, err = ComputeSize(1000000, 5, 0.0010, 100000, sizeParams())
	require.NoError(t, err)
	assert.Equal(t, 5.0, size)
}

func TestComputeSizeRejectsDegenerateInputs(t *testing.T) {
	_, err := ComputeSize(10000, 1, 0, 100000, sizeParams())
	assert.ErrorIs(t, err, domain.ErrInvalidRisk)

	_, err = ComputeSize(0, 1, 0.0020, 100000, sizeParams())
	assert.ErrorIs(t, err, domain.ErrInvalidRisk)

	_, err = ComputeSize(10000, -1, 0.0020, 100000, sizeParams())
	assert.ErrorIs(t, err, domain.ErrInvalidRisk)
}

func TestPlaceStopsFromZones(t *testing.T) {
	zones := market.BuildZones(1000, market.ZoneParams{
		Offsets:   []float64{0.010},
		Strengths: []float64{0.85},
		BandWidth: 0.002,
	})
	p := StopParams{FallbackStopPct: 0.005, FallbackTargetPct: 0.015}

	sl, tp := PlaceStops(domain.SideBuy, 1000, zones, p)
	assert.InDelta(t, 989.0, sl, 1e-9, "stop under the demand band")
	assert.InDelta(t, 1009.0, tp, 1e-9, "target at the supply underside")

	sl, tp = PlaceStops(domain.SideSell, 1000, zones, p)
	assert.InDelta(t, 1011.0, sl, 1e-9, "stop over the supply band")
	assert.InDelta(t, 991.0, tp, 1e-9, "target at the demand top")
}

func TestPlaceStopsFallbacks(t *testing.T) {
	p := StopParams{FallbackStopPct: 0.005, FallbackTargetPct: 0.015}

	sl, tp := PlaceStops(domain.SideBuy, 2000, nil, p)
	assert.InDelta(t, 1990.0, sl, 1e-9)
	assert.InDelta(t, 2030.0, tp, 1e-9)

	sl, tp = PlaceStops(domain.SideSell, 2000, nil, p)
	assert.InDelta(t, 2010.0, sl, 1e-9)
	assert.InDelta(t, 1970.0, tp, 1e-9)
}
