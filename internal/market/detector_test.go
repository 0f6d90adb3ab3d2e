package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profxlabs/fxterm/internal/domain"
)

func series(prices ...float64) []domain.PricePoint {
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	pts := make([]domain.PricePoint, len(prices))
	for i, p := range prices {
		pts[i] = domain.PricePoint{
			Timestamp: base.Add(time.Duration(i) * 2 * time.Second),
			Price:     p,
			FastEMA:   p,
			SlowEMA:   p,
		}
	}
	return pts
}

func TestDetectBuyOnReclaimedSwingLow(t *testing.T) {
	// Window lows sit at 2310; the previous tick pierced below and the
	// current tick reclaimed the level.
	pts := series(2315, 2312, 2310, 2311, 2308, 2312)

	det := Detect(pts, nil, 4)
	assert.Equal(t, domain.SideBuy, det.Signal)
	require.NotNil(t, det.Marker)
	assert.Equal(t, domain.MarkerUp, det.Marker.Direction)
	assert.Equal(t, 2310.0, det.Marker.Price)
	assert.Equal(t, pts[5].Timestamp, det.Marker.Timestamp)
}

func TestDetectSellOnRejectedSwingHigh(t *testing.T) {
	pts := series(2310, 2312, 2314, 2313, 2316, 2312)

	det := Detect(pts, nil, 4)
	assert.Equal(t, domain.SideSell, det.Signal)
	require.NotNil(t, det.Marker)
	assert.Equal(t, domain.MarkerDown, det.Marker.Direction)
	assert.Equal(t, 2314.0, det.Marker.Price)
}

func TestDetectGoldDemandZoneRecovery(t *testing.T) {
	// Price falls from 2352.40 into the demand band [2305.64, 2309.94],
	// bottoms at 2308.00, then recovers to 2312.00 above the fast average.
	zones := &Registry{zones: []domain.Zone{
		{Kind: domain.ZoneDemand, Top: 2309.94, Bottom: 2305.64, Strength: 0.85},
	}}

	pts := series(2352.40, 2340.00, 2328.00, 2319.00, 2312.50, 2310.20, 2308.00, 2312.00)
	// Current fast average lags the recovery.
	pts[len(pts)-1].FastEMA = 2311.20

	det := Detect(pts, zones, 4)
	assert.Equal(t, domain.SideBuy, det.Signal)
	require.NotNil(t, det.Marker)
	assert.Equal(t, domain.MarkerUp, det.Marker.Direction)
}

func TestDetectDemandZoneOverride(t *testing.T) {
	// No structure break, but the current tick sits inside an unmitigated
	// demand band above its fast average.
	zones := &Registry{zones: []domain.Zone{
		{Kind: domain.ZoneDemand, Top: 991, Bottom: 989, Strength: 0.85},
	}}

	pts := series(995, 994, 993, 992.5, 991.5, 990.5)
	pts[len(pts)-1].FastEMA = 990.0

	det := Detect(pts, zones, 4)
	assert.Equal(t, domain.SideBuy, det.Signal)
	assert.Nil(t, det.Marker)
}

func TestDetectSupplyZoneOverride(t *testing.T) {
	zones := &Registry{zones: []domain.Zone{
		{Kind: domain.ZoneSupply, Top: 1011, Bottom: 1009, Strength: 0.85},
	}}

	pts := series(1005, 1006, 1007, 1008, 1009.5, 1010.0)
	pts[len(pts)-1].FastEMA = 1010.8

	det := Detect(pts, zones, 4)
	assert.Equal(t, domain.SideSell, det.Signal)
}

func TestDetectMitigatedZoneDoesNotOverride(t *testing.T) {
	zones := &Registry{zones: []domain.Zone{
		{Kind: domain.ZoneDemand, Top: 991, Bottom: 989, Strength: 0.85, Mitigated: true},
	}}

	pts := series(995, 994, 993, 992.5, 991.5, 990.5)
	pts[len(pts)-1].FastEMA = 990.0

	det := Detect(pts, zones, 4)
	assert.Equal(t, domain.SignalSide(""), det.Signal)
}

func TestDetectIdempotent(t *testing.T) {
	zones := BuildZones(1000, testParams())
	pts := series(1005, 1003, 1001, 1002, 999, 1003)

	first := Detect(pts, zones, 4)
	second := Detect(pts, zones, 4)
	assert.Equal(t, first.Signal, second.Signal)
	if first.Marker != nil {
		require.NotNil(t, second.Marker)
		assert.Equal(t, *first.Marker, *second.Marker)
	} else {
		assert.Nil(t, second.Marker)
	}
}

func TestDetectRequiresEnoughPoints(t *testing.T) {
	pts := series(1, 2, 3, 4, 5)

	det := Detect(pts, nil, 4)
	assert.Equal(t, domain.SignalSide(""), det.Signal)
	assert.Nil(t, det.Marker)
}
