package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profxlabs/fxterm/internal/domain"
)

func testParams() ZoneParams {
	return ZoneParams{
		Offsets:   []float64{0.010, 0.025},
		Strengths: []float64{0.85, 0.60},
		BandWidth: 0.002,
	}
}

func TestBuildZonesGeometry(t *testing.T) {
	r := BuildZones(1000, testParams())
	zones := r.Zones()
	require.Len(t, zones, 4)

	// First offset: supply centered at 1010, demand at 990, bands 2 wide.
	assert.Equal(t, domain.ZoneSupply, zones[0].Kind)
	assert.InDelta(t, 1011.0, zones[0].Top, 1e-9)
	assert.InDelta(t, 1009.0, zones[0].Bottom, 1e-9)
	assert.Equal(t, 0.85, zones[0].Strength)

	assert.Equal(t, domain.ZoneDemand, zones[1].Kind)
	assert.InDelta(t, 991.0, zones[1].Top, 1e-9)
	assert.InDelta(t, 989.0, zones[1].Bottom, 1e-9)

	// Second offset sits further out with lower strength.
	assert.InDelta(t, 1026.0, zones[2].Top, 1e-9)
	assert.Equal(t, 0.60, zones[2].Strength)
}

func TestRegistryContaining(t *testing.T) {
	r := BuildZones(1000, testParams())

	z, ok := r.Containing(990)
	require.True(t, ok)
	assert.Equal(t, domain.ZoneDemand, z.Kind)

	_, ok = r.Containing(1000)
	assert.False(t, ok)
}

func TestRegistryMitigate(t *testing.T) {
	r := BuildZones(1000, testParams())

	assert.True(t, r.Mitigate(990))
	assert.False(t, r.Mitigate(990), "second pass should find nothing new")

	z, ok := r.Containing(990)
	require.True(t, ok)
	assert.True(t, z.Mitigated)
}

func TestRegistryNearest(t *testing.T) {
	r := BuildZones(1000, testParams())

	above, ok := r.NearestAbove(1000, domain.ZoneSupply)
	require.True(t, ok)
	assert.InDelta(t, 1009.0, above.Bottom, 1e-9)

	below, ok := r.NearestBelow(1000, domain.ZoneDemand)
	require.True(t, ok)
	assert.InDelta(t, 991.0, below.Top, 1e-9)

	_, ok = r.NearestAbove(1030, domain.ZoneSupply)
	assert.False(t, ok)
}
