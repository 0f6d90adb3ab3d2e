package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEMAPairInitializesToFirstPrice(t *testing.T) {
	e := NewEMAPair(0.15, 0.075)

	fast, slow := e.Update(1.0850)
	assert.Equal(t, 1.0850, fast)
	assert.Equal(t, 1.0850, slow)
}

func TestEMAPairUpdate(t *testing.T) {
	e := NewEMAPair(0.15, 0.075)
	e.Update(100)

	fast, slow := e.Update(110)
	assert.InDelta(t, 100*0.85+110*0.15, fast, 1e-12)
	assert.InDelta(t, 100*0.925+110*0.075, slow, 1e-12)
}

func TestEMAPairFastReactsFaster(t *testing.T) {
	e := NewEMAPair(0.15, 0.075)
	e.Update(100)

	fast, slow := e.Update(120)
	assert.Greater(t, fast, slow)
}

func TestEMAPairDeterministic(t *testing.T) {
	prices := []float64{2352.40, 2351.10, 2349.85, 2353.20, 2355.00}

	a := NewEMAPair(0.15, 0.075)
	b := NewEMAPair(0.15, 0.075)
	for _, p := range prices {
		fa, sa := a.Update(p)
		fb, sb := b.Update(p)
		assert.Equal(t, fa, fb)
		assert.Equal(t, sa, sb)
	}
}
