// Package market implements the simulated price series and the structural
// analysis that runs over it: the random-walk price process, incremental
// EMA indicators, the bounded history buffer, static supply/demand zones,
// and the change-of-character signal detector.
package market

import (
	"math"
	"math/rand"
)

// Walk is the stateful price process for one instrument session. Each call to
// Next produces the previous price plus a uniformly distributed perturbation
// scaled by the instrument volatility, plus a slow sinusoidal drift term that
// emulates short-lived trends. Volume is an independent bounded draw.
//
// The randomness source is injected so fixed seeds reproduce exact sequences.
type Walk struct {
	rng         *rand.Rand
	price       float64
	volatility  float64
	driftAmp    float64
	driftPeriod int
	tick        int
}

// Volume draw bounds per tick.
const (
	volumeFloor = 500
	volumeSpan  = 9000
)

// NewWalk creates a Walk starting at initial with the given per-tick
// volatility fraction and drift parameters.
func NewWalk(initial, volatility, driftAmp float64, driftPeriod int, rng *rand.Rand) *Walk {
	return &Walk{
		rng:         rng,
		price:       initial,
		volatility:  volatility,
		driftAmp:    driftAmp,
		driftPeriod: driftPeriod,
	}
}

// Price returns the most recently produced price.
func (w *Walk) Price() float64 {
	return w.price
}

// Next advances the walk one tick and returns the new price and volume.
func (w *Walk) Next() (price float64, volume int64) {
	w.tick++

	perturb := (w.rng.Float64()*2 - 1) * w.price * w.volatility
	drift := w.price * w.driftAmp * math.Sin(2*math.Pi*float64(w.tick)/float64(w.driftPeriod))

	w.price = w.price + perturb + drift
	volume = volumeFloor + w.rng.Int63n(volumeSpan)
	return w.price, volume
}
