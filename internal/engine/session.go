package engine

import (
	"math/rand"
	"time"

	"github.com/profxlabs/fxterm/internal/config"
	"github.com/profxlabs/fxterm/internal/domain"
	"github.com/profxlabs/fxterm/internal/market"
)

// Spacing between seeded history points. Seeding backfills the chart as if
// the series had been running for this long already.
const seedSpacing = time.Minute

// session is the per-instrument simulation state: price process, indicator
// state, history window, and the zone layout built at session start. A new
// session replaces the old one wholesale on instrument switch; the order
// book lives outside it. Access is serialized by the engine mutex.
type session struct {
	inst     domain.Instrument
	walk     *market.Walk
	emas     *market.EMAPair
	history  *market.History
	zones    *market.Registry
	baseline float64 // first seeded price, reference for the 24h change
	started  time.Time
}

// newSession seeds the history backwards from now, then freezes the zone
// layout around the post-seed price.
func newSession(inst domain.Instrument, sim config.SimulationConfig, zc config.ZonesConfig, rng *rand.Rand, now time.Time) *session {
	s := &session{
		inst:     inst,
		walk:     market.NewWalk(inst.InitialPrice, inst.Volatility, sim.DriftAmplitude, sim.DriftPeriod, rng),
		emas:     market.NewEMAPair(sim.FastAlpha, sim.SlowAlpha),
		history:  market.NewHistory(sim.HistoryCapacity),
		baseline: inst.InitialPrice,
		started:  now,
	}

	for i := 0; i < sim.SeedPoints; i++ {
		price, volume := s.walk.Next()
		fast, slow := s.emas.Update(price)
		if i == 0 {
			s.baseline = price
		}
		// Errors cannot occur here: timestamps advance by construction.
		_ = s.history.Append(domain.PricePoint{
			Timestamp: now.Add(-time.Duration(sim.SeedPoints-i) * seedSpacing),
			Price:     price,
			FastEMA:   fast,
			SlowEMA:   slow,
			Volume:    volume,
		})
	}

	s.zones = market.BuildZones(s.walk.Price(), market.ZoneParams{
		Offsets:   zc.Offsets,
		Strengths: zc.Strengths,
		BandWidth: zc.BandWidth,
	})
	return s
}

// advance runs one heartbeat: next price, indicator update, detection over
// the would-be history, then the append and zone mitigation. The returned
// point already carries any marker and signal.
func (s *session) advance(now time.Time, lookback int) (domain.PricePoint, market.Detection, error) {
	price, volume := s.walk.Next()
	fast, slow := s.emas.Update(price)

	point := domain.PricePoint{
		Timestamp: now,
		Price:     price,
		FastEMA:   fast,
		SlowEMA:   slow,
		Volume:    volume,
	}

	pts := append(s.history.Points(), point)
	det := market.Detect(pts, s.zones, lookback)
	point.Marker = det.Marker
	point.Signal = det.Signal

	if err := s.history.Append(point); err != nil {
		return domain.PricePoint{}, market.Detection{}, err
	}
	s.zones.Mitigate(price)
	return point, det, nil
}

// price returns the latest price of the series.
func (s *session) price() float64 {
	return s.walk.Price()
}

// trends classifies the series direction per display timeframe.
func (s *session) trends() map[domain.Timeframe]domain.Trend {
	return market.TrendMatrix(s.history.Points())
}

// change returns the percent move of the latest price against the seeded
// baseline.
func (s *session) change() float64 {
	if s.baseline == 0 {
		return 0
	}
	return (s.walk.Price() - s.baseline) / s.baseline * 100
}
