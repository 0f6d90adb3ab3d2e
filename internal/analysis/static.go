package analysis

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/profxlabs/fxterm/internal/domain"
)

// Static derives a narrative purely from the snapshot, with no network
// dependency. It is the default backend when no remote endpoint is
// configured, and behaves deterministically for a given snapshot.
type Static struct{}

// NewStatic returns the offline analyzer.
func NewStatic() *Static {
	return &Static{}
}

// Analyze reads bias from the EMA relationship and scores it by the
// separation between the averages relative to price.
func (s *Static) Analyze(_ context.Context, snap Snapshot) (domain.AnalysisResult, error) {
	res := domain.AnalysisResult{
		Bias:        domain.BiasNeutral,
		GeneratedAt: time.Now().UTC(),
	}

	if snap.Price <= 0 {
		res.Reasoning = "Insufficient price data for a directional read."
		return res, nil
	}

	sep := (snap.FastEMA - snap.SlowEMA) / snap.Price
	// Separation of 0.1% of price maps to full conviction on the ±10 scale.
	conf := math.Min(math.Abs(sep)/0.001, 1)
	res.Score = conf * 10
	if sep < 0 {
		res.Score = -res.Score
	}

	switch {
	case sep > 0:
		res.Bias = domain.BiasBullish
		res.Reasoning = fmt.Sprintf(
			"Fast EMA holding above slow EMA on %s with price at %.5g. Momentum favors continuation while the averages stay stacked.",
			snap.Instrument, snap.Price)
		res.Insights = []string{
			"EMA stack supports longs",
			"Demand zones below remain unmitigated",
			"Watch for session liquidity shifts",
		}
	case sep < 0:
		res.Bias = domain.BiasBearish
		res.Reasoning = fmt.Sprintf(
			"Fast EMA trading below slow EMA on %s with price at %.5g. Rallies into supply are likely to be sold.",
			snap.Instrument, snap.Price)
		res.Insights = []string{
			"EMA stack favors shorts",
			"Supply zones overhead remain active",
			"Momentum weak on lower timeframes",
		}
	default:
		res.Reasoning = "EMAs compressed. No directional edge until the averages separate."
		res.Insights = []string{
			"Averages compressed",
			"Awaiting range expansion",
		}
	}
	return res, nil
}

// Name returns the backend identifier.
func (s *Static) Name() string {
	return "static"
}
