package domain

import "time"

// Bias is the qualitative directional read from the analysis collaborator.
type Bias string

const (
	BiasBullish Bias = "BULLISH"
	BiasBearish Bias = "BEARISH"
	BiasNeutral Bias = "NEUTRAL"
)

// AnalysisResult is the narrative market read returned by the analysis
// collaborator (or the neutral fallback when it fails or times out).
type AnalysisResult struct {
	Bias        Bias      `json:"bias"`
	Score       float64   `json:"score"` // in [-10, 10]
	Reasoning   string    `json:"reasoning"`
	Insights    []string  `json:"insights"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NeutralAnalysis returns the fixed fallback used when the analysis
// collaborator errors or times out. It must never fault the simulation.
func NeutralAnalysis(at time.Time) AnalysisResult {
	return AnalysisResult{
		Bias:      BiasNeutral,
		Score:     0,
		Reasoning: "Analysis temporarily unavailable. Maintaining previous bias based on EMA confluence.",
		Insights: []string{
			"Market volatility increasing",
			"Awaiting session liquidity",
			"Order book stabilizing",
		},
		GeneratedAt: at,
	}
}
