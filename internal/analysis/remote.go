package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/profxlabs/fxterm/internal/domain"
)

// Remote calls an external narrative-generation endpoint. The endpoint
// receives the snapshot as JSON and must answer with a bias, score,
// reasoning, and institutional insights.
type Remote struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewRemote creates a Remote analyzer for the given endpoint. The HTTP client
// carries its own timeout as a backstop; per-call deadlines come from ctx.
func NewRemote(endpoint, apiKey string, timeout time.Duration) *Remote {
	return &Remote{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// remoteResponse is the wire shape the endpoint answers with.
type remoteResponse struct {
	Bias                  string   `json:"bias"`
	Score                 float64  `json:"score"`
	Reasoning             string   `json:"reasoning"`
	InstitutionalInsights []string `json:"institutionalInsights"`
}

// Analyze posts the snapshot and decodes the narrative result.
func (r *Remote) Analyze(ctx context.Context, snap Snapshot) (domain.AnalysisResult, error) {
	body, err := json.Marshal(snap)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("analysis: marshal snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("analysis: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("analysis: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.AnalysisResult{}, fmt.Errorf("analysis: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var rr remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("analysis: decode response: %w", err)
	}

	return domain.AnalysisResult{
		Bias:        parseBias(rr.Bias),
		Score:       clampScore(rr.Score),
		Reasoning:   rr.Reasoning,
		Insights:    rr.InstitutionalInsights,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// Name returns the backend identifier.
func (r *Remote) Name() string {
	return "remote"
}

func parseBias(s string) domain.Bias {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(domain.BiasBullish):
		return domain.BiasBullish
	case string(domain.BiasBearish):
		return domain.BiasBearish
	default:
		return domain.BiasNeutral
	}
}

func clampScore(n float64) float64 {
	if n < -10 {
		return -10
	}
	if n > 10 {
		return 10
	}
	return n
}
