package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/profxlabs/fxterm/internal/analysis"
	"github.com/profxlabs/fxterm/internal/cache/redis"
	"github.com/profxlabs/fxterm/internal/config"
	"github.com/profxlabs/fxterm/internal/domain"
	"github.com/profxlabs/fxterm/internal/notify"
)

// Dependencies bundles the engine collaborators built by Wire and torn down
// by the returned cleanup function.
type Dependencies struct {
	SignalBus   domain.SignalBus
	PriceCache  domain.PriceCache
	RateLimiter domain.RateLimiter
	Analyzer    analysis.Analyzer
	Notifier    *notify.Notifier
}

// Wire constructs the concrete dependency implementations from the
// configuration and returns them with a cleanup function for shutdown.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	// --- Redis: event transport, latest-price cache, rate limiting ---
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("wire: redis: %w", err)
	}
	closers = append(closers, func() { _ = redisClient.Close() })

	deps.SignalBus = redis.NewSignalBus(redisClient)
	deps.PriceCache = redis.NewPriceCache(redisClient)
	deps.RateLimiter = redis.NewRateLimiter(redisClient)

	// --- Narrative analysis backend ---
	if cfg.Analysis.Endpoint != "" {
		deps.Analyzer = analysis.NewRemote(cfg.Analysis.Endpoint, cfg.Analysis.APIKey, cfg.Analysis.Timeout.Duration)
	} else {
		deps.Analyzer = analysis.NewStatic()
	}

	// --- Notifications ---
	deps.Notifier = notify.FromConfig(cfg.Notify, logger)

	return deps, cleanup, nil
}
