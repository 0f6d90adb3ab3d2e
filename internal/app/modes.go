package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/profxlabs/fxterm/internal/engine"
	"github.com/profxlabs/fxterm/internal/server"
	"github.com/profxlabs/fxterm/internal/server/handler"
	"github.com/profxlabs/fxterm/internal/server/ws"
)

// shutdownGrace bounds how long the HTTP server may drain on shutdown.
const shutdownGrace = 10 * time.Second

// FullMode runs the simulation engine together with the HTTP + WebSocket API
// and notifications.
func (a *App) FullMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting full mode")

	eng, err := a.newEngine(deps)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return eng.Run(ctx)
	})

	if a.cfg.Server.Enabled {
		hub := ws.NewHub(deps.SignalBus, a.logger)
		g.Go(func() error {
			// The hub returns ctx.Err() on shutdown; treat that as clean.
			if err := hub.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		})

		srv := server.NewServer(server.Config{
			Port:            a.cfg.Server.Port,
			CORSOrigins:     a.cfg.Server.CORSOrigins,
			APIKey:          a.cfg.Server.APIKey,
			AnalysisRate:    a.cfg.Analysis.RatePerMinute,
			AnalysisLimiter: deps.RateLimiter,
		}, server.Handlers{
			Health:      handler.NewHealthHandler(),
			Status:      handler.NewStatusHandler(eng, a.cfg.Mode),
			Instruments: handler.NewInstrumentHandler(eng),
			Orders:      handler.NewOrderHandler(eng),
			Analysis:    handler.NewAnalysisHandler(eng),
			Sessions:    handler.NewSessionHandler(a.cfg.SessionWindows()),
		}, hub, a.logger)

		g.Go(func() error {
			return srv.Start()
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

// EngineMode runs the simulation headless: ticks, signals, and order events
// still flow to Redis and the notifier, but no HTTP surface is exposed.
func (a *App) EngineMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting engine mode")

	eng, err := a.newEngine(deps)
	if err != nil {
		return err
	}
	return eng.Run(ctx)
}

func (a *App) newEngine(deps *Dependencies) (*engine.Engine, error) {
	return engine.New(a.cfg, a.logger, engine.Options{
		Bus:      deps.SignalBus,
		Prices:   deps.PriceCache,
		Notifier: deps.Notifier,
		Analyzer: deps.Analyzer,
	})
}
