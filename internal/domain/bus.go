package domain

import (
	"context"
	"time"
)

// Bus channels published by the engine.
const (
	ChannelTicks    = "ticks"
	ChannelSignals  = "signals"
	ChannelOrders   = "orders"
	ChannelAnalysis = "analysis"
	ChannelStatus   = "status"
)

// SignalBus is the pub/sub transport between the engine and outward-facing
// consumers (WebSocket hub, external dashboards). Implementations must not
// block the publisher indefinitely.
type SignalBus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}

// PriceCache stores the latest observed price per instrument for external
// consumers. It is ephemeral; nothing is restored from it on start.
type PriceCache interface {
	SetPrice(ctx context.Context, symbol string, price float64, ts time.Time) error
	GetPrice(ctx context.Context, symbol string) (float64, time.Time, error)
}

// RateLimiter bounds how often a caller-scoped action may run inside a
// rolling window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
