// Package engine orchestrates the simulation: it owns the per-instrument
// session, the shared order book and balance, the rolling activity feed, and
// the heartbeat loop that drives one atomic state transition per tick.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/profxlabs/fxterm/internal/analysis"
	"github.com/profxlabs/fxterm/internal/book"
	"github.com/profxlabs/fxterm/internal/config"
	"github.com/profxlabs/fxterm/internal/domain"
)

// Activity feed depth.
const logCapacity = 10

// Notification event names.
const (
	eventSignal      = "signal"
	eventOrderOpened = "order_opened"
	eventOrderClosed = "order_closed"
	eventAnalysis    = "analysis"
)

// Notifier receives operator-facing alerts. notify.Notifier satisfies it.
type Notifier interface {
	Notify(ctx context.Context, event, title, message string) error
}

// Options carries the optional collaborators. Any field may be nil (Analyzer
// defaults to the offline static analyzer, Clock to time.Now, Rand to a
// seeded or time-based source per configuration).
type Options struct {
	Bus      domain.SignalBus
	Prices   domain.PriceCache
	Notifier Notifier
	Analyzer analysis.Analyzer
	Clock    func() time.Time
	Rand     *rand.Rand
}

// Engine is the simulation orchestrator. All mutable state is guarded by one
// mutex so every tick is a single atomic transition; no reader observes a
// partially updated point.
type Engine struct {
	cfg      *config.Config
	logger   *slog.Logger
	analyzer analysis.Analyzer
	bus      domain.SignalBus
	prices   domain.PriceCache
	notifier Notifier
	clock    func() time.Time

	mu           sync.Mutex
	sess         *session
	book         *book.OrderBook
	rng          *rand.Rand
	balance      float64
	logs         *logRing
	lastAnalysis *domain.AnalysisResult
	analysisBusy bool
	lastTick     time.Time
	running      bool
}

// New creates an Engine with the first configured instrument selected and
// its history pre-seeded.
func New(cfg *config.Config, logger *slog.Logger, opts Options) (*Engine, error) {
	if len(cfg.Instruments) == 0 {
		return nil, fmt.Errorf("engine: no instruments configured")
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		seed := cfg.Simulation.Seed
		if seed == 0 {
			seed = clock().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	analyzer := opts.Analyzer
	if analyzer == nil {
		analyzer = analysis.NewStatic()
	}

	e := &Engine{
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "engine")),
		analyzer: analyzer,
		bus:      opts.Bus,
		prices:   opts.Prices,
		notifier: opts.Notifier,
		clock:    clock,
		book:     book.NewOrderBook(),
		rng:      rng,
		balance:  cfg.Risk.StartingBalance,
		logs:     newLogRing(logCapacity),
	}

	inst, _ := cfg.Instrument(cfg.Instruments[0].Symbol)
	e.sess = newSession(inst, cfg.Simulation, cfg.Zones, e.rng, clock())
	e.logs.add(clock(), fmt.Sprintf("Session started on %s", inst.Name))
	return e, nil
}

// Run drives the heartbeat until ctx is cancelled. Only one Run may be
// active at a time.
func (e *Engine) Run(ctx context.Context) error {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	interval := e.cfg.Simulation.TickInterval.Duration
	e.logger.InfoContext(ctx, "heartbeat starting",
		slog.Duration("interval", interval),
		slog.String("instrument", e.Instrument().Symbol),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.InfoContext(ctx, "heartbeat stopped")
			return nil
		case <-ticker.C:
			e.Tick(ctx)
		}
	}
}

// Tick performs one heartbeat: advance the series, reprice the book, settle
// closures into the balance, and publish the results. Exposed so tests and
// alternative drivers can step the simulation without the ticker.
func (e *Engine) Tick(ctx context.Context) {
	e.mu.Lock()

	now := e.clock()
	point, _, err := e.sess.advance(now, e.cfg.Simulation.Lookback)
	if err != nil {
		e.mu.Unlock()
		e.logger.WarnContext(ctx, "tick skipped", slog.String("error", err.Error()))
		return
	}
	e.lastTick = now
	symbol := e.sess.inst.Symbol

	closed := e.book.RepriceAll(point.Price, now)
	for _, o := range closed {
		e.balance += o.PnL
		e.logs.add(now, fmt.Sprintf("%s %s closed (%s) PnL %+.2f",
			o.Side, o.Instrument, o.CloseReason, o.PnL))
	}
	if point.Signal != "" {
		e.logs.add(now, fmt.Sprintf("%s signal on %s @ %s",
			point.Signal, symbol, e.sess.inst.FormatPrice(point.Price)))
	}

	status := e.statusLocked()
	e.mu.Unlock()

	if e.prices != nil {
		if err := e.prices.SetPrice(ctx, symbol, point.Price, now); err != nil {
			e.logger.WarnContext(ctx, "price cache update failed", slog.String("error", err.Error()))
		}
	}

	e.publish(ctx, domain.ChannelTicks, tickEvent{Symbol: symbol, Point: point})
	if point.Signal != "" {
		e.publish(ctx, domain.ChannelSignals, signalEvent{
			Symbol:    symbol,
			Side:      point.Signal,
			Price:     point.Price,
			Timestamp: point.Timestamp,
		})
		e.notify(ctx, eventSignal, "Signal",
			fmt.Sprintf("%s reversal on %s at %s", point.Signal, symbol, e.sess.inst.FormatPrice(point.Price)))
	}
	for _, o := range closed {
		e.publish(ctx, domain.ChannelOrders, orderEvent{Type: "closed", Order: o, Balance: status.Balance})
		e.notify(ctx, eventOrderClosed, "Order closed",
			fmt.Sprintf("%s %s %s PnL %+.2f", o.Side, o.Instrument, o.CloseReason, o.PnL))
	}
	e.publish(ctx, domain.ChannelStatus, status)
}

// SelectInstrument tears down the current session and starts a fresh one for
// symbol. The order book and balance carry over unchanged.
func (e *Engine) SelectInstrument(symbol string) error {
	inst, ok := e.cfg.Instrument(symbol)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownInstrument, symbol)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	e.sess = newSession(inst, e.cfg.Simulation, e.cfg.Zones, e.rng, now)
	e.logs.add(now, fmt.Sprintf("Switched to %s", inst.Name))
	e.logger.Info("instrument selected", slog.String("symbol", symbol))
	return nil
}

// ExecuteTrade opens an order at the current price with zone-derived stops
// and a risk-budget size. riskPercent 0 selects the configured default.
func (e *Engine) ExecuteTrade(ctx context.Context, side domain.SignalSide, riskPercent float64) (domain.Order, error) {
	if side != domain.SideBuy && side != domain.SideSell {
		return domain.Order{}, fmt.Errorf("%w: %q", domain.ErrInvalidSide, side)
	}
	if riskPercent == 0 {
		riskPercent = e.cfg.Risk.DefaultRiskPercent
	}
	if riskPercent < 0 || riskPercent > 100 {
		return domain.Order{}, domain.ErrInvalidRisk
	}

	e.mu.Lock()
	last, ok := e.sess.history.Last()
	if !ok {
		e.mu.Unlock()
		return domain.Order{}, domain.ErrNoPrice
	}
	entry := last.Price
	inst := e.sess.inst

	stopLoss, takeProfit := book.PlaceStops(side, entry, e.sess.zones, book.StopParams{
		FallbackStopPct:   e.cfg.Risk.FallbackStopPct,
		FallbackTargetPct: e.cfg.Risk.FallbackTargetPct,
	})
	size, err := book.ComputeSize(e.balance, riskPercent, math.Abs(entry-stopLoss), inst.ContractSize, book.SizeParams{
		MinSize: e.cfg.Risk.MinSize,
		MaxSize: e.cfg.Risk.MaxSize,
	})
	if err != nil {
		e.mu.Unlock()
		return domain.Order{}, err
	}

	now := e.clock()
	order := e.book.Open(domain.Order{
		Instrument:   inst.Symbol,
		Side:         side,
		EntryPrice:   entry,
		StopLoss:     stopLoss,
		TakeProfit:   takeProfit,
		Size:         size,
		ContractSize: inst.ContractSize,
	}, now)
	e.logs.add(now, fmt.Sprintf("%s %s %.2f @ %s", side, inst.Symbol, size, inst.FormatPrice(entry)))
	balance := e.balance
	e.mu.Unlock()

	e.logger.InfoContext(ctx, "order opened",
		slog.String("id", order.ID),
		slog.String("side", string(side)),
		slog.Float64("entry", entry),
		slog.Float64("size", size),
	)
	e.publish(ctx, domain.ChannelOrders, orderEvent{Type: "opened", Order: order, Balance: balance})
	e.notify(ctx, eventOrderOpened, "Order opened",
		fmt.Sprintf("%s %s %.2f @ %s", side, inst.Symbol, size, inst.FormatPrice(entry)))
	return order, nil
}

// CloseOrder manually closes one order at the current price.
func (e *Engine) CloseOrder(ctx context.Context, id string) (domain.Order, error) {
	e.mu.Lock()
	now := e.clock()
	order, closedNow, err := e.book.Close(id, e.sess.price(), now)
	if err != nil {
		e.mu.Unlock()
		return domain.Order{}, err
	}
	var balance float64
	if closedNow {
		e.balance += order.PnL
		e.logs.add(now, fmt.Sprintf("%s %s closed (MANUAL) PnL %+.2f", order.Side, order.Instrument, order.PnL))
	}
	balance = e.balance
	e.mu.Unlock()

	if closedNow {
		e.publish(ctx, domain.ChannelOrders, orderEvent{Type: "closed", Order: order, Balance: balance})
		e.notify(ctx, eventOrderClosed, "Order closed",
			fmt.Sprintf("%s %s MANUAL PnL %+.2f", order.Side, order.Instrument, order.PnL))
	}
	return order, nil
}

// CloseAllOrders settles every open order at the current price and returns
// how many were closed. Idempotent on an all-closed book.
func (e *Engine) CloseAllOrders(ctx context.Context) (int, error) {
	e.mu.Lock()
	now := e.clock()
	closed := e.book.CloseAll(e.sess.price(), now)
	for _, o := range closed {
		e.balance += o.PnL
	}
	if len(closed) > 0 {
		e.logs.add(now, fmt.Sprintf("Closed %d order(s)", len(closed)))
	}
	balance := e.balance
	e.mu.Unlock()

	for _, o := range closed {
		e.publish(ctx, domain.ChannelOrders, orderEvent{Type: "closed", Order: o, Balance: balance})
	}
	if len(closed) > 0 {
		e.notify(ctx, eventOrderClosed, "Orders closed", fmt.Sprintf("Manually closed %d order(s)", len(closed)))
	}
	return len(closed), nil
}

// RequestAnalysis dispatches the narrative analyzer asynchronously and
// returns a request ID. The call is bounded by the configured timeout;
// failures and timeouts resolve to the neutral fallback so a slow backend can
// never stall the heartbeat. Returns domain.ErrAnalysisPending while a
// previous request is still in flight.
func (e *Engine) RequestAnalysis(ctx context.Context) (string, error) {
	e.mu.Lock()
	if e.analysisBusy {
		e.mu.Unlock()
		return "", domain.ErrAnalysisPending
	}
	last, ok := e.sess.history.Last()
	if !ok {
		e.mu.Unlock()
		return "", domain.ErrNoPrice
	}
	snap := analysis.Snapshot{
		Instrument: e.sess.inst.Name,
		Price:      last.Price,
		FastEMA:    last.FastEMA,
		SlowEMA:    last.SlowEMA,
		Change24h:  e.sess.change(),
		Trends:     e.sess.trends(),
		Zones:      e.sess.zones.Zones(),
		OpenOrders: len(e.book.OpenOrders()),
	}
	e.analysisBusy = true
	e.mu.Unlock()

	go e.runAnalysis(snap)
	return uuid.NewString(), nil
}

// runAnalysis executes one bounded analyzer call. It deliberately uses a
// fresh context: the request outlives the HTTP request that triggered it.
func (e *Engine) runAnalysis(snap analysis.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Analysis.Timeout.Duration)
	defer cancel()

	res, err := e.analyzer.Analyze(ctx, snap)
	if err != nil {
		e.logger.WarnContext(ctx, "analysis failed, using neutral fallback",
			slog.String("backend", e.analyzer.Name()),
			slog.String("error", err.Error()),
		)
		res = domain.NeutralAnalysis(e.clock())
	}

	e.mu.Lock()
	e.lastAnalysis = &res
	e.analysisBusy = false
	e.logs.add(e.clock(), fmt.Sprintf("Analysis: %s (%.1f)", res.Bias, res.Score))
	e.mu.Unlock()

	e.publish(ctx, domain.ChannelAnalysis, res)
	e.notify(ctx, eventAnalysis, "Analysis", fmt.Sprintf("%s bias, score %.1f", res.Bias, res.Score))
}

// Analysis returns the most recent narrative result, or false when none has
// resolved yet.
func (e *Engine) Analysis() (domain.AnalysisResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastAnalysis == nil {
		return domain.AnalysisResult{}, false
	}
	return *e.lastAnalysis, true
}

// Instrument returns the active instrument.
func (e *Engine) Instrument() domain.Instrument {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.inst
}

// Instruments returns the configured watchlist.
func (e *Engine) Instruments() []domain.Instrument {
	out := make([]domain.Instrument, 0, len(e.cfg.Instruments))
	for _, ic := range e.cfg.Instruments {
		inst, _ := e.cfg.Instrument(ic.Symbol)
		out = append(out, inst)
	}
	return out
}

// History returns the active session's point window.
func (e *Engine) History() []domain.PricePoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.history.Points()
}

// Zones returns the active session's zone layout.
func (e *Engine) Zones() []domain.Zone {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.zones.Zones()
}

// Orders returns every order, open and closed.
func (e *Engine) Orders() []domain.Order {
	return e.book.Orders()
}

// OpenOrders returns only the open orders.
func (e *Engine) OpenOrders() []domain.Order {
	return e.book.OpenOrders()
}

// SessionStatus reports whether one liquidity window is currently open.
type SessionStatus struct {
	Name string `json:"name"`
	Open bool   `json:"open"`
}

// Status is the aggregate observable state handed to the API and the
// WebSocket status channel.
type Status struct {
	Symbol      string                            `json:"symbol"`
	Name        string                            `json:"name"`
	Price       float64                           `json:"price"`
	Change24h   float64                           `json:"change_24h"`
	Balance     float64                           `json:"balance"`
	FloatingPnL float64                           `json:"floating_pnl"`
	Equity      float64                           `json:"equity"`
	OpenOrders  int                               `json:"open_orders"`
	Trends      map[domain.Timeframe]domain.Trend `json:"trends"`
	Sessions    []SessionStatus                   `json:"sessions"`
	Analysis    *domain.AnalysisResult            `json:"analysis,omitempty"`
	Logs        []LogEntry                        `json:"logs"`
	LastTick    time.Time                         `json:"last_tick"`
	Running     bool                              `json:"running"`
}

// Status snapshots the observable state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statusLocked()
}

func (e *Engine) statusLocked() Status {
	floating := e.book.FloatingPnL()
	now := e.clock()

	sessions := make([]SessionStatus, 0, len(e.cfg.Sessions))
	for _, w := range e.cfg.SessionWindows() {
		sessions = append(sessions, SessionStatus{Name: w.Name, Open: w.IsOpen(now)})
	}

	return Status{
		Symbol:      e.sess.inst.Symbol,
		Name:        e.sess.inst.Name,
		Price:       e.sess.price(),
		Change24h:   e.sess.change(),
		Balance:     e.balance,
		FloatingPnL: floating,
		Equity:      e.balance + floating,
		OpenOrders:  len(e.book.OpenOrders()),
		Trends:      e.sess.trends(),
		Sessions:    sessions,
		Analysis:    e.lastAnalysis,
		Logs:        e.logs.list(),
		LastTick:    e.lastTick,
		Running:     e.running,
	}
}

// ---------------------------------------------------------------------------
// Bus event shapes
// ---------------------------------------------------------------------------

type tickEvent struct {
	Symbol string            `json:"symbol"`
	Point  domain.PricePoint `json:"point"`
}

type signalEvent struct {
	Symbol    string            `json:"symbol"`
	Side      domain.SignalSide `json:"side"`
	Price     float64           `json:"price"`
	Timestamp time.Time         `json:"timestamp"`
}

type orderEvent struct {
	Type    string       `json:"type"` // opened | closed
	Order   domain.Order `json:"order"`
	Balance float64      `json:"balance"`
}

func (e *Engine) publish(ctx context.Context, channel string, v any) {
	if e.bus == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		e.logger.WarnContext(ctx, "event marshal failed", slog.String("channel", channel), slog.String("error", err.Error()))
		return
	}
	if err := e.bus.Publish(ctx, channel, payload); err != nil {
		e.logger.WarnContext(ctx, "event publish failed", slog.String("channel", channel), slog.String("error", err.Error()))
	}
}

func (e *Engine) notify(ctx context.Context, event, title, message string) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Notify(ctx, event, title, message); err != nil {
		e.logger.WarnContext(ctx, "notification failed", slog.String("event", event), slog.String("error", err.Error()))
	}
}
