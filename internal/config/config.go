// Package config defines the top-level configuration for the terminal engine
// and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/profxlabs/fxterm/internal/domain"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by FXTERM_* environment variables.
type Config struct {
	Instruments []InstrumentConfig `toml:"instruments"`
	Sessions    []SessionConfig    `toml:"sessions"`
	Simulation  SimulationConfig   `toml:"simulation"`
	Zones       ZonesConfig        `toml:"zones"`
	Risk        RiskConfig         `toml:"risk"`
	Analysis    AnalysisConfig     `toml:"analysis"`
	Redis       RedisConfig        `toml:"redis"`
	Server      ServerConfig       `toml:"server"`
	Notify      NotifyConfig       `toml:"notify"`
	Mode        string             `toml:"mode"`
	LogLevel    string             `toml:"log_level"`
}

// InstrumentConfig describes one tradable symbol in the watchlist.
type InstrumentConfig struct {
	Symbol       string  `toml:"symbol"`
	Name         string  `toml:"name"`
	InitialPrice float64 `toml:"initial_price"`
	Volatility   float64 `toml:"volatility"`
	ContractSize float64 `toml:"contract_size"`
	Decimals     int     `toml:"decimals"`
}

// SessionConfig is one trading-session liquidity window in UTC hours.
type SessionConfig struct {
	Name      string `toml:"name"`
	StartHour int    `toml:"start_hour"`
	EndHour   int    `toml:"end_hour"`
}

// SimulationConfig holds the heartbeat and series parameters.
type SimulationConfig struct {
	TickInterval    duration `toml:"tick_interval"`
	HistoryCapacity int      `toml:"history_capacity"`
	SeedPoints      int      `toml:"seed_points"`
	FastAlpha       float64  `toml:"fast_alpha"`
	SlowAlpha       float64  `toml:"slow_alpha"`
	Lookback        int      `toml:"lookback"` // detector swing window
	DriftAmplitude  float64  `toml:"drift_amplitude"`
	DriftPeriod     int      `toml:"drift_period"` // ticks per drift cycle
	Seed            int64    `toml:"seed"`         // 0 means time-based
}

// ZonesConfig controls how supply/demand bands are derived from the session
// reference price.
type ZonesConfig struct {
	Offsets   []float64 `toml:"offsets"`   // fractions above/below reference
	Strengths []float64 `toml:"strengths"` // weight per offset, same length
	BandWidth float64   `toml:"band_width"`
}

// RiskConfig holds order sizing and exit placement parameters.
type RiskConfig struct {
	StartingBalance    float64 `toml:"starting_balance"`
	DefaultRiskPercent float64 `toml:"default_risk_percent"`
	MinSize            float64 `toml:"min_size"`
	MaxSize            float64 `toml:"max_size"`
	FallbackStopPct    float64 `toml:"fallback_stop_pct"`
	FallbackTargetPct  float64 `toml:"fallback_target_pct"`
}

// AnalysisConfig holds the narrative-analysis collaborator parameters. When
// Endpoint is empty the engine uses the static analyzer.
type AnalysisConfig struct {
	Endpoint      string   `toml:"endpoint"`
	APIKey        string   `toml:"api_key"`
	Timeout       duration `toml:"timeout"`
	RatePerMinute int      `toml:"rate_per_minute"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Enabled     bool     `toml:"enabled"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
	APIKey      string   `toml:"api_key"` // empty disables auth
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "2s", "1500ms").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings.
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with the reference watchlist and
// simulation parameters. These match the values in config.example.toml.
func Defaults() Config {
	return Config{
		Instruments: []InstrumentConfig{
			{Symbol: "EURUSD=X", Name: "EUR/USD", InitialPrice: 1.0854, Volatility: 0.0004, ContractSize: 100_000, Decimals: 5},
			{Symbol: "GBPUSD=X", Name: "GBP/USD", InitialPrice: 1.2672, Volatility: 0.0004, ContractSize: 100_000, Decimals: 5},
			{Symbol: "USDJPY=X", Name: "USD/JPY", InitialPrice: 151.42, Volatility: 0.0004, ContractSize: 100_000, Decimals: 3},
			{Symbol: "GC=F", Name: "GOLD", InitialPrice: 2345.60, Volatility: 0.0006, ContractSize: 100, Decimals: 2},
			{Symbol: "BTC-USD", Name: "BITCOIN", InitialPrice: 67240.00, Volatility: 0.0010, ContractSize: 1, Decimals: 2},
		},
		Sessions: []SessionConfig{
			{Name: "London", StartHour: 8, EndHour: 16},
			{Name: "New York", StartHour: 13, EndHour: 21},
			{Name: "Sydney", StartHour: 22, EndHour: 6},
			{Name: "Tokyo", StartHour: 0, EndHour: 8},
		},
		Simulation: SimulationConfig{
			TickInterval:    duration{2 * time.Second},
			HistoryCapacity: 180,
			SeedPoints:      120,
			FastAlpha:       0.15,  // ~12-period EMA
			SlowAlpha:       0.075, // ~26-period EMA
			Lookback:        20,
			DriftAmplitude:  0.0002,
			DriftPeriod:     90,
			Seed:            0,
		},
		Zones: ZonesConfig{
			Offsets:   []float64{0.010, 0.025},
			Strengths: []float64{0.85, 0.60},
			BandWidth: 0.002,
		},
		Risk: RiskConfig{
			StartingBalance:    10_000,
			DefaultRiskPercent: 1.0,
			MinSize:            0.01,
			MaxSize:            5.0,
			FallbackStopPct:    0.005,
			FallbackTargetPct:  0.015,
		},
		Analysis: AnalysisConfig{
			Timeout:       duration{8 * time.Second},
			RatePerMinute: 6,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
			TLSEnabled: false,
		},
		Server: ServerConfig{
			Enabled:     true,
			Port:        8000,
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Notify: NotifyConfig{
			Events: []string{"signal", "order_opened", "order_closed"},
		},
		Mode:     "full",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"full":   true,
	"engine": true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Instrument returns the configured instrument for symbol, or false.
func (c *Config) Instrument(symbol string) (domain.Instrument, bool) {
	for _, ic := range c.Instruments {
		if ic.Symbol == symbol {
			return domain.Instrument{
				Symbol:       ic.Symbol,
				Name:         ic.Name,
				InitialPrice: ic.InitialPrice,
				Volatility:   ic.Volatility,
				ContractSize: ic.ContractSize,
				Decimals:     ic.Decimals,
			}, true
		}
	}
	return domain.Instrument{}, false
}

// SessionWindows converts the configured session windows to domain values.
func (c *Config) SessionWindows() []domain.SessionWindow {
	out := make([]domain.SessionWindow, 0, len(c.Sessions))
	for _, s := range c.Sessions {
		out = append(out, domain.SessionWindow{
			Name:      s.Name,
			StartHour: s.StartHour,
			EndHour:   s.EndHour,
		})
	}
	return out
}

// Validate checks Config for obviously invalid or missing values and returns a
// combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: full, engine)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// Instruments
	if len(c.Instruments) == 0 {
		errs = append(errs, "instruments: at least one instrument must be configured")
	}
	seen := make(map[string]bool, len(c.Instruments))
	for i, ins := range c.Instruments {
		if ins.Symbol == "" {
			errs = append(errs, fmt.Sprintf("instruments[%d]: symbol must not be empty", i))
			continue
		}
		if seen[ins.Symbol] {
			errs = append(errs, fmt.Sprintf("instruments[%d]: duplicate symbol %q", i, ins.Symbol))
		}
		seen[ins.Symbol] = true
		if ins.InitialPrice <= 0 {
			errs = append(errs, fmt.Sprintf("instruments[%d] %s: initial_price must be > 0", i, ins.Symbol))
		}
		if ins.Volatility <= 0 || ins.Volatility > 0.01 {
			errs = append(errs, fmt.Sprintf("instruments[%d] %s: volatility must be in (0, 0.01]", i, ins.Symbol))
		}
		if ins.ContractSize <= 0 {
			errs = append(errs, fmt.Sprintf("instruments[%d] %s: contract_size must be > 0", i, ins.Symbol))
		}
	}

	// Sessions
	for i, s := range c.Sessions {
		if s.StartHour < 0 || s.StartHour > 23 || s.EndHour < 0 || s.EndHour > 23 {
			errs = append(errs, fmt.Sprintf("sessions[%d] %s: hours must be 0-23", i, s.Name))
		}
	}

	// Simulation
	if c.Simulation.TickInterval.Duration < 100*time.Millisecond {
		errs = append(errs, "simulation: tick_interval must be >= 100ms")
	}
	if c.Simulation.HistoryCapacity < 50 {
		errs = append(errs, "simulation: history_capacity must be >= 50")
	}
	if c.Simulation.SeedPoints < 0 || c.Simulation.SeedPoints > c.Simulation.HistoryCapacity {
		errs = append(errs, "simulation: seed_points must be in [0, history_capacity]")
	}
	if c.Simulation.FastAlpha <= 0 || c.Simulation.FastAlpha >= 1 {
		errs = append(errs, "simulation: fast_alpha must be in (0, 1)")
	}
	if c.Simulation.SlowAlpha <= 0 || c.Simulation.SlowAlpha >= 1 {
		errs = append(errs, "simulation: slow_alpha must be in (0, 1)")
	}
	if c.Simulation.FastAlpha <= c.Simulation.SlowAlpha {
		errs = append(errs, "simulation: fast_alpha must exceed slow_alpha")
	}
	if c.Simulation.Lookback < 2 {
		errs = append(errs, "simulation: lookback must be >= 2")
	}
	if c.Simulation.DriftPeriod <= 0 {
		errs = append(errs, "simulation: drift_period must be > 0")
	}

	// Zones
	if len(c.Zones.Offsets) == 0 {
		errs = append(errs, "zones: at least one offset must be configured")
	}
	if len(c.Zones.Strengths) != len(c.Zones.Offsets) {
		errs = append(errs, "zones: strengths must have the same length as offsets")
	}
	for i, off := range c.Zones.Offsets {
		if off <= 0 || off >= 0.5 {
			errs = append(errs, fmt.Sprintf("zones: offsets[%d] must be in (0, 0.5)", i))
		}
	}
	for i, s := range c.Zones.Strengths {
		if s < 0 || s > 1 {
			errs = append(errs, fmt.Sprintf("zones: strengths[%d] must be in [0, 1]", i))
		}
	}
	if c.Zones.BandWidth <= 0 || c.Zones.BandWidth >= 0.1 {
		errs = append(errs, "zones: band_width must be in (0, 0.1)")
	}

	// Risk
	if c.Risk.StartingBalance <= 0 {
		errs = append(errs, "risk: starting_balance must be > 0")
	}
	if c.Risk.DefaultRiskPercent <= 0 || c.Risk.DefaultRiskPercent > 100 {
		errs = append(errs, "risk: default_risk_percent must be in (0, 100]")
	}
	if c.Risk.MinSize <= 0 || c.Risk.MaxSize < c.Risk.MinSize {
		errs = append(errs, "risk: require 0 < min_size <= max_size")
	}
	if c.Risk.FallbackStopPct <= 0 || c.Risk.FallbackTargetPct <= 0 {
		errs = append(errs, "risk: fallback_stop_pct and fallback_target_pct must be > 0")
	}

	// Analysis
	if c.Analysis.Timeout.Duration <= 0 {
		errs = append(errs, "analysis: timeout must be > 0")
	}
	if c.Analysis.RatePerMinute < 1 {
		errs = append(errs, "analysis: rate_per_minute must be >= 1")
	}

	// Redis
	if c.Redis.Addr == "" {
		errs = append(errs, "redis: addr must not be empty")
	}
	if c.Redis.PoolSize < 1 {
		errs = append(errs, "redis: pool_size must be >= 1")
	}

	// Server
	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
