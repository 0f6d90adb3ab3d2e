package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestDefaultsWatchlist(t *testing.T) {
	cfg := Defaults()

	inst, ok := cfg.Instrument("EURUSD=X")
	require.True(t, ok)
	assert.Equal(t, "EUR/USD", inst.Name)
	assert.Equal(t, 1.0854, inst.InitialPrice)
	assert.Equal(t, 100000.0, inst.ContractSize)

	gold, ok := cfg.Instrument("GC=F")
	require.True(t, ok)
	assert.Equal(t, 100.0, gold.ContractSize)

	_, ok = cfg.Instrument("UNKNOWN")
	assert.False(t, ok)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "hybrid"
	cfg.Simulation.TickInterval.Duration = time.Millisecond
	cfg.Simulation.FastAlpha = 0.05 // below slow alpha
	cfg.Risk.StartingBalance = -1
	cfg.Zones.BandWidth = 0.5

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "unknown mode")
	assert.Contains(t, msg, "tick_interval")
	assert.Contains(t, msg, "fast_alpha must exceed slow_alpha")
	assert.Contains(t, msg, "starting_balance")
	assert.Contains(t, msg, "band_width")
}

func TestValidateRejectsDuplicateSymbols(t *testing.T) {
	cfg := Defaults()
	cfg.Instruments = append(cfg.Instruments, cfg.Instruments[0])

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate symbol")
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
mode = "engine"
log_level = "debug"

[simulation]
tick_interval = "1500ms"
seed = 42
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "engine", cfg.Mode)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1500*time.Millisecond, cfg.Simulation.TickInterval.Duration)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)

	// Untouched sections keep their defaults.
	assert.Equal(t, 180, cfg.Simulation.HistoryCapacity)
	assert.Len(t, cfg.Instruments, 5)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("mode = \"full\"\n"), 0o644))

	t.Setenv("FXTERM_MODE", "engine")
	t.Setenv("FXTERM_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("FXTERM_SIMULATION_TICK_INTERVAL", "3s")
	t.Setenv("FXTERM_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("FXTERM_RISK_DEFAULT_RISK_PERCENT", "2.5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "engine", cfg.Mode)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, 3*time.Second, cfg.Simulation.TickInterval.Duration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 2.5, cfg.Risk.DefaultRiskPercent)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
