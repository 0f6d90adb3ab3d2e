package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies FXTERM_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known FXTERM_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Simulation ──
	setDuration(&cfg.Simulation.TickInterval, "FXTERM_SIMULATION_TICK_INTERVAL")
	setInt(&cfg.Simulation.HistoryCapacity, "FXTERM_SIMULATION_HISTORY_CAPACITY")
	setInt(&cfg.Simulation.SeedPoints, "FXTERM_SIMULATION_SEED_POINTS")
	setFloat64(&cfg.Simulation.FastAlpha, "FXTERM_SIMULATION_FAST_ALPHA")
	setFloat64(&cfg.Simulation.SlowAlpha, "FXTERM_SIMULATION_SLOW_ALPHA")
	setInt(&cfg.Simulation.Lookback, "FXTERM_SIMULATION_LOOKBACK")
	setInt64(&cfg.Simulation.Seed, "FXTERM_SIMULATION_SEED")

	// ── Risk ──
	setFloat64(&cfg.Risk.StartingBalance, "FXTERM_RISK_STARTING_BALANCE")
	setFloat64(&cfg.Risk.DefaultRiskPercent, "FXTERM_RISK_DEFAULT_RISK_PERCENT")
	setFloat64(&cfg.Risk.MinSize, "FXTERM_RISK_MIN_SIZE")
	setFloat64(&cfg.Risk.MaxSize, "FXTERM_RISK_MAX_SIZE")

	// ── Analysis ──
	setStr(&cfg.Analysis.Endpoint, "FXTERM_ANALYSIS_ENDPOINT")
	setStr(&cfg.Analysis.APIKey, "FXTERM_ANALYSIS_API_KEY")
	setDuration(&cfg.Analysis.Timeout, "FXTERM_ANALYSIS_TIMEOUT")
	setInt(&cfg.Analysis.RatePerMinute, "FXTERM_ANALYSIS_RATE_PER_MINUTE")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "FXTERM_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "FXTERM_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "FXTERM_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "FXTERM_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "FXTERM_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "FXTERM_REDIS_TLS_ENABLED")

	// ── Server ──
	setBool(&cfg.Server.Enabled, "FXTERM_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "FXTERM_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "FXTERM_SERVER_CORS_ORIGINS")
	setStr(&cfg.Server.APIKey, "FXTERM_SERVER_API_KEY")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "FXTERM_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "FXTERM_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "FXTERM_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "FXTERM_NOTIFY_EVENTS")

	// ── Top-level ──
	setStr(&cfg.Mode, "FXTERM_MODE")
	setStr(&cfg.LogLevel, "FXTERM_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
