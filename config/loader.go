package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load starts from Defaults, decodes the TOML file at path on top (an empty
// path skips the file), then applies PRICEWATCH_* overrides. The result is
// not validated; call Validate afterwards.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// .env is optional
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Feed.BaseURL, "PRICEWATCH_FEED_BASE_URL")
	setStr(&cfg.Feed.CoinID, "PRICEWATCH_FEED_COIN_ID")
	setStr(&cfg.Feed.VsCurrency, "PRICEWATCH_FEED_VS_CURRENCY")
	setDuration(&cfg.Feed.Timeout, "PRICEWATCH_FEED_TIMEOUT")

	setInt(&cfg.Strategy.ShortWindow, "PRICEWATCH_SHORT_WINDOW")
	setInt(&cfg.Strategy.LongWindow, "PRICEWATCH_LONG_WINDOW")
	setFloat64(&cfg.Strategy.Quantity, "PRICEWATCH_QUANTITY")
	setBool(&cfg.Strategy.Momentum, "PRICEWATCH_MOMENTUM")

	setStr(&cfg.Redis.Addr, "PRICEWATCH_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "PRICEWATCH_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "PRICEWATCH_REDIS_DB")
	setStr(&cfg.Redis.Channel, "PRICEWATCH_REDIS_CHANNEL")

	setDuration(&cfg.Interval, "PRICEWATCH_INTERVAL")
	setStr(&cfg.MetricsAddr, "PRICEWATCH_METRICS_ADDR")
	setStr(&cfg.LogLevel, "PRICEWATCH_LOG_LEVEL")
	setBool(&cfg.Console, "PRICEWATCH_CONSOLE")
}

// Each setter only mutates the target when the variable is present and
// parses cleanly.

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
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
