// Package config holds the runtime settings for the price watcher and the
// validation that runs before any sampling starts.
package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
)

// Config is the root configuration. Fields are populated from Defaults, an
// optional TOML file and finally PRICEWATCH_* environment variables.
type Config struct {
	Feed     FeedConfig     `toml:"feed"`
	Strategy StrategyConfig `toml:"strategy"`
	Redis    RedisConfig    `toml:"redis"`

	Interval    duration `toml:"interval"`     // sampling cadence, default 60s
	MetricsAddr string   `toml:"metrics_addr"` // empty = no /metrics listener
	LogLevel    string   `toml:"log_level"`
	Console     bool     `toml:"console"` // print the human-readable lines
}

// FeedConfig points at the simple-price endpoint.
type FeedConfig struct {
	BaseURL    string   `toml:"base_url"`
	CoinID     string   `toml:"coin_id"`
	VsCurrency string   `toml:"vs_currency"`
	Timeout    duration `toml:"timeout"`
}

// StrategyConfig holds the two window lengths and the notional recorded
// per trade.
type StrategyConfig struct {
	ShortWindow int     `toml:"short_window"` // default 5
	LongWindow  int     `toml:"long_window"`  // default 20
	Quantity    float64 `toml:"quantity"`     // default 1.0
	Momentum    bool    `toml:"momentum"`     // attach RSI/HMA readings
}

// RedisConfig enables the pub/sub sink when Addr is set.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"`
}

// Enabled reports whether readings should be published to Redis.
func (r RedisConfig) Enabled() bool { return strings.TrimSpace(r.Addr) != "" }

// duration lets the TOML decoder read strings such as "60s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults watches bitcoin in USD on CoinGecko with 5/20 windows and one
// sample a minute.
func Defaults() Config {
	return Config{
		Feed: FeedConfig{
			BaseURL:    "https://api.coingecko.com",
			CoinID:     "bitcoin",
			VsCurrency: "usd",
			Timeout:    duration{10 * time.Second},
		},
		Strategy: StrategyConfig{
			ShortWindow: 5,
			LongWindow:  20,
			Quantity:    1.0,
		},
		Redis: RedisConfig{
			Channel: "pricewatch:readings",
		},
		Interval: duration{60 * time.Second},
		LogLevel: "info",
		Console:  true,
	}
}

// SampleInterval returns the configured cadence.
func (c *Config) SampleInterval() time.Duration { return c.Interval.Duration }

// FetchTimeout returns the per-request HTTP timeout.
func (c *Config) FetchTimeout() time.Duration { return c.Feed.Timeout.Duration }

// Validate checks that all fields are within sensible bounds. It returns
// the first encountered error, so a configuration problem surfaces before
// any sampling starts.
func (c *Config) Validate() error {
	if c.Strategy.ShortWindow <= 0 {
		return errors.New("ShortWindow must be positive")
	}
	if c.Strategy.LongWindow <= 0 {
		return errors.New("LongWindow must be positive")
	}
	if c.Strategy.ShortWindow >= c.Strategy.LongWindow {
		return fmt.Errorf("ShortWindow (%d) must be smaller than LongWindow (%d)",
			c.Strategy.ShortWindow, c.Strategy.LongWindow)
	}
	if !(c.Strategy.Quantity > 0) || math.IsInf(c.Strategy.Quantity, 0) {
		return fmt.Errorf("Quantity (%f) must be a positive finite number", c.Strategy.Quantity)
	}
	if c.Interval.Duration <= 0 {
		return errors.New("Interval must be positive")
	}
	if c.Feed.Timeout.Duration <= 0 {
		return errors.New("Feed.Timeout must be positive")
	}
	u, err := url.Parse(c.Feed.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("Feed.BaseURL %q is not an absolute URL", c.Feed.BaseURL)
	}
	if strings.TrimSpace(c.Feed.CoinID) == "" {
		return errors.New("Feed.CoinID cannot be empty")
	}
	if strings.TrimSpace(c.Feed.VsCurrency) == "" {
		return errors.New("Feed.VsCurrency cannot be empty")
	}
	if c.Redis.Enabled() && strings.TrimSpace(c.Redis.Channel) == "" {
		return errors.New("Redis.Channel cannot be empty when Redis.Addr is set")
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c *Config) Redacted() Config {
	out := *c
	if out.Redis.Password != "" {
		out.Redis.Password = "***"
	}
	return out
}
