package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Strategy.ShortWindow != 5 || cfg.Strategy.LongWindow != 20 {
		t.Fatalf("unexpected default windows: %+v", cfg.Strategy)
	}
	if cfg.SampleInterval() != 60*time.Second {
		t.Fatalf("expected 60s cadence, got %v", cfg.SampleInterval())
	}
}

func TestValidateFailures(t *testing.T) {
	cases := map[string]func(c *Config){
		"zero short":        func(c *Config) { c.Strategy.ShortWindow = 0 },
		"negative long":     func(c *Config) { c.Strategy.LongWindow = -3 },
		"short not shorter": func(c *Config) { c.Strategy.ShortWindow = 20 },
		"zero quantity":     func(c *Config) { c.Strategy.Quantity = 0 },
		"NaN quantity":      func(c *Config) { c.Strategy.Quantity = math.NaN() },
		"infinite quantity": func(c *Config) { c.Strategy.Quantity = math.Inf(1) },
		"zero interval":     func(c *Config) { c.Interval.Duration = 0 },
		"zero timeout":      func(c *Config) { c.Feed.Timeout.Duration = 0 },
		"relative url":      func(c *Config) { c.Feed.BaseURL = "api.coingecko.com" },
		"empty coin":        func(c *Config) { c.Feed.CoinID = " " },
		"empty currency":    func(c *Config) { c.Feed.VsCurrency = "" },
		"redis no channel": func(c *Config) {
			c.Redis.Addr = "localhost:6379"
			c.Redis.Channel = ""
		},
	}
	for name, mutate := range cases {
		cfg := Defaults()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pricewatch.toml")
	body := `
interval = "15s"
log_level = "debug"

[feed]
coin_id = "ethereum"
timeout = "3s"

[strategy]
short_window = 3
long_window = 9
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PRICEWATCH_FEED_VS_CURRENCY", "eur")
	t.Setenv("PRICEWATCH_LONG_WINDOW", "12")
	t.Setenv("PRICEWATCH_QUANTITY", "not-a-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Feed.CoinID != "ethereum" || cfg.Feed.VsCurrency != "eur" {
		t.Fatalf("unexpected feed config: %+v", cfg.Feed)
	}
	if cfg.Feed.BaseURL != "https://api.coingecko.com" {
		t.Fatalf("defaults should survive a partial file, got %q", cfg.Feed.BaseURL)
	}
	if cfg.Strategy.ShortWindow != 3 || cfg.Strategy.LongWindow != 12 {
		t.Fatalf("unexpected windows: %+v", cfg.Strategy)
	}
	if cfg.Strategy.Quantity != 1.0 {
		t.Fatalf("unparsable override must be ignored, got %v", cfg.Strategy.Quantity)
	}
	if cfg.SampleInterval() != 15*time.Second || cfg.FetchTimeout() != 3*time.Second {
		t.Fatalf("unexpected durations: %v %v", cfg.SampleInterval(), cfg.FetchTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("loaded config should validate: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.Feed.CoinID != "bitcoin" {
		t.Fatalf("expected defaults, got %+v", cfg.Feed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRedacted(t *testing.T) {
	cfg := Defaults()
	cfg.Redis.Password = "hunter2"
	r := cfg.Redacted()
	if r.Redis.Password != "***" {
		t.Fatalf("password not redacted: %q", r.Redis.Password)
	}
	if cfg.Redis.Password != "hunter2" {
		t.Fatal("Redacted must not modify the receiver")
	}
}

func TestLoadRejectsNaNQuantityOnValidate(t *testing.T) {
	t.Setenv("PRICEWATCH_QUANTITY", "NaN")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !math.IsNaN(cfg.Strategy.Quantity) {
		t.Fatalf("expected NaN to be parsed through, got %v", cfg.Strategy.Quantity)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject a NaN quantity")
	}
}
