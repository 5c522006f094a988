// Command pricewatch polls a spot price once per interval and reports a
// Buy/Sell signal whenever the short moving average sits above/below the
// long one.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/evdnx/pricewatch/config"
	"github.com/evdnx/pricewatch/journal"
	"github.com/evdnx/pricewatch/logger"
	"github.com/evdnx/pricewatch/metrics"
	"github.com/evdnx/pricewatch/pricefeed"
	"github.com/evdnx/pricewatch/runner"
	"github.com/evdnx/pricewatch/sink"
	"github.com/evdnx/pricewatch/strategy"
	"github.com/evdnx/pricewatch/types"
)

func main() {
	configPath := flag.String("config", "", "path to an optional TOML configuration file")
	flag.Parse()

	if err := run(*configPath, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, stdout io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.NewZapLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	if cfg.Console {
		fmt.Fprintln(stdout, "Starting Crypto Trade Simulator...")
	}
	redacted := cfg.Redacted()
	log.Info("pricewatch_starting",
		logger.String("coin", redacted.Feed.CoinID),
		logger.String("vs_currency", redacted.Feed.VsCurrency),
		logger.Dur("interval", redacted.SampleInterval()),
		logger.Bool("redis", redacted.Redis.Enabled()),
		logger.String("metrics_addr", redacted.MetricsAddr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cross, err := strategy.NewSMACross(cfg.Strategy.ShortWindow, cfg.Strategy.LongWindow, log)
	if err != nil {
		return err
	}
	if cfg.Strategy.Momentum {
		m, err := strategy.NewMomentum(log)
		if err != nil {
			return fmt.Errorf("momentum indicators: %w", err)
		}
		cross.WithMomentum(m)
	}

	var sinks sink.Multi
	if cfg.Console {
		sinks = append(sinks, sink.NewConsole(stdout))
	}
	if cfg.Redis.Enabled() {
		rdb, err := sink.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		sinks = append(sinks, sink.NewRedis(rdb, cfg.Redis.Channel))
	}

	source := pricefeed.NewCoinGecko(cfg.Feed.BaseURL, cfg.Feed.CoinID, cfg.Feed.VsCurrency, cfg.FetchTimeout(), nil)
	trades := journal.New(cfg.Strategy.Quantity)
	r, err := runner.New(cfg.SampleInterval(), source, cross, sinks, trades, log)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.Run(gctx)
	})
	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metricsMux(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	log.Info("pricewatch_stopped",
		logger.Int("trades", trades.Len()),
		logger.Int("buys", trades.Count(types.Buy)),
		logger.Int("sells", trades.Count(types.Sell)),
	)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func metricsMux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	return mux
}
