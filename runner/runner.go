// Package runner drives the sampling loop: fetch a price, update the
// crossover, hand the reading to the sink and journal any signal.
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/evdnx/pricewatch/journal"
	"github.com/evdnx/pricewatch/logger"
	"github.com/evdnx/pricewatch/metrics"
	"github.com/evdnx/pricewatch/pricefeed"
	"github.com/evdnx/pricewatch/sink"
	"github.com/evdnx/pricewatch/strategy"
	"github.com/evdnx/pricewatch/types"
)

// ErrInvalidInterval is returned by New for a non-positive sampling interval.
var ErrInvalidInterval = errors.New("runner: interval must be positive")

// Runner owns the crossover state; it is driven from a single goroutine.
type Runner struct {
	interval time.Duration
	source   pricefeed.Source
	cross    *strategy.SMACross
	sink     sink.Sink
	journal  *journal.Journal
	log      logger.Logger
}

// New wires a runner. sink and journal may be nil.
func New(interval time.Duration, source pricefeed.Source, cross *strategy.SMACross,
	out sink.Sink, j *journal.Journal, log logger.Logger) (*Runner, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return &Runner{
		interval: interval,
		source:   source,
		cross:    cross,
		sink:     out,
		journal:  j,
		log:      log,
	}, nil
}

// Run samples once immediately and then on every tick until ctx is done.
// It only returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	short, long := r.cross.Windows()
	r.log.Info("runner_started",
		logger.Dur("interval", r.interval),
		logger.Int("short_window", short),
		logger.Int("long_window", long),
	)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			r.log.Info("runner_stopped", logger.Err(ctx.Err()))
			return ctx.Err()
		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}

// Tick performs one sampling iteration. A failed fetch is logged and the
// iteration abandoned; nothing here is fatal.
func (r *Runner) Tick(ctx context.Context) (types.Reading, bool) {
	price, err := r.source.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return types.Reading{}, false
		}
		metrics.FetchTotal.WithLabelValues("error").Inc()
		r.log.Error("fetch_price_failed", logger.Err(err))
		return types.Reading{}, false
	}
	metrics.FetchTotal.WithLabelValues("ok").Inc()
	metrics.LastPrice.Set(price)

	reading := r.cross.Observe(price)
	r.observe(reading)

	if r.sink != nil {
		if err := r.sink.Emit(ctx, reading); err != nil {
			metrics.SinkErrors.Inc()
			r.log.Warn("sink_emit_failed", logger.Err(err))
		}
	}

	if side, ok := reading.Signal.Side(); ok && r.journal != nil {
		t := r.journal.Record(side, price, reading.At)
		metrics.TradesRecorded.Inc()
		r.log.Info("trade_recorded",
			logger.String("id", t.ID),
			logger.String("side", string(t.Side)),
			logger.Float64("price", t.Price),
			logger.Float64("qty", t.Quantity),
			logger.Int64("ts", t.Timestamp),
		)
	}
	return reading, true
}

func (r *Runner) observe(reading types.Reading) {
	if reading.HasShort {
		metrics.MovingAverage.WithLabelValues("short").Set(reading.Short)
	}
	if reading.HasLong {
		metrics.MovingAverage.WithLabelValues("long").Set(reading.Long)
	}
	metrics.SignalsTotal.WithLabelValues(reading.Signal.String()).Inc()

	fields := []logger.Field{
		logger.Float64("price", reading.Price),
		logger.Float64("short_sma", reading.Short),
		logger.Float64("long_sma", reading.Long),
		logger.String("signal", reading.Signal.String()),
	}
	if m := reading.Momentum; m.Ready {
		fields = append(fields,
			logger.Float64("rsi", m.RSI),
			logger.Bool("overbought", m.Overbought),
			logger.Bool("oversold", m.Oversold),
			logger.Bool("hma_bullish", m.HMABullish),
			logger.Bool("hma_bearish", m.HMABearish),
		)
	}
	r.log.Info("price_sampled", fields...)
}
