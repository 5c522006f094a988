package strategy

import (
	"errors"
	"fmt"
	"time"

	"github.com/evdnx/pricewatch/logger"
	"github.com/evdnx/pricewatch/types"
	"github.com/evdnx/pricewatch/window"
)

// ErrWindowOrder is returned when the short window is not shorter than the
// long one.
var ErrWindowOrder = errors.New("strategy: short window must be smaller than long window")

// SMACross feeds every price into a short and a long rolling window and
// classifies the relation of their means.
type SMACross struct {
	short    *window.RollingWindow
	long     *window.RollingWindow
	momentum *Momentum // nil when disabled
	warm     bool
	log      logger.Logger
	now      func() time.Time
}

// NewSMACross builds both windows. Capacity errors from the window package
// are returned wrapped.
func NewSMACross(shortLen, longLen int, log logger.Logger) (*SMACross, error) {
	short, err := window.New(shortLen)
	if err != nil {
		return nil, fmt.Errorf("short window: %w", err)
	}
	long, err := window.New(longLen)
	if err != nil {
		return nil, fmt.Errorf("long window: %w", err)
	}
	if shortLen >= longLen {
		return nil, ErrWindowOrder
	}
	return &SMACross{
		short: short,
		long:  long,
		log:   log,
		now:   time.Now,
	}, nil
}

// WithMomentum attaches an indicator annotator. It never changes the
// classification.
func (s *SMACross) WithMomentum(m *Momentum) *SMACross {
	s.momentum = m
	return s
}

// Observe pushes price into both windows and returns the resulting reading.
func (s *SMACross) Observe(price float64) types.Reading {
	s.short.Add(price)
	s.long.Add(price)
	if !s.warm && s.Warm() {
		s.warm = true
		s.log.Info("crossover_warm",
			logger.Int("short_window", s.short.Cap()),
			logger.Int("long_window", s.long.Cap()),
		)
	}

	shortAvg, okShort := s.short.Average()
	longAvg, okLong := s.long.Average()

	r := types.Reading{
		Price:    price,
		Short:    shortAvg,
		HasShort: okShort,
		Long:     longAvg,
		HasLong:  okLong,
		Signal:   Classify(shortAvg, longAvg, okShort, okLong),
		At:       s.now().UTC(),
	}
	if s.momentum != nil {
		r.Momentum = s.momentum.Update(price)
	}
	return r
}

// Classify is the crossover rule: Buy when short > long, Sell when
// short < long, None on an exact tie or when either mean is absent.
func Classify(short, long float64, okShort, okLong bool) types.Signal {
	if !okShort || !okLong {
		return types.None
	}
	switch {
	case short > long:
		return types.BuySignal
	case short < long:
		return types.SellSignal
	default:
		return types.None
	}
}

// Windows exposes the lengths, mainly for logging.
func (s *SMACross) Windows() (short, long int) {
	return s.short.Cap(), s.long.Cap()
}

// Warm reports whether the long window has filled. Signals before that are
// computed over a partial history.
func (s *SMACross) Warm() bool { return s.long.Full() }
