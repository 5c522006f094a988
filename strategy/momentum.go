package strategy

import (
	"github.com/evdnx/goti"
	"github.com/evdnx/pricewatch/logger"
	"github.com/evdnx/pricewatch/types"
)

// momentumWarmup is the number of samples before crossover flags are read;
// the RSI needs 14 periods.
const momentumWarmup = 15

const (
	rsiOverbought = 70.0
	rsiOversold   = 30.0
)

// Momentum runs a goti indicator suite over the same price stream and
// reports the RSI level and HMA crossover flags alongside each reading.
type Momentum struct {
	suite *goti.IndicatorSuite
	log   logger.Logger
	seen  int
}

// NewMomentum builds a suite with the library's default thresholds.
func NewMomentum(log logger.Logger) (*Momentum, error) {
	suite, err := goti.NewIndicatorSuiteWithConfig(goti.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return &Momentum{suite: suite, log: log}, nil
}

// Update feeds one price (a flat bar with unit volume) and returns the
// current flags. Indicator errors only clear the flags.
func (m *Momentum) Update(price float64) types.Momentum {
	if err := m.suite.Add(price, price, price, 1); err != nil {
		m.log.Warn("momentum_add_error", logger.Float64("price", price), logger.Err(err))
		return types.Momentum{}
	}
	m.seen++
	if m.seen < momentumWarmup {
		return types.Momentum{}
	}

	out := types.Momentum{Ready: true}
	if rsi, err := m.suite.GetRSI().Calculate(); err == nil {
		out.RSI = rsi
		out.Overbought = rsi >= rsiOverbought
		out.Oversold = rsi <= rsiOversold
	}
	if ok, err := m.suite.GetHMA().IsBullishCrossover(); err == nil {
		out.HMABullish = ok
	}
	if ok, err := m.suite.GetHMA().IsBearishCrossover(); err == nil {
		out.HMABearish = ok
	}
	return out
}
