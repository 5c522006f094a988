package types

import "time"

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Signal is the crossover classification for one sampling interval.
type Signal int

const (
	None Signal = iota
	BuySignal
	SellSignal
)

func (s Signal) String() string {
	switch s {
	case BuySignal:
		return "Buy"
	case SellSignal:
		return "Sell"
	default:
		return "None"
	}
}

// Side maps a directional signal onto a trade side. ok is false for None.
func (s Signal) Side() (Side, bool) {
	switch s {
	case BuySignal:
		return Buy, true
	case SellSignal:
		return Sell, true
	default:
		return "", false
	}
}

// Reading is what the driver hands to a signal sink once per interval.
type Reading struct {
	Price    float64
	Short    float64
	HasShort bool
	Long     float64
	HasLong  bool
	Signal   Signal
	At       time.Time

	// informational only; never affects Signal
	Momentum Momentum
}

// Momentum carries indicator readings observed on the same stream.
type Momentum struct {
	Ready      bool
	RSI        float64
	Overbought bool
	Oversold   bool
	HMABullish bool
	HMABearish bool
}

type Trade struct {
	ID        string
	Timestamp int64 // unix seconds, UTC
	Side      Side
	Price     float64
	Quantity  float64
}
