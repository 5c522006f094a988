// Package journal keeps the trades produced by crossover signals for the
// lifetime of the process. Nothing is written to disk.
package journal

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evdnx/pricewatch/types"
)

// Journal is an append-only, in-memory trade log.
type Journal struct {
	mu       sync.RWMutex
	quantity float64
	trades   []types.Trade
}

// New creates a journal that stamps every trade with quantity.
func New(quantity float64) *Journal {
	return &Journal{quantity: quantity}
}

// Record appends a trade at price for side, timestamped at ts in whole
// Unix seconds.
func (j *Journal) Record(side types.Side, price float64, ts time.Time) types.Trade {
	t := types.Trade{
		ID:        uuid.NewString(),
		Timestamp: ts.UTC().Unix(),
		Side:      side,
		Price:     price,
		Quantity:  j.quantity,
	}
	j.mu.Lock()
	j.trades = append(j.trades, t)
	j.mu.Unlock()
	return t
}

// Trades returns a copy of all recorded trades (useful for assertions).
func (j *Journal) Trades() []types.Trade {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]types.Trade, len(j.trades))
	copy(out, j.trades)
	return out
}

func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.trades)
}

// Count returns the number of trades on side.
func (j *Journal) Count(side types.Side) int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	n := 0
	for _, t := range j.trades {
		if t.Side == side {
			n++
		}
	}
	return n
}
