package sink

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/evdnx/pricewatch/types"
)

// Console prints the human-readable lines operators watch in a terminal:
//
//	Fetched price: $67012.5
//	Short SMA: 67001.2, Long SMA: 66890.4
//	Buy Signal!
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Emit(_ context.Context, r types.Reading) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprintf(c.w, "Fetched price: $%s\n", num(r.Price)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.w, "Short SMA: %s, Long SMA: %s\n", mean(r.Short, r.HasShort), mean(r.Long, r.HasLong)); err != nil {
		return err
	}
	switch r.Signal {
	case types.BuySignal:
		_, err := io.WriteString(c.w, "Buy Signal!\n")
		return err
	case types.SellSignal:
		_, err := io.WriteString(c.w, "Sell Signal!\n")
		return err
	}
	return nil
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func mean(v float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return num(v)
}
