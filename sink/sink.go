// Package sink delivers per-interval readings to their consumers.
package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/evdnx/pricewatch/types"
)

// Sink receives one reading per sampling interval.
type Sink interface {
	Emit(ctx context.Context, r types.Reading) error
}

// Multi fans a reading out to every sink. A failing sink does not stop
// delivery to the rest; all failures are joined.
type Multi []Sink

func (m Multi) Emit(ctx context.Context, r types.Reading) error {
	var errs []error
	for i, s := range m {
		if err := s.Emit(ctx, r); err != nil {
			errs = append(errs, fmt.Errorf("sink %d (%T): %w", i, s, err))
		}
	}
	return errors.Join(errs...)
}
