// Package window provides a fixed-capacity rolling window of float64
// samples that reports the arithmetic mean of its contents.
package window

import (
	"errors"

	"github.com/edwingeng/deque/v2"
)

// ErrInvalidCapacity is returned by New for a capacity below one.
var ErrInvalidCapacity = errors.New("window: capacity must be positive")

// RollingWindow keeps the most recent Cap() samples in arrival order. Once
// full, every Add evicts the oldest sample. The running sum makes both Add
// and Average O(1) amortized.
//
// A RollingWindow is not safe for concurrent use.
type RollingWindow struct {
	capacity int
	samples  *deque.Deque[float64]
	sum      float64
	evicted  int
}

// New creates an empty window holding at most capacity samples.
func New(capacity int) (*RollingWindow, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &RollingWindow{
		capacity: capacity,
		samples:  deque.NewDeque[float64](),
	}, nil
}

// Add appends v as the newest sample, evicting the oldest one first when
// the window is already full.
func (w *RollingWindow) Add(v float64) {
	if w.samples.Len() == w.capacity {
		w.sum -= w.samples.PopFront()
		w.evicted++
	}
	w.samples.PushBack(v)
	w.sum += v
	if w.evicted == w.capacity {
		// every full turnover, rebuild the sum so rounding error stays bounded
		w.evicted = 0
		w.resum()
	}
}

func (w *RollingWindow) resum() {
	sum := 0.0
	for _, v := range w.samples.Dump() {
		sum += v
	}
	w.sum = sum
}

// Average returns the mean of the current samples. ok is false when the
// window is empty.
func (w *RollingWindow) Average() (avg float64, ok bool) {
	n := w.samples.Len()
	if n == 0 {
		return 0, false
	}
	return w.sum / float64(n), true
}

// Front returns the oldest sample still held.
func (w *RollingWindow) Front() (float64, bool) {
	return w.samples.Front()
}

// Values returns a copy of the samples, oldest first.
func (w *RollingWindow) Values() []float64 {
	return w.samples.Dump()
}

func (w *RollingWindow) Len() int   { return w.samples.Len() }
func (w *RollingWindow) Cap() int   { return w.capacity }
func (w *RollingWindow) Full() bool { return w.samples.Len() == w.capacity }
