package testutils

import (
	"context"
	"errors"
	"sync"
)

// ErrSourceExhausted is returned once a StubSource has no scripted steps left.
var ErrSourceExhausted = errors.New("stub source exhausted")

// SourceStep is one scripted Fetch result.
type SourceStep struct {
	Price float64
	Err   error
}

// StubSource replays a fixed script of prices and failures.
type StubSource struct {
	mu    sync.Mutex
	steps []SourceStep
	calls int
}

// NewStubSource scripts a source that returns prices in order.
func NewStubSource(prices ...float64) *StubSource {
	s := &StubSource{}
	for _, p := range prices {
		s.steps = append(s.steps, SourceStep{Price: p})
	}
	return s
}

// Then appends a step and returns the source for chaining.
func (s *StubSource) Then(step SourceStep) *StubSource {
	s.mu.Lock()
	s.steps = append(s.steps, step)
	s.mu.Unlock()
	return s
}

func (s *StubSource) Fetch(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls >= len(s.steps) {
		s.calls++
		return 0, ErrSourceExhausted
	}
	step := s.steps[s.calls]
	s.calls++
	return step.Price, step.Err
}

// Calls reports how many times Fetch was invoked.
func (s *StubSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
