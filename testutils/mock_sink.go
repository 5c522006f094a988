package testutils

import (
	"context"
	"sync"

	"github.com/evdnx/pricewatch/types"
)

// MockSink records every reading it is handed. Err, when set, is returned
// from Emit after the reading is recorded.
type MockSink struct {
	mu       sync.Mutex
	readings []types.Reading
	Err      error
}

func NewMockSink() *MockSink { return &MockSink{} }

func (m *MockSink) Emit(_ context.Context, r types.Reading) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readings = append(m.readings, r)
	return m.Err
}

// Readings returns a copy of all received readings.
func (m *MockSink) Readings() []types.Reading {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Reading, len(m.readings))
	copy(out, m.readings)
	return out
}
