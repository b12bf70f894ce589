package clicker

import "sync"

// Click records one synthetic click for inspection in tests.
type Click struct {
	X, Y int
}

// MockSink is a test implementation of the Sink interface that records
// every click instead of driving the mouse.
type MockSink struct {
	clicks []Click
	err    error
	mu     sync.Mutex
}

// NewMockSink creates a new MockSink instance.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// Click records the coordinates, or returns the configured error.
func (s *MockSink) Click(x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.clicks = append(s.clicks, Click{X: x, Y: y})
	return nil
}

// SetError makes subsequent Click calls fail with err. Pass nil to clear.
func (s *MockSink) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Clicks returns the recorded clicks in call order.
func (s *MockSink) Clicks() []Click {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Click, len(s.clicks))
	copy(out, s.clicks)
	return out
}

// Reset clears the recorded clicks.
func (s *MockSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clicks = nil
}
