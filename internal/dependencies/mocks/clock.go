package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/fourinarow/internal/dependencies/clock"
)

var _ clock.Clock = (*MockClock)(nil)

// MockClock only moves when told to
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// TickingClock advances by Step every time it is read
type TickingClock struct {
	MockClock
	Step time.Duration
}

func NewTickingClock(t time.Time, step time.Duration) *TickingClock {
	return &TickingClock{MockClock: MockClock{now: t}, Step: step}
}

func (c *TickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.Step)
	return now
}
