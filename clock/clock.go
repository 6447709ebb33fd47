// Package clock abstracts time for code that needs to wait on deadlines.
// Production code uses OsClock; tests use TestClock to make timing
// deterministic.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current time and deadline channels.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// After returns a channel that receives the current time once d has
	// elapsed.
	After(d time.Duration) <-chan time.Time
}

// OrDefault returns c unless it is nil, in which case an OsClock is returned.
func OrDefault(c Clock) Clock {
	if c != nil {
		return c
	}
	return &OsClock{}
}

// OsClock is the wall clock.
type OsClock struct{}

func (c *OsClock) Now() time.Time { return time.Now() }

func (c *OsClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// TestClock is a manually driven clock. Time only moves when Advance or Set
// is called; pending After channels fire once the clock passes their
// deadline.
type TestClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*testTimer
}

type testTimer struct {
	deadline time.Time
	ch       chan time.Time
}

// NewTestClock returns a TestClock seeded at t0.
func NewTestClock(t0 time.Time) *TestClock {
	return &TestClock{now: t0}
}

// Now returns the clock's current time.
func (c *TestClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After returns a channel that fires once the clock reaches now+d. A
// non-positive d fires immediately.
func (c *TestClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.now
		return ch
	}
	c.timers = append(c.timers, &testTimer{deadline: c.now.Add(d), ch: ch})
	return ch
}

// Advance moves the clock forward by d and fires any timers that expire.
func (c *TestClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.fireLocked()
}

// Set replaces the current time and fires any timers at or before t.
func (c *TestClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
	c.fireLocked()
}

func (c *TestClock) fireLocked() {
	kept := c.timers[:0]
	for _, tm := range c.timers {
		if tm.deadline.After(c.now) {
			kept = append(kept, tm)
			continue
		}
		tm.ch <- c.now
	}
	c.timers = kept
}

var _ Clock = (*OsClock)(nil)
var _ Clock = (*TestClock)(nil)
