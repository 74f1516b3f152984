package clock

import (
	"sync"
	"time"
)

// Clock supplies the current time to the review service.
type Clock interface {
	Now() time.Time
}

// System is the wall clock, in UTC.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Simulated is a settable clock used to replay study sessions without
// waiting for real intervals to pass. Until Set or Advance is called it
// follows the wall clock.
type Simulated struct {
	mu  sync.RWMutex
	now time.Time
	set bool
}

// NewSimulated returns a Simulated clock that starts on real time.
func NewSimulated() *Simulated {
	return &Simulated{}
}

func (c *Simulated) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.set {
		return time.Now().UTC()
	}
	return c.now
}

// Set pins the clock to t.
func (c *Simulated) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
	c.set = true
}

// Advance moves the clock forward by d and returns the new time. An
// unpinned clock is pinned to the current wall time first.
func (c *Simulated) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.set {
		c.now = time.Now().UTC()
		c.set = true
	}
	c.now = c.now.Add(d)
	return c.now
}

// Reset returns the clock to real time.
func (c *Simulated) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = time.Time{}
	c.set = false
}

// IsSet reports whether the clock is pinned.
func (c *Simulated) IsSet() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.set
}
