package exam

import "time"

// Clock supplies the current time to a session. Sessions never read the
// wall clock directly; expiry is decided by explicit Tick calls, so the
// driver (the exam screen's tick loop, or a test) owns time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FakeClock is a manually advanced Clock for tests.
type FakeClock struct {
	Current time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{Current: start}
}

func (c *FakeClock) Now() time.Time { return c.Current }

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}
