// Package clock abstracts time so backup archive names and log timestamps
// are deterministic in tests.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock implements Clock with a controllable time for testing.
type FixedClock struct {
	current time.Time
}

// NewFixedClock creates a FixedClock pinned to t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{current: t}
}

// Now returns the pinned time.
func (c *FixedClock) Now() time.Time {
	return c.current
}

// Advance moves the pinned time forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
