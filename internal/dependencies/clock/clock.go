// Package clock abstracts wall-clock time so game timestamps and engine
// timings can be controlled in tests.
package clock

import "time"

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

// System reads the host clock
type System struct{}

// New returns the system clock
func New() System {
	return System{}
}

// Now returns time.Now
func (System) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed on c since start
func Since(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}
