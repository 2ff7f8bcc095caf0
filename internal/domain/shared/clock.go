package shared

import "time"

// Clock provides the current time. It is injected into domain services that
// need to compare business dates (e.g. invoice overdue checks) so they stay
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock is a Clock that always returns the same instant.
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.Instant
}
