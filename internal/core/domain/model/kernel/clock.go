package kernel

import "time"

// Clock is the time source for order numbering and workflow timestamps.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ClockFunc adapts a function to Clock. Tests use it to pin the month.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
