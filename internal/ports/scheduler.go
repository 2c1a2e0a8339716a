package ports

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type Timer interface {
	// Stop prevents the callback from running. It reports false if the callback already ran
	// or the timer was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay. Implementations run every callback on a single
// logical queue, in due-time order.
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func()) Timer
}
