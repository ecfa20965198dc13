package ports

import "time"

// Timer is a pending callback returned by a Scheduler.
type Timer interface {
	// Stop prevents the callback from firing. It reports false if the
	// callback already fired or was already stopped.
	Stop() bool
}

// Scheduler runs f once after d has elapsed, on a goroutine of its choosing.
// A zero or negative d fires as soon as possible.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}
