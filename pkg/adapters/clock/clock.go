// Package clock provides ports.Scheduler implementations: the wall clock for
// production and a manually advanced virtual clock for deterministic tests.
package clock

import (
	"time"

	"github.com/aretw0/stepwise/pkg/ports"
)

// Real schedules callbacks on the runtime timer.
type Real struct{}

// NewReal returns the wall-clock scheduler.
func NewReal() Real { return Real{} }

// AfterFunc implements ports.Scheduler using time.AfterFunc.
func (Real) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}
