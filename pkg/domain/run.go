package domain

import "time"

// Run is a recorded step list for one algorithm invocation.
type Run struct {
	ID        string      `json:"id"`
	Algorithm AlgorithmID `json:"algorithm"`
	CreatedAt time.Time   `json:"created_at"`
	Steps     []Step      `json:"steps"`
}

// Final returns the last recorded step. Every valid run has at least one.
func (r *Run) Final() (Step, bool) {
	if r == nil || len(r.Steps) == 0 {
		return Step{}, false
	}
	return r.Steps[len(r.Steps)-1], true
}
