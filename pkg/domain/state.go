package domain

import "time"

// PlaybackStatus is the mode of the step sequencer.
type PlaybackStatus string

const (
	StatusIdle     PlaybackStatus = "idle"     // No run loaded
	StatusRunning  PlaybackStatus = "running"  // Timer active, consuming steps
	StatusPaused   PlaybackStatus = "paused"   // Timer stopped, cursor retained
	StatusComplete PlaybackStatus = "complete" // Cursor exhausted
)

// PlaybackState is the explicit state object owned by a player.
type PlaybackState struct {
	// Cursor is the index of the next step to publish.
	Cursor   int            `json:"cursor"`
	Total    int            `json:"total"`
	Status   PlaybackStatus `json:"status"`
	Interval time.Duration  `json:"interval"`
}

// MinSpeed and MaxSpeed bound the speed percentage accepted by players.
const (
	MinSpeed = 1
	MaxSpeed = 100
)

// IntervalForSpeed maps a speed percentage to a tick interval: 1000ms - percent*10ms.
// 100% yields a zero interval (unthrottled replay); this is intentional.
func IntervalForSpeed(percent int) time.Duration {
	return time.Duration(1000-percent*10) * time.Millisecond
}
