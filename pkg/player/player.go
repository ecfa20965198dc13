// Package player replays a recorded step list on a timer.
//
// A Player is a small state machine (idle, running, paused, complete) driven
// by a ports.Scheduler. It publishes steps in exactly the order they were
// recorded, one per tick, and never skips or repeats a step across
// pause/resume. Every Start, Pause and Reset bumps an epoch; a tick that fires
// for an older epoch publishes nothing.
package player

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

// DefaultSpeed is the speed percentage a new player starts with.
const DefaultSpeed = 50

// Player is the step sequencer. Safe for concurrent use.
type Player struct {
	mu        sync.Mutex
	scheduler ports.Scheduler
	logger    *slog.Logger
	hooks     domain.LifecycleHooks

	steps    []domain.Step
	cursor   int
	status   domain.PlaybackStatus
	interval time.Duration
	current  *domain.Step

	epoch uint64
	timer ports.Timer
}

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithLifecycleHooks registers step and status callbacks. Hooks run on the
// publishing goroutine, outside the player lock, and may call back into the player.
// Repeated options add to the hooks already registered.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Player) {
		p.hooks = p.hooks.Merge(hooks)
	}
}

// WithSpeed sets the initial speed percentage. Out-of-range values are ignored.
func WithSpeed(percent int) Option {
	return func(p *Player) {
		if percent >= domain.MinSpeed && percent <= domain.MaxSpeed {
			p.interval = domain.IntervalForSpeed(percent)
		}
	}
}

// New creates an idle player driven by scheduler.
func New(scheduler ports.Scheduler, opts ...Option) *Player {
	p := &Player{
		scheduler: scheduler,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		status:    domain.StatusIdle,
		interval:  domain.IntervalForSpeed(DefaultSpeed),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// pending collects hook notifications produced under the lock so they can be
// delivered after it is released.
type pending struct {
	steps    []*domain.StepEvent
	statuses []*domain.StatusEvent
}

func (p *Player) setStatusLocked(to domain.PlaybackStatus, out *pending) {
	if p.status == to {
		return
	}
	out.statuses = append(out.statuses, &domain.StatusEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStatusChange},
		From:      p.status,
		To:        to,
	})
	p.logger.Debug("playback status changed", "from", p.status, "to", to, "cursor", p.cursor)
	p.status = to
}

func (p *Player) notify(out pending) {
	for _, e := range out.steps {
		if p.hooks.OnStepPublished != nil {
			p.hooks.OnStepPublished(e)
		}
	}
	for _, e := range out.statuses {
		if p.hooks.OnStatusChange != nil {
			p.hooks.OnStatusChange(e)
		}
	}
}

// stopLocked invalidates any scheduled tick.
func (p *Player) stopLocked() {
	p.epoch++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Player) scheduleLocked() {
	epoch := p.epoch
	p.timer = p.scheduler.AfterFunc(p.interval, func() { p.tick(epoch) })
}

// Start begins playback.
//
// From Paused it resumes at the retained cursor and ignores steps; only the
// interval is applied. From Idle or Complete it loads steps and plays them from
// the beginning. An empty list completes immediately. The first step is
// published one interval after Start.
func (p *Player) Start(steps []domain.Step, interval time.Duration) error {
	if interval < 0 {
		return fmt.Errorf("%w: negative interval %v", domain.ErrInvalidInput, interval)
	}

	var out pending
	p.mu.Lock()
	switch p.status {
	case domain.StatusRunning:
		p.mu.Unlock()
		return fmt.Errorf("%w: already running", domain.ErrInvalidTransition)
	case domain.StatusPaused:
		// resume with the retained list and cursor
	default:
		p.steps = steps
		p.cursor = 0
		p.current = nil
	}

	p.stopLocked()
	p.interval = interval
	if p.cursor >= len(p.steps) {
		p.setStatusLocked(domain.StatusComplete, &out)
	} else {
		p.setStatusLocked(domain.StatusRunning, &out)
		p.scheduleLocked()
	}
	p.mu.Unlock()

	p.notify(out)
	return nil
}

// Load replaces the step list and parks the player Paused at the first step,
// ready for Step or Start. It is valid from any status.
func (p *Player) Load(steps []domain.Step) {
	var out pending
	p.mu.Lock()
	p.stopLocked()
	p.steps = steps
	p.cursor = 0
	p.current = nil
	if len(steps) == 0 {
		p.setStatusLocked(domain.StatusComplete, &out)
	} else {
		p.setStatusLocked(domain.StatusPaused, &out)
	}
	p.mu.Unlock()
	p.notify(out)
}

// Pause stops the timer and retains the cursor. Only valid while Running.
func (p *Player) Pause() error {
	var out pending
	p.mu.Lock()
	if p.status != domain.StatusRunning {
		status := p.status
		p.mu.Unlock()
		return fmt.Errorf("%w: cannot pause while %s", domain.ErrInvalidTransition, status)
	}
	p.stopLocked()
	p.setStatusLocked(domain.StatusPaused, &out)
	p.mu.Unlock()

	p.notify(out)
	return nil
}

// Reset stops playback and discards the step list and cursor.
func (p *Player) Reset() {
	var out pending
	p.mu.Lock()
	p.stopLocked()
	p.steps = nil
	p.cursor = 0
	p.current = nil
	p.setStatusLocked(domain.StatusIdle, &out)
	p.mu.Unlock()

	p.notify(out)
}

// SetSpeed sets the interval to 1000ms - percent*10ms. A tick that is already
// scheduled keeps its delay; the new interval applies from the next one.
func (p *Player) SetSpeed(percent int) error {
	if percent < domain.MinSpeed || percent > domain.MaxSpeed {
		return fmt.Errorf("%w: speed must be between %d and %d, got %d", domain.ErrInvalidInput, domain.MinSpeed, domain.MaxSpeed, percent)
	}
	p.mu.Lock()
	p.interval = domain.IntervalForSpeed(percent)
	p.mu.Unlock()
	return nil
}

// Step publishes the next step by hand. Only valid while Paused.
func (p *Player) Step() (domain.Step, error) {
	var out pending
	p.mu.Lock()
	if p.status != domain.StatusPaused {
		status := p.status
		p.mu.Unlock()
		return domain.Step{}, fmt.Errorf("%w: cannot step while %s", domain.ErrInvalidTransition, status)
	}
	p.epoch++
	step := p.publishLocked(&out)
	p.mu.Unlock()

	p.notify(out)
	return step, nil
}

// publishLocked emits steps[cursor] and advances. The caller guarantees cursor < len(steps).
func (p *Player) publishLocked(out *pending) domain.Step {
	step := p.steps[p.cursor]
	p.current = &step
	out.steps = append(out.steps, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepPublished},
		Index:     p.cursor,
		Total:     len(p.steps),
		Step:      step,
	})
	p.cursor++
	if p.cursor >= len(p.steps) {
		p.stopLocked()
		p.setStatusLocked(domain.StatusComplete, out)
	}
	return step
}

func (p *Player) tick(epoch uint64) {
	var out pending
	p.mu.Lock()
	if epoch != p.epoch || p.status != domain.StatusRunning {
		p.mu.Unlock()
		p.logger.Debug("dropped stale tick", "epoch", epoch)
		return
	}
	p.timer = nil
	p.publishLocked(&out)
	p.mu.Unlock()

	p.notify(out)

	// The next tick is only scheduled once hooks have returned, so a consumer
	// never sees two steps in flight.
	p.mu.Lock()
	if epoch == p.epoch && p.status == domain.StatusRunning && p.timer == nil {
		p.scheduleLocked()
	}
	p.mu.Unlock()
}

// Snapshot returns the current playback state.
func (p *Player) Snapshot() domain.PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return domain.PlaybackState{
		Cursor:   p.cursor,
		Total:    len(p.steps),
		Status:   p.status,
		Interval: p.interval,
	}
}

// Current returns the most recently published step.
func (p *Player) Current() (domain.Step, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return domain.Step{}, false
	}
	return *p.current, true
}
