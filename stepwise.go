package stepwise

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/stepwise/internal/runtime"
	"github.com/aretw0/stepwise/pkg/adapters/clock"
	"github.com/aretw0/stepwise/pkg/adapters/memory"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/player"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the stepwise library.
// It wraps the runtime, records runs into a RunStore and builds players
// wired to the same hooks and logger.
type Engine struct {
	runtime   *runtime.Engine
	store     ports.RunStore
	scheduler ports.Scheduler
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	newID     func() string
	now       func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks for runs and playback.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRunStore replaces the default in-memory run store.
func WithRunStore(store ports.RunStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithScheduler replaces the wall clock used by players (tests inject a manual clock).
func WithScheduler(s ports.Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// New initializes a stepwise Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.store == nil {
		eng.store = memory.NewRunStore()
	}
	if eng.scheduler == nil {
		eng.scheduler = clock.NewReal()
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	)
	return eng
}

// Algorithms lists every runnable algorithm in display order.
func (e *Engine) Algorithms() []domain.AlgorithmInfo {
	return domain.Catalog()
}

// Run executes algorithm id over in and returns its full step list without storing it.
func (e *Engine) Run(ctx context.Context, id domain.AlgorithmID, in domain.Input) ([]domain.Step, error) {
	return e.runtime.Run(ctx, id, in)
}

// Record runs the algorithm and saves the result under a fresh id.
func (e *Engine) Record(ctx context.Context, id domain.AlgorithmID, in domain.Input) (*domain.Run, error) {
	steps, err := e.runtime.Run(ctx, id, in)
	if err != nil {
		return nil, err
	}
	run := &domain.Run{
		ID:        e.newID(),
		Algorithm: id,
		CreatedAt: e.now().UTC(),
		Steps:     steps,
	}
	if err := e.store.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}
	e.logger.DebugContext(ctx, "run recorded", "run_id", run.ID, "algorithm", id, "steps", len(steps))
	return run, nil
}

// Load fetches a recorded run.
func (e *Engine) Load(ctx context.Context, runID string) (*domain.Run, error) {
	return e.store.Load(ctx, runID)
}

// Runs lists recorded run ids.
func (e *Engine) Runs(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}

// Delete removes a recorded run. Deleting an unknown id is not an error.
func (e *Engine) Delete(ctx context.Context, runID string) error {
	return e.store.Delete(ctx, runID)
}

// NewPlayer creates a player on the engine's scheduler, sharing its hooks and logger.
// Extra options are applied after the engine defaults.
func (e *Engine) NewPlayer(opts ...player.Option) *player.Player {
	base := []player.Option{
		player.WithLogger(e.logger),
		player.WithLifecycleHooks(e.hooks),
	}
	return player.New(e.scheduler, append(base, opts...)...)
}
