package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Engine validates input, dispatches to the registered runner and reports
// the outcome through lifecycle hooks.
type Engine struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// EngineOption configures the runtime engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates a runtime engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes algorithm id over in and returns the full step list.
// Invalid input yields domain.ErrInvalidInput and no steps; a runner defect
// yields domain.ErrRunnerInternal and no partial list.
func (e *Engine) Run(ctx context.Context, id domain.AlgorithmID, in domain.Input) ([]domain.Step, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runner, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(id); err != nil {
		e.logger.DebugContext(ctx, "rejected input", "algorithm", id, "error", err)
		return nil, err
	}

	start := e.now()
	steps, err := safeRun(runner, in)
	elapsed := e.now().Sub(start)

	if err == nil && len(steps) == 0 {
		err = fmt.Errorf("%w: %s produced no steps", domain.ErrRunnerInternal, id)
	}
	if err != nil {
		steps = nil
		e.logger.ErrorContext(ctx, "runner failed", "algorithm", id, "error", err)
	} else {
		e.logger.DebugContext(ctx, "run generated", "algorithm", id, "steps", len(steps), "duration", elapsed)
	}

	if e.hooks.OnRunGenerated != nil {
		e.hooks.OnRunGenerated(&domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventRunGenerated},
			Algorithm: id,
			Steps:     len(steps),
			Duration:  elapsed,
			Err:       err,
		})
	}
	return steps, err
}

// safeRun converts a runner panic (index out of range and the like) into an error.
func safeRun(r Runner, in domain.Input) (steps []domain.Step, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			steps = nil
			err = fmt.Errorf("%w: %v", domain.ErrRunnerInternal, rec)
		}
	}()
	return r(in)
}
