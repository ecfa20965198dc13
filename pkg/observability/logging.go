package observability

import (
	"log/slog"

	"github.com/aretw0/stepwise/pkg/domain"
)

// LoggingHooks logs runs at info, and step and status events at debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunGenerated: func(e *domain.RunEvent) {
			if e.Err != nil {
				logger.Error("run_failed", "algorithm", e.Algorithm, "error", e.Err)
				return
			}
			logger.Info("run_generated",
				"algorithm", e.Algorithm,
				"steps", e.Steps,
				"duration", e.Duration,
			)
		},
		OnStepPublished: func(e *domain.StepEvent) {
			logger.Debug("step_published",
				"index", e.Index,
				"total", e.Total,
				"operation", e.Step.Operation,
			)
		},
		OnStatusChange: func(e *domain.StatusEvent) {
			logger.Debug("status_change", "from", e.From, "to", e.To)
		},
	}
}
