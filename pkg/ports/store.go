package ports

import (
	"context"

	"github.com/aretw0/stepwise/pkg/domain"
)

// RunStore persists recorded runs so they can be replayed without re-running the algorithm.
type RunStore interface {
	// Save persists the run under run.ID, replacing any previous run with that ID.
	Save(ctx context.Context, run *domain.Run) error

	// Load retrieves a run by ID.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, id string) (*domain.Run, error)

	// Delete removes a run. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored runs.
	List(ctx context.Context) ([]string, error)
}

// SettingAPIKey is the settings key under which the explanation service API key is stored.
const SettingAPIKey = "openai-api-key"

// SettingsStore is a string key-value store for user settings.
type SettingsStore interface {
	// Get returns the value for key, or domain.ErrSettingNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
