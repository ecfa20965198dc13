package openai

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

var _ ports.Completer = (*KeyedCompleter)(nil)

// KeyedCompleter resolves the API key from a settings store on every call, so
// a key saved while the process runs takes effect without a restart.
// A non-empty Config.APIKey wins over the stored key.
type KeyedCompleter struct {
	settings ports.SettingsStore
	cfg      Config

	mu     sync.Mutex
	key    string
	client *Completer
}

// NewKeyed creates a completer that reads ports.SettingAPIKey from settings.
func NewKeyed(settings ports.SettingsStore, cfg Config) *KeyedCompleter {
	return &KeyedCompleter{settings: settings, cfg: cfg}
}

func (k *KeyedCompleter) resolve(ctx context.Context) (*Completer, error) {
	key := k.cfg.APIKey
	if key == "" && k.settings != nil {
		stored, err := k.settings.Get(ctx, ports.SettingAPIKey)
		switch {
		case errors.Is(err, domain.ErrSettingNotFound):
		case err != nil:
			return nil, fmt.Errorf("failed to read api key: %w", err)
		default:
			key = stored
		}
	}
	if key == "" {
		return nil, fmt.Errorf("%w: no openai api key configured", domain.ErrMissingCredential)
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if k.client != nil && k.key == key {
		return k.client, nil
	}
	cfg := k.cfg
	cfg.APIKey = key
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	k.key, k.client = key, c
	return c, nil
}

// Complete implements ports.Completer.
func (k *KeyedCompleter) Complete(ctx context.Context, messages []ports.Message) (string, error) {
	c, err := k.resolve(ctx)
	if err != nil {
		return "", err
	}
	return c.Complete(ctx, messages)
}
