package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

var _ ports.SettingsStore = (*SettingsStore)(nil)

// DefaultSettingsPath is used when NewSettingsStore gets an empty path.
var DefaultSettingsPath = filepath.Join(".stepwise", "settings.json")

// SettingsStore keeps settings as a flat JSON object in a single file.
// The file holds secrets, so it is written with 0600 permissions.
type SettingsStore struct {
	Path string
	mu   sync.Mutex
}

// NewSettingsStore creates a store backed by path.
func NewSettingsStore(path string) *SettingsStore {
	if path == "" {
		path = DefaultSettingsPath
	}
	return &SettingsStore{Path: path}
}

func (s *SettingsStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", s.Path, err)
	}
	return values, nil
}

func (s *SettingsStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return writeAtomic(s.Path, data, 0o600)
}

func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", domain.ErrSettingNotFound
	}
	return v, nil
}

func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.write(values)
}
