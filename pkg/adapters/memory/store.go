// Package memory provides in-process implementations of the storage ports.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

var (
	_ ports.RunStore      = (*RunStore)(nil)
	_ ports.SettingsStore = (*SettingsStore)(nil)
)

// RunStore implements ports.RunStore in memory.
// Safe for concurrent use.
type RunStore struct {
	data map[string]*domain.Run
	mu   sync.RWMutex
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		data: make(map[string]*domain.Run),
	}
}

func copyRun(r *domain.Run) *domain.Run {
	out := *r
	out.Steps = domain.CloneSteps(r.Steps)
	return &out
}

// Save persists a deep copy of the run, similar to serialization.
func (s *RunStore) Save(ctx context.Context, run *domain.Run) error {
	stored := copyRun(run)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[run.ID] = stored
	return nil
}

// Load returns a copy so the caller can't mutate the stored steps.
func (s *RunStore) Load(ctx context.Context, id string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.data[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return copyRun(run), nil
}

// Delete removes the run.
func (s *RunStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored run IDs, sorted.
func (s *RunStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// SettingsStore implements ports.SettingsStore in memory.
type SettingsStore struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewSettingsStore creates an empty settings store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{data: make(map[string]string)}
}

func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", domain.ErrSettingNotFound
	}
	return v, nil
}

func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
