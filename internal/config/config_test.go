package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stepwise.yaml")
	content := `
log_level: debug
server:
  addr: ":9090"
playback:
  speed: 80
store:
  driver: redis
  ttl: 1h
openai:
  model: gpt-4o
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 80, cfg.Playback.Speed)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, time.Hour, cfg.Store.TTL)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	// Untouched fields keep their defaults.
	assert.Equal(t, int64(400), cfg.OpenAI.MaxTokens)
	assert.Equal(t, 12, cfg.Playback.BarHeight)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stepwise.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"store":{"driver":"memory"}}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STEPWISE_SPEED", "100")
	t.Setenv("STEPWISE_STORE", "memory")
	t.Setenv("STEPWISE_OPENAI_API_KEY", "sk-test")
	t.Setenv("STEPWISE_ENCRYPTION_KEYS", "new, old,")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, cfg.Store.EncryptionKeys)
	assert.Equal(t, 100, cfg.Playback.Speed)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STEPWISE_SPEED", "fast")

	_, err := Load("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"speed zero", func(c *Config) { c.Playback.Speed = 0 }},
		{"speed too high", func(c *Config) { c.Playback.Speed = 101 }},
		{"driver", func(c *Config) { c.Store.Driver = "postgres" }},
		{"level", func(c *Config) { c.LogLevel = "chatty" }},
		{"ttl", func(c *Config) { c.Store.TTL = -time.Second }},
		{"temperature", func(c *Config) { c.OpenAI.Temperature = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidInput)
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)
}
