// Package config loads stepwise settings from a YAML (or JSON) file and the
// environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/stepwise/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no explicit config file is given.
const DefaultPath = "stepwise.yaml"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	LogLevel string         `yaml:"log_level" json:"log_level"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Playback PlaybackConfig `yaml:"playback" json:"playback"`
	Store    StoreConfig    `yaml:"store" json:"store"`
	OpenAI   OpenAIConfig   `yaml:"openai" json:"openai"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr" json:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// PlaybackConfig holds terminal playback defaults.
type PlaybackConfig struct {
	Speed     int  `yaml:"speed" json:"speed"`
	BarHeight int  `yaml:"bar_height" json:"bar_height"`
	Legend    bool `yaml:"legend" json:"legend"`
}

// StoreConfig selects where runs and settings are kept.
type StoreConfig struct {
	Driver       string        `yaml:"driver" json:"driver"`
	RunsDir      string        `yaml:"runs_dir" json:"runs_dir"`
	SettingsFile string        `yaml:"settings_file" json:"settings_file"`
	RedisAddr    string        `yaml:"redis_addr" json:"redis_addr"`
	RedisPrefix  string        `yaml:"redis_prefix" json:"redis_prefix"`
	TTL          time.Duration `yaml:"ttl" json:"ttl"`
	// EncryptionKeys encrypt stored settings when set: the first key encrypts,
	// the rest only decrypt. Read from STEPWISE_ENCRYPTION_KEYS, base64, comma separated.
	EncryptionKeys []string `yaml:"-" json:"-"`
}

// OpenAIConfig configures the explanation completer.
// APIKey is only read from the environment; the persisted key lives in the settings store.
type OpenAIConfig struct {
	APIKey            string  `yaml:"-" json:"-"`
	BaseURL           string  `yaml:"base_url" json:"base_url"`
	Model             string  `yaml:"model" json:"model"`
	MaxTokens         int64   `yaml:"max_tokens" json:"max_tokens"`
	Temperature       float64 `yaml:"temperature" json:"temperature"`
	RequestsPerMinute int     `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Playback: PlaybackConfig{
			Speed:     50,
			BarHeight: 12,
			Legend:    true,
		},
		Store: StoreConfig{
			Driver:       DriverFile,
			RunsDir:      filepath.Join(".stepwise", "runs"),
			SettingsFile: filepath.Join(".stepwise", "settings.json"),
			RedisAddr:    "localhost:6379",
			RedisPrefix:  "stepwise:",
		},
		OpenAI: OpenAIConfig{
			Model:             "gpt-4o-mini",
			MaxTokens:         400,
			Temperature:       0.7,
			RequestsPerMinute: 20,
		},
	}
}

// Load reads path over the defaults and applies STEPWISE_* overrides.
// An empty path falls back to DefaultPath, which may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, &cfg); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file: defaults only.
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := map[string]*string{
		"STEPWISE_LOG_LEVEL":       &c.LogLevel,
		"STEPWISE_ADDR":            &c.Server.Addr,
		"STEPWISE_STORE":           &c.Store.Driver,
		"STEPWISE_RUNS_DIR":        &c.Store.RunsDir,
		"STEPWISE_SETTINGS_FILE":   &c.Store.SettingsFile,
		"STEPWISE_REDIS_ADDR":      &c.Store.RedisAddr,
		"STEPWISE_OPENAI_API_KEY":  &c.OpenAI.APIKey,
		"STEPWISE_OPENAI_BASE_URL": &c.OpenAI.BaseURL,
		"STEPWISE_OPENAI_MODEL":    &c.OpenAI.Model,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup("STEPWISE_ENCRYPTION_KEYS"); ok {
		c.Store.EncryptionKeys = nil
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.Store.EncryptionKeys = append(c.Store.EncryptionKeys, k)
			}
		}
	}
	if v, ok := lookup("STEPWISE_SPEED"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: STEPWISE_SPEED=%q", domain.ErrInvalidInput, v)
		}
		c.Playback.Speed = n
	}
	if v, ok := lookup("STEPWISE_STORE_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: STEPWISE_STORE_TTL=%q", domain.ErrInvalidInput, v)
		}
		c.Store.TTL = d
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Playback.Speed < domain.MinSpeed || c.Playback.Speed > domain.MaxSpeed {
		return fmt.Errorf("%w: playback speed %d outside %d..%d", domain.ErrInvalidInput, c.Playback.Speed, domain.MinSpeed, domain.MaxSpeed)
	}
	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverRedis:
	default:
		return fmt.Errorf("%w: unknown store driver %q", domain.ErrInvalidInput, c.Store.Driver)
	}
	if c.Store.TTL < 0 {
		return fmt.Errorf("%w: negative store ttl", domain.ErrInvalidInput)
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		return fmt.Errorf("%w: temperature %v outside 0..2", domain.ErrInvalidInput, c.OpenAI.Temperature)
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", domain.ErrInvalidInput, s)
	}
	return l, nil
}
