package cli

import (
	"fmt"
	"log/slog"
	nethttp "net/http"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/internal/config"
	"github.com/aretw0/stepwise/pkg/adapters/file"
	httpadapter "github.com/aretw0/stepwise/pkg/adapters/http"
	mcpadapter "github.com/aretw0/stepwise/pkg/adapters/mcp"
	"github.com/aretw0/stepwise/pkg/adapters/memory"
	"github.com/aretw0/stepwise/pkg/adapters/openai"
	"github.com/aretw0/stepwise/pkg/adapters/redis"
	"github.com/aretw0/stepwise/pkg/explain"
	"github.com/aretw0/stepwise/pkg/observability"
	"github.com/aretw0/stepwise/pkg/persistence/middleware"
	"github.com/aretw0/stepwise/pkg/ports"
)

// Stack bundles the engine and its collaborators, all built from one Config.
type Stack struct {
	Config    config.Config
	Logger    *slog.Logger
	Engine    *stepwise.Engine
	Settings  ports.SettingsStore
	Explainer *explain.Service
	Metrics   *observability.Metrics

	closers []func() error
}

// NewStack wires stores, metrics and the explanation service according to cfg.
// Extra engine options are applied last, so callers may override the defaults.
func NewStack(cfg config.Config, logger *slog.Logger, opts ...stepwise.Option) (*Stack, error) {
	s := &Stack{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	}

	runs, err := s.createStores()
	if err != nil {
		return nil, err
	}
	if keys := cfg.Store.EncryptionKeys; len(keys) > 0 {
		enc, err := middleware.ParseKeys(keys)
		if err != nil {
			return nil, err
		}
		mw, err := middleware.NewEncryptionMiddleware(enc)
		if err != nil {
			return nil, err
		}
		s.Settings = middleware.Chain(s.Settings, mw)
	}

	hooks := s.Metrics.Hooks().Merge(observability.LoggingHooks(logger))
	engineOpts := []stepwise.Option{
		stepwise.WithLogger(logger),
		stepwise.WithRunStore(runs),
		stepwise.WithLifecycleHooks(hooks),
	}
	s.Engine = stepwise.New(append(engineOpts, opts...)...)

	temperature := cfg.OpenAI.Temperature
	completer := openai.NewKeyed(s.Settings, openai.Config{
		APIKey:            cfg.OpenAI.APIKey,
		BaseURL:           cfg.OpenAI.BaseURL,
		Model:             cfg.OpenAI.Model,
		MaxTokens:         cfg.OpenAI.MaxTokens,
		Temperature:       &temperature,
		RequestsPerMinute: cfg.OpenAI.RequestsPerMinute,
	})
	s.Explainer = explain.New(completer, explain.WithLogger(logger))

	logger.Debug("stack ready", "store", cfg.Store.Driver, "model", cfg.OpenAI.Model)
	return s, nil
}

func (s *Stack) createStores() (ports.RunStore, error) {
	store := s.Config.Store
	switch store.Driver {
	case config.DriverMemory:
		s.Settings = memory.NewSettingsStore()
		return memory.NewRunStore(), nil
	case config.DriverFile:
		s.Settings = file.NewSettingsStore(store.SettingsFile)
		return file.NewRunStore(store.RunsDir), nil
	case config.DriverRedis:
		rs := redis.New(store.RedisAddr, "", 0,
			redis.WithPrefix(store.RedisPrefix),
			redis.WithTTL(store.TTL),
		)
		s.closers = append(s.closers, rs.Close)
		s.Settings = rs.Settings()
		return rs, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", store.Driver)
}

// Handler builds the HTTP API over the stack, with /metrics mounted.
func (s *Stack) Handler() nethttp.Handler {
	return httpadapter.NewHandler(s.Engine,
		httpadapter.WithExplainer(s.Explainer),
		httpadapter.WithSettings(s.Settings),
		httpadapter.WithMetrics(s.Metrics.Handler()),
		httpadapter.WithLogger(s.Logger),
	)
}

// MCPServer builds the Model Context Protocol server over the stack.
func (s *Stack) MCPServer() *mcpadapter.Server {
	return mcpadapter.NewServer(s.Engine,
		mcpadapter.WithExplainer(s.Explainer),
		mcpadapter.WithLogger(s.Logger),
	)
}

// Close releases backend connections.
func (s *Stack) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
