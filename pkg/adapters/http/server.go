// Package http exposes the stepwise engine as a JSON API with chi, including
// Server-Sent Events playback of recorded runs.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/explain"
	"github.com/aretw0/stepwise/pkg/player"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Engine is the part of stepwise.Engine the API needs.
type Engine interface {
	Algorithms() []domain.AlgorithmInfo
	Record(ctx context.Context, id domain.AlgorithmID, in domain.Input) (*domain.Run, error)
	Load(ctx context.Context, runID string) (*domain.Run, error)
	Runs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, runID string) error
	NewPlayer(opts ...player.Option) *player.Player
}

var _ Engine = (*stepwise.Engine)(nil)

// Explainer produces natural-language explanations. *explain.Service implements it.
type Explainer interface {
	Explain(ctx context.Context, req explain.Request) (string, error)
}

// Server holds the API dependencies.
type Server struct {
	engine    Engine
	explainer Explainer
	settings  ports.SettingsStore
	metrics   http.Handler
	logger    *slog.Logger
	newRand   func() *rand.Rand
}

// Option configures the Server.
type Option func(*Server)

// WithExplainer enables the /explain and /review routes.
func WithExplainer(e Explainer) Option {
	return func(s *Server) { s.explainer = e }
}

// WithSettings enables the /settings routes.
func WithSettings(store ports.SettingsStore) Option {
	return func(s *Server) { s.settings = store }
}

// WithMetrics mounts a Prometheus handler at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRand fixes the random source used by /generate/random.
func WithRand(newRand func() *rand.Rand) Option {
	return func(s *Server) { s.newRand = newRand }
}

// NewHandler creates the HTTP handler for engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		engine: engine,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return enableCORS(s.routes())
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Get("/openapi.yaml", s.getOpenAPI)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Get("/algorithms", s.listAlgorithms)
	r.Post("/generate/random", s.generateRandom)
	r.Post("/generate/custom", s.generateCustom)
	r.Get("/graphs/sample", s.getSampleGraph)

	r.Get("/runs", s.listRuns)
	r.Post("/runs", s.createRun)
	r.Get("/runs/{id}", s.getRun)
	r.Delete("/runs/{id}", s.deleteRun)
	r.Get("/runs/{id}/steps/{index}", s.getStep)
	r.Get("/runs/{id}/play", s.playRun)

	r.Post("/explain/step", s.explain(explain.KindStep))
	r.Post("/explain/complexity", s.explain(explain.KindComplexity))
	r.Post("/review", s.explain(explain.KindReview))

	r.Get("/settings/api-key", s.getAPIKeyStatus)
	r.Put("/settings/api-key", s.putAPIKey)
	r.Delete("/settings/api-key", s.deleteAPIKey)
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := Spec(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "stepwise-http",
		"version":     strings.TrimSpace(stepwise.Version),
		"api_version": apiVersion,
	})
}

func (s *Server) getOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/yaml")
	_, _ = w.Write(rawSpec)
}

func (s *Server) listAlgorithms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Algorithms())
}

// -- Helpers --

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnknownAlgorithm),
		errors.Is(err, domain.ErrMissingCredential):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRunNotFound),
		errors.Is(err, domain.ErrSettingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrExternalService):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = http.StatusText(status)
	} else {
		s.logger.DebugContext(r.Context(), "request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
