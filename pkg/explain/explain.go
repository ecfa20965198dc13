// Package explain asks a language model to explain algorithm steps,
// complexity and user code. It sits behind ports.Completer, never touches
// playback state and reports every provider failure as one user-facing error.
package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

const (
	// MessageFailed is shown for any provider failure.
	MessageFailed = "Failed to get AI response. Please check your API key and try again."
	// MessageMissingKey is shown when no API key is configured.
	MessageMissingKey = "Please enter your OpenAI API key in the settings."
	// NoResponse is returned when the provider answers with empty text.
	NoResponse = "No response received"

	// DefaultLanguage is assumed for code review when none is given.
	DefaultLanguage = "javascript"
)

// Kind selects the prompt template.
type Kind string

const (
	KindStep       Kind = "step"
	KindComplexity Kind = "bigo"
	KindReview     Kind = "review"
)

// Request describes one explanation. Only the fields relevant to Kind are read.
type Request struct {
	Kind      Kind   `json:"type" mapstructure:"type"`
	Algorithm string `json:"algorithm" mapstructure:"algorithm"`
	// State is the visible container; it is embedded in the prompt as JSON.
	State    any    `json:"current_state,omitempty" mapstructure:"current_state"`
	Step     string `json:"step_description,omitempty" mapstructure:"step_description"`
	Code     string `json:"code,omitempty" mapstructure:"code"`
	Language string `json:"language,omitempty" mapstructure:"language"`
}

// Service builds prompts and forwards them to a Completer.
type Service struct {
	completer ports.Completer
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Service. A nil completer is allowed: every call then fails
// with domain.ErrMissingCredential.
func New(completer ports.Completer, opts ...Option) *Service {
	s := &Service{
		completer: completer,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// displayName turns a catalog ID into its human name; anything else passes through.
func displayName(algorithm string) string {
	if info, err := domain.Lookup(domain.AlgorithmID(algorithm)); err == nil {
		return info.Name
	}
	return algorithm
}

// Explain dispatches on req.Kind.
func (s *Service) Explain(ctx context.Context, req Request) (string, error) {
	switch req.Kind {
	case KindStep:
		return s.ExplainStep(ctx, req.Algorithm, req.State, req.Step)
	case KindComplexity:
		return s.ExplainComplexity(ctx, req.Algorithm)
	case KindReview:
		return s.ReviewCode(ctx, req.Algorithm, req.Code, req.Language)
	}
	return "", fmt.Errorf("%w: unknown explanation type %q", domain.ErrInvalidInput, req.Kind)
}

// ExplainStep asks why the current step of algorithm is necessary.
func (s *Service) ExplainStep(ctx context.Context, algorithm string, state any, step string) (string, error) {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("%w: state is not serializable: %w", domain.ErrInvalidInput, err)
	}
	return s.complete(ctx, KindStep, []ports.Message{
		{Role: ports.RoleSystem, Content: "You are a computer science tutor. Explain algorithm steps clearly and concisely in under 150 words."},
		{Role: ports.RoleUser, Content: fmt.Sprintf("Explain this step in %s:\nCurrent state: %s\nStep: %s\nWhy is this step necessary? Keep it simple and educational.",
			displayName(algorithm), stateJSON, step)},
	})
}

// ExplainComplexity asks for a beginner-level complexity explanation.
func (s *Service) ExplainComplexity(ctx context.Context, algorithm string) (string, error) {
	return s.complete(ctx, KindComplexity, []ports.Message{
		{Role: ports.RoleSystem, Content: "You are a computer science educator. Explain algorithm complexity in simple terms for beginners."},
		{Role: ports.RoleUser, Content: fmt.Sprintf("Explain the time and space complexity of %s in simple terms.\nInclude best, average, and worst cases. Keep it under 200 words and avoid heavy mathematical notation.",
			displayName(algorithm))},
	})
}

// ReviewCode asks for a review of code implementing algorithm.
// language defaults to DefaultLanguage.
func (s *Service) ReviewCode(ctx context.Context, algorithm, code, language string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("%w: no code to review", domain.ErrInvalidInput)
	}
	if language == "" {
		language = DefaultLanguage
	}
	return s.complete(ctx, KindReview, []ports.Message{
		{Role: ports.RoleSystem, Content: "You are a senior software engineer. Review code for bugs, efficiency, and best practices. Be constructive and educational."},
		{Role: ports.RoleUser, Content: fmt.Sprintf("Review this %s implementation of %s:\n\n%s\n\nHighlight any bugs, discuss time/space complexity, and suggest optimizations. If the code looks good, mention that too.",
			language, displayName(algorithm), code)},
	})
}

func (s *Service) complete(ctx context.Context, kind Kind, messages []ports.Message) (string, error) {
	if s.completer == nil {
		return "", domain.ErrMissingCredential
	}
	out, err := s.completer.Complete(ctx, messages)
	if err != nil {
		s.logger.WarnContext(ctx, "explanation failed", "kind", kind, "error", err)
		if errors.Is(err, domain.ErrMissingCredential) || errors.Is(err, domain.ErrExternalService) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrExternalService, err)
	}
	if strings.TrimSpace(out) == "" {
		return NoResponse, nil
	}
	return out, nil
}

// Async runs req on its own goroutine and hands the outcome to done, so
// callers such as a playing visualizer are never blocked.
func (s *Service) Async(ctx context.Context, req Request, done func(text string, err error)) {
	go func() {
		text, err := s.Explain(ctx, req)
		done(text, err)
	}()
}

// UserMessage maps an explanation error to the text shown to users.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrMissingCredential):
		return MessageMissingKey
	case errors.Is(err, domain.ErrInvalidInput):
		return err.Error()
	}
	return MessageFailed
}
