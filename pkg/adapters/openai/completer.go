// Package openai implements ports.Completer over the OpenAI Chat Completions
// API. A custom base URL makes it usable with any OpenAI-compatible provider.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"
)

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultMaxTokens   = 400
	DefaultTemperature = 0.7
)

var _ ports.Completer = (*Completer)(nil)

// Completer sends chat conversations to a Chat Completions endpoint.
type Completer struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
	limiter     *rate.Limiter
}

// Config holds the connection settings. Only APIKey is required.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int64
	Temperature *float64
	// RequestsPerMinute throttles outgoing calls; zero disables throttling.
	RequestsPerMinute int
	// MaxRetries overrides the client's retry count when non-nil.
	MaxRetries *int
}

// New creates a Completer. It fails with domain.ErrMissingCredential when no API key is set.
func New(cfg Config) (*Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai api key is empty", domain.ErrMissingCredential)
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.MaxRetries != nil {
		opts = append(opts, option.WithMaxRetries(*cfg.MaxRetries))
	}

	c := &Completer{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: DefaultTemperature,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.maxTokens == 0 {
		c.maxTokens = DefaultMaxTokens
	}
	if cfg.Temperature != nil {
		c.temperature = *cfg.Temperature
	}
	if cfg.RequestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60), 1)
	}
	return c, nil
}

// Complete sends messages and returns the first choice's text.
func (c *Completer) Complete(ctx context.Context, messages []ports.Message) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: rate limit wait: %w", domain.ErrExternalService, err)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:               c.model,
		MaxCompletionTokens: openai.Int(c.maxTokens),
		Temperature:         openai.Float(c.temperature),
		Messages:            convertMessages(messages),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: openai returned %d: %w", domain.ErrExternalService, apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("%w: %w", domain.ErrExternalService, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", domain.ErrExternalService)
	}
	return resp.Choices[0].Message.Content, nil
}

func convertMessages(messages []ports.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case ports.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case ports.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
