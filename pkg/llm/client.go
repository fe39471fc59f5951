// Package llm wraps the hosted chat-completion model behind a one-call interface.
package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	configpkg "github.com/Ali-Aref1/Hireverse-Server/pkg/config"
	loggerpkg "github.com/Ali-Aref1/Hireverse-Server/pkg/logger"
)

// Completer turns a prompt into the model's text response.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client is a Completer backed by an OpenAI-compatible chat completion API.
type Client struct {
	client      openai.Client
	model       string
	temperature float64

	logger  loggerpkg.Logger
	verbose bool
}

// Option configures optional Client dependencies.
type Option func(*clientDeps)

type clientDeps struct {
	logger      loggerpkg.Logger
	requestOpts []option.RequestOption
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *clientDeps) {
		d.logger = l
	}
}

// WithRequestOptions appends raw SDK request options, applied after the config-derived ones.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(d *clientDeps) {
		d.requestOpts = append(d.requestOpts, opts...)
	}
}

// NewClient builds a Client from cfg.
func NewClient(cfg configpkg.Config, opts ...Option) (*Client, error) {
	cfg = configpkg.Normalize(cfg)
	if err := configpkg.Validate(cfg); err != nil {
		return nil, err
	}

	deps := clientDeps{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	deps.logger = loggerpkg.OrNop(deps.logger)

	requestOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	requestOpts = append(requestOpts, deps.requestOpts...)

	loggerpkg.Debug(cfg.Verbose, deps.logger, "llm client init", map[string]any{
		"base_url":    cfg.BaseURL,
		"model":       cfg.Model,
		"temperature": cfg.Temperature,
		"max_retries": cfg.MaxRetries,
	})

	return &Client{
		client:      openai.NewClient(requestOpts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      deps.logger,
		verbose:     cfg.Verbose,
	}, nil
}

// Complete sends prompt as a single user message and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	loggerpkg.Debug(c.verbose, c.logger, "chat completion request", map[string]any{
		"model":        c.model,
		"prompt_bytes": len(prompt),
	})

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion choices")
	}

	content := completion.Choices[0].Message.Content
	loggerpkg.Debug(c.verbose, c.logger, "chat completion response", map[string]any{
		"finish_reason":  completion.Choices[0].FinishReason,
		"response_bytes": len(content),
	})
	return content, nil
}
