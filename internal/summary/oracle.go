package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ErrUpstream wraps every failure of the completion service.
var ErrUpstream = errors.New("completion service failed")

// Oracle turns a prompt into free text.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AnthropicConfig configures the Anthropic-backed oracle.
type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL string
}

// AnthropicOracle calls the Anthropic Messages API.
type AnthropicOracle struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	logger    *slog.Logger
}

// NewAnthropicOracle creates an oracle. Each call is bounded by cfg.Timeout and retried
// once with the client's backoff.
func NewAnthropicOracle(cfg AnthropicConfig, logger *slog.Logger) (*AnthropicOracle, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(1),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)
	return &AnthropicOracle{
		client:    &client,
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
		timeout:   cfg.Timeout,
		logger:    logger,
	}, nil
}

// Complete sends prompt as a single user message and returns the concatenated text blocks.
func (o *AnthropicOracle) Complete(ctx context.Context, prompt string) (string, error) {
	// Two attempts plus backoff must fit in the overall budget.
	ctx, cancel := context.WithTimeout(ctx, 2*o.timeout+5*time.Second)
	defer cancel()

	started := time.Now()
	msg, err := o.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(o.model),
		MaxTokens: o.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			o.logger.Warn("completion request rejected", slog.Int("status", apiErr.StatusCode), slog.String("model", o.model))
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	o.logger.Debug("completion finished",
		slog.String("model", o.model),
		slog.Duration("elapsed", time.Since(started)),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)
	return b.String(), nil
}
