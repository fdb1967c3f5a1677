package completion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/BerylCAtieno/data-question-api/internal/utils"
)

// Model is the only model the upstream proxy serves.
const Model = openai.GPT4oMini

type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  *utils.Logger
}

type openAICompleter struct {
	client *openai.Client
}

type loggingTransport struct {
	base   http.RoundTripper
	logger *utils.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Debug("Completion request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return nil, err
	}
	t.logger.Debug("Completion request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", time.Since(start))
	return resp, nil
}

func NewOpenAICompleter(cfg Config) Completer {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Logger != nil {
		httpClient.Transport = &loggingTransport{
			base:   http.DefaultTransport,
			logger: cfg.Logger,
		}
	}
	config.HTTPClient = httpClient

	return &openAICompleter{
		client: openai.NewClientWithConfig(config),
	}
}

// Complete sends a system and a user message and returns the content of the
// first choice as-is.
func (c *openAICompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}
