package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/samirrijal/locainsight/internal/core/domain"
)

// Client implements ports.CompletionProvider using the OpenAI chat API.
type Client struct {
	client *openai.Client
}

// New creates a client for apiKey. An empty baseURL keeps the public endpoint.
func New(apiKey, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{client: openai.NewClientWithConfig(cfg)}
}

// Complete sends a system + user message pair and returns the first choice.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.Completion, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:            req.Model,
		MaxTokens:        req.MaxTokens,
		Temperature:      req.Temperature,
		PresencePenalty:  req.PresencePenalty,
		FrequencyPenalty: req.FrequencyPenalty,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	})
	if err != nil {
		return nil, translateError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &domain.ProviderError{Err: errors.New("no response choices")}
	}

	return &domain.Completion{
		Content:          resp.Choices[0].Message.Content,
		Model:            resp.Model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

// translateError keeps the HTTP status of SDK errors so the core can
// classify them without importing the SDK.
func translateError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &domain.ProviderError{
			StatusCode: apiErr.HTTPStatusCode,
			Err:        fmt.Errorf("%s: %s", apiErr.Type, apiErr.Message),
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &domain.ProviderError{StatusCode: reqErr.HTTPStatusCode, Err: reqErr.Err}
	}
	return &domain.ProviderError{Err: err}
}
