// Package llm holds the OpenAI-backed chat completion client used by the
// analysis engine.
package llm

import (
	"context"

	"vantage-backend/internal/pkg/config"
	"vantage-backend/internal/pkg/errs"

	"github.com/sashabaranov/go-openai"
)

var ErrNotConfigured = errs.New("OpenAI API key is not configured")

const completionTemperature = 0.2

type Client struct {
	api *openai.Client
	cfg config.OpenAIConfig
}

// NewClient builds the completion client. With no API key configured the
// client stays nil-backed and every call returns ErrNotConfigured, which the
// engine's fallback path absorbs.
func NewClient(cfg config.OpenAIConfig) *Client {
	c := &Client{cfg: cfg}
	if cfg.APIKey != "" {
		c.api = openai.NewClient(cfg.APIKey)
	}
	return c
}

func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: completionTemperature,
		MaxTokens:   c.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", errs.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", errs.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
