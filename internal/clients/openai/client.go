// Package openai provides a client for the OpenAI chat completions API
package openai

import (
	"context"
	"fmt"

	gopenai "github.com/sashabaranov/go-openai"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/insight"
	"github.com/bobmcallan/finsight/internal/models"
)

const DefaultModel = "gpt-4o-mini"

// Client implements the InsightClient interface via OpenAI
type Client struct {
	client *gopenai.Client
	model  string
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new OpenAI client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		client: gopenai.NewClient(apiKey),
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name identifies the provider
func (c *Client) Name() string { return "openai" }

// Summarize generates portfolio commentary and a sentiment label
func (c *Client) Summarize(ctx context.Context, req *models.InsightRequest) (*models.Insight, error) {
	c.logger.Debug().Str("model", c.model).Int("holdings", len(req.Holdings)).Msg("Generating portfolio insights")

	resp, err := c.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.3,
		ResponseFormat: &gopenai.ChatCompletionResponseFormat{
			Type: gopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleSystem, Content: insight.SystemPrompt},
			{Role: gopenai.ChatMessageRoleUser, Content: insight.BuildSummarizePrompt(req)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	parsed, err := insight.ParseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	parsed.Provider = c.Name()
	return parsed, nil
}
