package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

const defaultOpenAIBaseURL = "https://api.openai.com"

// ChatClient generates text through an OpenAI-compatible chat completion API
type ChatClient struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewChatClient creates a chat client from model configuration. BaseURL is the
// API host without the /v1 suffix. Callers bound each call.
func NewChatClient(cfg config.ModelConfig) *ChatClient {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultOpenAIBaseURL
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = base + "/v1"

	return &ChatClient{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Name,
		temperature: float32(cfg.Temperature),
	}
}

// Name identifies the model, for logs
func (c *ChatClient) Name() string {
	return "openai/" + c.model
}

// Generate sends prompt as a single user message and returns the assistant content
func (c *ChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from chat completion")
	}
	return resp.Choices[0].Message.Content, nil
}
