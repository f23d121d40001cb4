package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// GeminiClient generates text through the Gemini API
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiClient creates a Gemini client from model configuration
func NewGeminiClient(ctx context.Context, cfg config.ModelConfig) (*GeminiClient, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.GeminiURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.GeminiURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{
		client:      client,
		model:       cfg.GeminiModel,
		temperature: float32(cfg.Temperature),
	}, nil
}

// Name identifies the model, for logs
func (g *GeminiClient) Name() string {
	return "gemini/" + g.model
}

// Generate returns the text of the first candidate
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return text, nil
}
