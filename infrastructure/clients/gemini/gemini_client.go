package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"tubelens/domain/repository"
	"tubelens/infrastructure/configuration"
	"tubelens/infrastructure/logger"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient dials the Gemini API with the configured key. The model
// name comes from configuration so operators can switch models without a
// rebuild.
func NewGeminiClient(ctx context.Context, cfg *configuration.GeminiConfig) (repository.IGenAI, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.Model}, nil
}

func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("gemini: generate content failed")
		return "", err
	}
	return resp.Text(), nil
}
