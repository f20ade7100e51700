package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GenerativeClientInterface is the single capability the planner needs from a text
// model: turn a prompt into raw text that should contain itinerary JSON. No semantic
// guarantees; callers must validate.
type GenerativeClientInterface interface {
	GenerateItineraryJSON(ctx context.Context, prompt string) (string, error)
	Close() error
}

// GeminiClient implements GenerativeClientInterface using Google's Gemini models
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(apiKey, model string) (GenerativeClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) GenerateItineraryJSON(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output so fence stripping is rarely needed
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.7)
	m.SetTopP(0.8)
	m.SetMaxOutputTokens(6000)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 25*time.Second)
	defer cancel()

	resp, err := m.GenerateContent(ctxWithTimeout, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// NewGenerativeClient Factory function to create either an OpenAI or Gemini client
// based on config
func NewGenerativeClient(provider, apiKey, model string) (GenerativeClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	case "gemini", "":
		return NewGeminiClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
