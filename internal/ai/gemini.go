package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"todo-manager/backend/internal/config"

	"google.golang.org/genai"
)

var (
	ErrMissingAPIKey   = errors.New("gemini API key is not configured")
	ErrEmptyPrompt     = errors.New("prompt cannot be empty")
	ErrInvalidResponse = errors.New("invalid response from model")
)

// TextGenerator is the minimal contract the suggestion service needs from a
// generative-text backend: one prompt in, one freeform completion out.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator implements TextGenerator against Google's Gemini API.
type GeminiGenerator struct {
	client     *genai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
}

func NewGeminiGenerator(ctx context.Context, cfg config.AIConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, errors.New("model name cannot be empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:     client,
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// GenerateText sends the prompt and returns the concatenated text parts of
// the first candidate. Transient API failures are retried with a flat delay
// up to maxRetries; an empty or text-free candidate is permanent.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("Retrying Gemini call (attempt %d/%d): %v", attempt+1, g.maxRetries+1, lastErr)
			select {
			case <-time.After(g.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			lastErr = err
			continue
		}

		text, err := extractText(resp)
		if err != nil {
			return "", err
		}
		return text, nil
	}

	return "", fmt.Errorf("gemini call failed after %d attempts: %w", g.maxRetries+1, lastErr)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content", ErrInvalidResponse)
	}

	text := ""
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text += part.Text
		}
	}

	if text == "" {
		return "", fmt.Errorf("%w: no text parts", ErrInvalidResponse)
	}

	return text, nil
}
