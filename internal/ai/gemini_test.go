package ai

import (
	"context"
	"errors"
	"testing"

	"todo-manager/backend/internal/config"

	"google.golang.org/genai"
)

func TestNewGeminiGenerator_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), config.AIConfig{Model: "gemini-2.0-flash-001"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewGeminiGenerator_RequiresModel(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), config.AIConfig{APIKey: "key"})
	if err == nil {
		t.Error("Expected error for empty model name")
	}
}

func TestGenerateText_EmptyPrompt(t *testing.T) {
	g := &GeminiGenerator{model: "gemini-2.0-flash-001"}

	_, err := g.GenerateText(context.Background(), "")
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("Expected ErrEmptyPrompt, got %v", err)
	}
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "Category: Work\n"},
						{Text: "Due Date: 2025-03-01"},
					},
				},
			},
		},
	}

	text, err := extractText(resp)
	if err != nil {
		t.Fatalf("Expected text, got error %v", err)
	}
	if text != "Category: Work\nDue Date: 2025-03-01" {
		t.Errorf("Unexpected concatenated text: %q", text)
	}
}

func TestExtractText_InvalidResponses(t *testing.T) {
	cases := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{}},
		}},
		{"no text parts", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{}}}},
			},
		}},
	}

	for _, tc := range cases {
		if _, err := extractText(tc.resp); !errors.Is(err, ErrInvalidResponse) {
			t.Errorf("%s: expected ErrInvalidResponse, got %v", tc.name, err)
		}
	}
}
