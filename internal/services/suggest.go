package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"todo-manager/backend/internal/ai"
)

var (
	ErrEmptyText         = errors.New("text is required")
	ErrSuggestionService = errors.New("suggestion service failed")
)

const fallbackCategory = "Other"

var dateShape = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Suggestion is always fully populated: the parser falls back to "Other"
// and today+7d whenever the model reply is unusable.
type Suggestion struct {
	Category string `json:"category"`
	DueDate  string `json:"dueDate"`
}

type SuggestService interface {
	SuggestTodo(ctx context.Context, text string) (Suggestion, error)
}

type SuggestServiceImpl struct {
	generator ai.TextGenerator
}

func NewSuggestService(generator ai.TextGenerator) *SuggestServiceImpl {
	return &SuggestServiceImpl{generator: generator}
}

// SuggestTodo asks the generative service for a category and a due date for
// the given task title and normalizes whatever comes back.
func (s *SuggestServiceImpl) SuggestTodo(ctx context.Context, text string) (Suggestion, error) {
	if strings.TrimSpace(text) == "" {
		return Suggestion{}, ErrEmptyText
	}

	reply, err := s.generator.GenerateText(ctx, buildSuggestionPrompt(text))
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", ErrSuggestionService, err)
	}

	return parseSuggestion(reply, time.Now()), nil
}

func buildSuggestionPrompt(text string) string {
	return fmt.Sprintf(`Based on this task description: "%s"

Please suggest:
1. A category (choose from: Work, Personal, Health, Shopping, Learning, Finance, Travel, or Other)
2. A realistic due date (in YYYY-MM-DD format, considering the task complexity)

Respond in this exact format:
Category: [category]
Due Date: [YYYY-MM-DD]

If the task seems urgent, suggest a sooner date. If it's a long-term goal, suggest a later date.`, text)
}

// parseSuggestion scans the reply line by line. A line containing
// "category:" (any case) contributes the text after its first colon; a line
// containing "due date:" contributes the first YYYY-MM-DD-shaped substring.
// Missing or invalid values fall back to "Other" and now+7d, so the result
// is total regardless of how mangled the reply is.
func parseSuggestion(reply string, now time.Time) Suggestion {
	category := fallbackCategory
	dueDate := ""

	for _, line := range strings.Split(reply, "\n") {
		lower := strings.ToLower(line)

		if strings.Contains(lower, "category:") {
			if parts := strings.SplitN(line, ":", 2); len(parts) == 2 {
				if value := strings.TrimSpace(parts[1]); value != "" {
					category = value
				}
			}
		}

		if strings.Contains(lower, "due date:") {
			if match := dateShape.FindString(line); match != "" {
				dueDate = match
			}
		}
	}

	if !isValidDate(dueDate) {
		dueDate = now.AddDate(0, 0, 7).Format("2006-01-02")
	}

	return Suggestion{Category: category, DueDate: dueDate}
}

// isValidDate requires both the exact YYYY-MM-DD shape and a real calendar
// date (time.Parse rejects things like 2025-02-30).
func isValidDate(value string) bool {
	if len(value) != 10 || !dateShape.MatchString(value) {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
