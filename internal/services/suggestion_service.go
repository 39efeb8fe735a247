package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/collab-dashboard-api/internal/constants"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoSuggestions        = errors.New("AI did not produce any suggestions")
	ErrAINoValidSuggestions   = errors.New("no valid suggestions could be drafted from AI output")
)

// SuggestionService drafts project suggestions from free text.
type SuggestionService struct {
	aiService *AIService
}

// NewSuggestionService creates a new SuggestionService.
func NewSuggestionService(aiService *AIService) *SuggestionService {
	return &SuggestionService{
		aiService: aiService,
	}
}

// DraftSuggestions validates and filters AI-drafted suggestions.
func (s *SuggestionService) DraftSuggestions(ctx context.Context, projectName, text string) ([]DraftSuggestion, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	drafts, err := s.aiService.DraftSuggestionsFromText(ctx, projectName, text)
	if err != nil {
		return nil, fmt.Errorf("failed to draft suggestions: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoSuggestions
	}
	if len(drafts) > constants.MaxDraftSuggestions {
		return nil, fmt.Errorf("AI drafted too many suggestions (max %d)", constants.MaxDraftSuggestions)
	}

	valid := make([]DraftSuggestion, 0, len(drafts))
	for _, draft := range drafts {
		if strings.TrimSpace(draft.Content) == "" {
			continue
		}
		valid = append(valid, draft)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidSuggestions
	}

	return valid, nil
}
