package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestionService_DraftSuggestions_NotConfigured(t *testing.T) {
	service := NewSuggestionService(nil)

	_, err := service.DraftSuggestions(context.Background(), "Project", "some notes")
	require.ErrorIs(t, err, ErrAIServiceNotConfigured)
}
