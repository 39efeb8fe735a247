package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

type DraftSuggestion struct {
	Content string `json:"content"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// DraftSuggestionsFromText extracts improvement suggestions for a project from
// free-form notes using OpenAI GPT
func (s *AIService) DraftSuggestionsFromText(ctx context.Context, projectName, text string) ([]DraftSuggestion, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are an assistant that extracts actionable suggestions for a team project.

Project: %s

Notes:
%s

Return a JSON array of suggestions in this exact shape:
[
  {
    "content": "one concrete, self-contained suggestion"
  }
]

Rules:
- Return an empty array [] if the notes contain no usable suggestion
- Each suggestion must be a single sentence the team can act on
- Return JSON only, with no surrounding explanation`, projectName, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var suggestions []DraftSuggestion
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return suggestions, nil
}
