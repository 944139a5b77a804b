package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Suggester drafts item descriptions with Gemini. It is optional
// infrastructure: when no API key is configured the feature stays off and
// the rest of the marketplace is unaffected.
type Suggester struct {
	client *genai.Client
}

func NewSuggester(ctx context.Context, apiKey string) (*Suggester, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Suggester{client: client}, nil
}

func (s *Suggester) Close() error {
	return s.client.Close()
}

// SuggestDescription asks the model for a short catalog description based
// on the item's name and category.
func (s *Suggester) SuggestDescription(ctx context.Context, name, category string) (string, error) {
	model := s.client.GenerativeModel("gemini-1.5-flash")

	prompt := fmt.Sprintf(
		"Write a two-sentence marketplace listing description for an item named %q in the category %q. "+
			"Plain text only, no headings, no emoji.", name, category)

	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("error generating description: %w", err)
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from model")
	}

	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text in model response")
	}
	return strings.TrimSpace(b.String()), nil
}
