package analysis

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiGenerator generates text through one named Gemini model.
type GeminiGenerator struct {
	apiKey string
	model  string
}

// NewGeminiGenerator creates a generator bound to a single Gemini model.
func NewGeminiGenerator(apiKey, model string) *GeminiGenerator {
	return &GeminiGenerator{apiKey: apiKey, model: model}
}

// Name identifies the backend attempt in logs and error chains.
func (g *GeminiGenerator) Name() string {
	return "gemini:" + g.model
}

// Generate sends the prompt to the model and returns its text response.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content with %s: %w", g.model, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response from %s", g.model)
	}
	return text, nil
}

var _ Generator = (*GeminiGenerator)(nil)
