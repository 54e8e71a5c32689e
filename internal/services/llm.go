package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// CompletionClient is the single capability the pipelines need from the LLM:
// one system+user message pair in, raw completion text out. Tests substitute
// a deterministic stub.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type geminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(apiKey, modelName string) (CompletionClient, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Complete implements CompletionClient. Temperature is pinned at 0 for
// maximal determinism; no retry is attempted on failure.
func (g *geminiClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	temperature := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(userPrompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}
