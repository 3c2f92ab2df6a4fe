package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"phrase-bridge/internal/third_party/prompt"
	"phrase-bridge/pkg/types"
)

const defaultModel = "gemini-2.5-flash"

type Client struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(geminiConfig types.GeminiConfig, model string) (*Client, error) {
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{
		client: client,
		model:  model,
	}, nil
}

// Translate asks Gemini for a translation of text.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		[]*genai.Content{
			{
				Role: "user",
				Parts: []*genai.Part{
					{
						Text: prompt.BuildTranslationPrompt(text, sourceLang, targetLang),
					},
				},
			},
		},
		&genai.GenerateContentConfig{},
	)
	if err != nil {
		return "", fmt.Errorf("gemini translate: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
