package phrasebridge_openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"

	"phrase-bridge/internal/third_party/prompt"
	"phrase-bridge/pkg/types"
)

const defaultModel = "gpt-5-nano"

type Client struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(openAIConfig types.OpenAIConfig, model string, opts ...option.RequestOption) *Client {
	if model == "" {
		model = defaultModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(openAIConfig.APIKey)}, opts...)
	c := openai.NewClient(opts...)
	return &Client{client: &c, model: model}
}

// Translate asks the Responses API for a translation of text.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: shared.ResponsesModel(c.model),
		Input: responses.ResponseNewParamsInputUnion{OfString: openai.String(prompt.BuildTranslationPrompt(text, sourceLang, targetLang))},
	})
	if err != nil {
		return "", fmt.Errorf("openai translate: %w", err)
	}
	return strings.TrimSpace(resp.OutputText()), nil
}
