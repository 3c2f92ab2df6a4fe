package translator_provider

import "context"

// TranslatorProvider defines the interface that all translation models must implement
type TranslatorProvider interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// GenerativeProviderType represents the type of translation model
type GenerativeProviderType string

const (
	ProviderDisabled GenerativeProviderType = "disabled"
	ProviderHTTP     GenerativeProviderType = "http"
	ProviderOpenAI   GenerativeProviderType = "openai"
	ProviderGemini   GenerativeProviderType = "gemini"
)
