package translator_provider

import (
	"fmt"

	"phrase-bridge/internal/third_party/gemini"
	"phrase-bridge/internal/third_party/httpmodel"
	phrasebridge_openai "phrase-bridge/internal/third_party/openai"
	"phrase-bridge/pkg/types"
)

// Factory creates translator providers based on the specified type
type Factory struct {
	config *types.Config
}

// NewFactory creates a new provider factory
func NewFactory(config *types.Config) *Factory {
	return &Factory{
		config: config,
	}
}

// ProviderType returns the configured provider type. Without an explicit
// provider, a configured endpoint selects the HTTP model and no endpoint
// disables the fallback.
func (f *Factory) ProviderType() GenerativeProviderType {
	switch f.config.Model.Provider {
	case "":
		if f.config.Model.Endpoint == "" {
			return ProviderDisabled
		}
		return ProviderHTTP
	case "none", "off":
		return ProviderDisabled
	default:
		return GenerativeProviderType(f.config.Model.Provider)
	}
}

// CreateProvider creates a translator provider based on the specified type.
// ProviderDisabled yields a nil provider.
func (f *Factory) CreateProvider(providerType GenerativeProviderType) (TranslatorProvider, error) {
	switch providerType {
	case ProviderDisabled:
		return nil, nil
	case ProviderHTTP:
		if f.config.Model.Endpoint == "" {
			return nil, fmt.Errorf("MODEL_ENDPOINT is required for the %s provider", providerType)
		}
		return httpmodel.NewHTTPModelClient(f.config.Model.Endpoint, f.config.Model.Timeout), nil
	case ProviderOpenAI:
		if f.config.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the %s provider", providerType)
		}
		return phrasebridge_openai.NewOpenAIClient(f.config.OpenAI, f.config.Model.Name), nil
	case ProviderGemini:
		if f.config.Gemini.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the %s provider", providerType)
		}
		client, err := gemini.NewGeminiClient(f.config.Gemini, f.config.Model.Name)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
