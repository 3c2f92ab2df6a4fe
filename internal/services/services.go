package services

import "phrase-bridge/internal/translation_resolver"

// Services holds all application services
type Services struct {
	TranslationResolverService *translation_resolver.TranslationResolverService
}

// NewServices creates and initializes all services
func NewServices(resolverService *translation_resolver.TranslationResolverService) *Services {
	return &Services{
		TranslationResolverService: resolverService,
	}
}
