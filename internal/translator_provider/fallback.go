package translator_provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"phrase-bridge/internal/third_party/httpmodel"
)

const DefaultTimeout = 5 * time.Second

// Fallback calls the translation model when the lookup tables have no match.
// It absorbs every failure: callers only learn whether a translation exists.
type Fallback struct {
	logger   *zap.Logger
	provider TranslatorProvider
	name     GenerativeProviderType
	timeout  time.Duration
	breaker  *gobreaker.CircuitBreaker
}

// NewFallback wraps provider with a per-call timeout and a circuit breaker.
// A nil provider gives a disabled fallback.
func NewFallback(logger *zap.Logger, name GenerativeProviderType, provider TranslatorProvider, timeout time.Duration) *Fallback {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if provider == nil {
		name = ProviderDisabled
	}

	f := &Fallback{
		logger:   logger,
		provider: provider,
		name:     name,
		timeout:  timeout,
	}
	f.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        string(name),
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: modelHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("model circuit breaker state changed",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return f
}

// modelHealthy tells the breaker which errors still mean the model is up.
// Only transport failures, timeouts and error statuses count against it.
func modelHealthy(err error) bool {
	return err == nil ||
		errors.Is(err, httpmodel.ErrMissingTranslation) ||
		errors.Is(err, context.Canceled)
}

// Enabled reports whether a model is configured.
func (f *Fallback) Enabled() bool {
	return f.provider != nil
}

// Translate returns the model translation and true, or false when the model
// is disabled, fails, times out or returns nothing.
func (f *Fallback) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, bool) {
	if f.provider == nil {
		f.logger.Warn("model translation endpoint is not configured")
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	out, err := f.breaker.Execute(func() (interface{}, error) {
		return f.provider.Translate(ctx, text, sourceLang, targetLang)
	})
	if err != nil {
		fields := []zap.Field{
			zap.String("provider", string(f.name)),
			zap.String("source_language", sourceLang),
			zap.String("target_language", targetLang),
			zap.Error(err),
		}
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			f.logger.Warn("model translation skipped", fields...)
		case errors.Is(err, httpmodel.ErrMissingTranslation):
			f.logger.Warn("model response has no translation", fields...)
		case errors.Is(err, context.DeadlineExceeded):
			f.logger.Error("model translation timed out", append(fields, zap.Duration("timeout", f.timeout))...)
		default:
			f.logger.Error("model translation failed", fields...)
		}
		return "", false
	}

	translation := out.(string)
	if strings.TrimSpace(translation) == "" {
		f.logger.Info("model returned an empty translation",
			zap.String("provider", string(f.name)),
			zap.String("source_language", sourceLang),
			zap.String("target_language", targetLang),
		)
		return "", false
	}
	return translation, true
}
