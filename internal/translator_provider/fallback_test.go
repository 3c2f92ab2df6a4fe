package translator_provider

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"phrase-bridge/internal/third_party/httpmodel"
)

type stubProvider struct {
	translation string
	err         error
	delay       time.Duration
	calls       atomic.Int32
}

func (s *stubProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.translation, s.err
}

func TestFallback_Translate(t *testing.T) {
	provider := &stubProvider{translation: "X"}
	f := NewFallback(zap.NewNop(), ProviderHTTP, provider, time.Second)

	got, ok := f.Translate(context.Background(), "text", "en", "es")
	if !ok {
		t.Fatal("expected a translation")
	}
	if got != "X" {
		t.Errorf("expected X, got %q", got)
	}
}

func TestFallback_Disabled(t *testing.T) {
	f := NewFallback(zap.NewNop(), ProviderHTTP, nil, time.Second)

	if f.Enabled() {
		t.Error("expected fallback to be disabled")
	}
	if _, ok := f.Translate(context.Background(), "text", "en", "es"); ok {
		t.Error("expected no translation from disabled fallback")
	}
}

func TestFallback_ProviderError(t *testing.T) {
	f := NewFallback(zap.NewNop(), ProviderHTTP, &stubProvider{err: errors.New("boom")}, time.Second)

	if _, ok := f.Translate(context.Background(), "text", "en", "es"); ok {
		t.Error("expected no translation on provider error")
	}
}

func TestFallback_EmptyTranslation(t *testing.T) {
	f := NewFallback(zap.NewNop(), ProviderHTTP, &stubProvider{translation: "  "}, time.Second)

	if _, ok := f.Translate(context.Background(), "text", "en", "es"); ok {
		t.Error("expected blank translation to count as absent")
	}
}

func TestFallback_Timeout(t *testing.T) {
	provider := &stubProvider{translation: "late", delay: time.Second}
	f := NewFallback(zap.NewNop(), ProviderHTTP, provider, 20*time.Millisecond)

	start := time.Now()
	if _, ok := f.Translate(context.Background(), "text", "en", "es"); ok {
		t.Error("expected no translation after timeout")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("expected call to be bounded by the timeout, took %v", elapsed)
	}
}

func TestFallback_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	provider := &stubProvider{err: errors.New("unavailable")}
	f := NewFallback(zap.NewNop(), ProviderHTTP, provider, time.Second)

	for i := 0; i < 8; i++ {
		if _, ok := f.Translate(context.Background(), "text", "en", "es"); ok {
			t.Fatal("expected no translation")
		}
	}

	if calls := provider.calls.Load(); calls != 5 {
		t.Errorf("expected breaker to stop calls after 5 failures, got %d calls", calls)
	}
}

// perTextProvider answers from a fixed table and fails like a healthy model
// without an answer for anything else.
type perTextProvider struct {
	answers map[string]string
	err     error
	calls   atomic.Int32
}

func (p *perTextProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	p.calls.Add(1)
	if answer, ok := p.answers[text]; ok {
		return answer, nil
	}
	return "", p.err
}

func TestFallback_BreakerIgnoresHealthyMisses(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"missing translation", httpmodel.ErrMissingTranslation},
		{"wrapped missing translation", fmt.Errorf("model: %w", httpmodel.ErrMissingTranslation)},
		{"client went away", context.Canceled},
		{"blank translation", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &perTextProvider{answers: map[string]string{"bar": "X", "blank": "  "}, err: tt.err}
			f := NewFallback(zap.NewNop(), ProviderHTTP, provider, time.Second)

			miss := "foo"
			if tt.err == nil {
				miss = "blank"
			}
			for i := 0; i < 10; i++ {
				if _, ok := f.Translate(context.Background(), miss, "en", "es"); ok {
					t.Fatal("expected no translation")
				}
			}

			got, ok := f.Translate(context.Background(), "bar", "en", "es")
			if !ok || got != "X" {
				t.Errorf("expected X after healthy misses, got %q (ok=%v)", got, ok)
			}
			if calls := provider.calls.Load(); calls != 11 {
				t.Errorf("expected every call to reach the model, got %d", calls)
			}
		})
	}
}

func TestFallback_TimeoutsTripBreaker(t *testing.T) {
	provider := &stubProvider{translation: "late", delay: time.Second}
	f := NewFallback(zap.NewNop(), ProviderHTTP, provider, 10*time.Millisecond)

	for i := 0; i < 7; i++ {
		f.Translate(context.Background(), "text", "en", "es")
	}

	if calls := provider.calls.Load(); calls != 5 {
		t.Errorf("expected breaker to open after 5 timeouts, got %d calls", calls)
	}
}

func TestNewFallback_DefaultTimeout(t *testing.T) {
	f := NewFallback(zap.NewNop(), ProviderHTTP, &stubProvider{}, 0)
	if f.timeout != DefaultTimeout {
		t.Errorf("expected %v, got %v", DefaultTimeout, f.timeout)
	}
}
