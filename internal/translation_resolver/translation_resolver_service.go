package translation_resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"phrase-bridge/internal/language_pair"
	"phrase-bridge/pkg/types"
)

// ErrStorage marks failures of the lookup table store.
var ErrStorage = errors.New("storage failure")

// PairStoreInterface defines the lookup table operations the resolver needs
type PairStoreInterface interface {
	TableExists(ctx context.Context, table string) (bool, error)
	LookupExact(ctx context.Context, table, text string) (string, bool, error)
	ListTables(ctx context.Context) ([]string, error)
}

// ModelFallbackInterface translates text when no table entry matches. It
// reports absence instead of errors.
type ModelFallbackInterface interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, bool)
}

// TranslationResolverService resolves normalized queries against the lookup
// tables and the model fallback.
type TranslationResolverService struct {
	logger   *zap.Logger
	store    PairStoreInterface
	fallback ModelFallbackInterface
}

// NewTranslationResolverService creates a new instance of TranslationResolverService
func NewTranslationResolverService(logger *zap.Logger, store PairStoreInterface, fallback ModelFallbackInterface) *TranslationResolverService {
	return &TranslationResolverService{
		logger:   logger,
		store:    store,
		fallback: fallback,
	}
}

// Resolve looks the query up in its pair table and falls back to the model on
// a miss. Expected outcomes are reported through Result.Kind; the error is
// only set for storage failures and wraps ErrStorage.
func (s *TranslationResolverService) Resolve(ctx context.Context, query types.TranslationQuery) (Result, error) {
	result := Result{
		OriginalText: query.Text,
		SourceLang:   query.SourceLang,
		TargetLang:   query.TargetLang,
	}

	table, err := language_pair.TableName(query.SourceLang, query.TargetLang)
	if err != nil {
		s.logger.Info("rejected language pair",
			zap.String("source_language", query.SourceLang),
			zap.String("target_language", query.TargetLang),
			zap.Error(err),
		)
		return s.unsupported(ctx, result), nil
	}

	exists, err := s.store.TableExists(ctx, table)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if !exists {
		return s.unsupported(ctx, result), nil
	}

	translation, found, err := s.store.LookupExact(ctx, table, query.Text)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if found {
		result.Kind = ExactMatch
		result.Translation = &translation
		return result, nil
	}

	s.logger.Debug("no exact match, trying model",
		zap.String("table", table),
	)

	if translation, ok := s.fallback.Translate(ctx, query.Text, query.SourceLang, query.TargetLang); ok {
		result.Kind = ModelMatch
		result.Translation = &translation
		return result, nil
	}

	result.Kind = NotFound
	return result, nil
}

// SupportedPairs lists the language pairs that have a lookup table, as
// sorted "source-target" strings. Tables that do not name a valid pair are
// skipped.
func (s *TranslationResolverService) SupportedPairs(ctx context.Context) ([]string, error) {
	tables, err := s.store.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	seen := make(map[string]struct{}, len(tables))
	pairs := make([]string, 0, len(tables))
	for _, table := range tables {
		pair, ok := language_pair.ParseTableName(table)
		if !ok {
			continue
		}
		name := pair.String()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		pairs = append(pairs, name)
	}
	sort.Strings(pairs)
	return pairs, nil
}

// unsupported builds an UnsupportedPair result. A failure to list the pairs
// degrades to an empty list.
func (s *TranslationResolverService) unsupported(ctx context.Context, result Result) Result {
	pairs, err := s.SupportedPairs(ctx)
	if err != nil {
		s.logger.Error("error getting supported pairs", zap.Error(err))
		pairs = []string{}
	}
	result.Kind = UnsupportedPair
	result.SupportedPairs = pairs
	return result
}
