package translation_resolver

import "phrase-bridge/pkg/types"

// Kind classifies the outcome of a lookup.
type Kind int

const (
	NotFound Kind = iota
	ExactMatch
	ModelMatch
	UnsupportedPair
)

func (k Kind) String() string {
	switch k {
	case ExactMatch:
		return "exact"
	case ModelMatch:
		return "model"
	case UnsupportedPair:
		return "unsupported"
	default:
		return "not_found"
	}
}

const (
	OriginDatabase = "database"
	OriginModel    = "translationModel"

	NoTranslationMessage = "No translation found"
)

// Result is the outcome of resolving one query.
type Result struct {
	Kind           Kind
	OriginalText   string
	Translation    *string
	SourceLang     string
	TargetLang     string
	SupportedPairs []string
}

// MatchType is "exact" or "model" for matches and empty otherwise.
func (r Result) MatchType() string {
	switch r.Kind {
	case ExactMatch, ModelMatch:
		return r.Kind.String()
	}
	return ""
}

// Origin names where the translation came from.
func (r Result) Origin() string {
	switch r.Kind {
	case ExactMatch:
		return OriginDatabase
	case ModelMatch:
		return OriginModel
	}
	return ""
}

// Response renders a match or not-found result as its response body.
func (r Result) Response() types.TranslationResponse {
	resp := types.TranslationResponse{
		OriginalText: r.OriginalText,
		Translation:  r.Translation,
		SourceLang:   r.SourceLang,
		TargetLang:   r.TargetLang,
		MatchType:    r.MatchType(),
		Source:       r.Origin(),
	}
	if r.Kind == NotFound {
		resp.Translation = nil
		resp.Message = NoTranslationMessage
	}
	return resp
}
