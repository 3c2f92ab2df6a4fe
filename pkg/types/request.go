package types

// TranslationQuery is a normalized translation request. All fields are
// trimmed and the language codes are lower-cased.
type TranslationQuery struct {
	SourceLang string
	TargetLang string
	Text       string
}

type TranslationResponse struct {
	OriginalText string  `json:"originalText"`
	Translation  *string `json:"translation"`
	SourceLang   string  `json:"sourceLang"`
	TargetLang   string  `json:"targetLang"`
	MatchType    string  `json:"matchType,omitempty"`
	Source       string  `json:"source,omitempty"`
	Message      string  `json:"message,omitempty"`
}

type MissingFieldsDetails struct {
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	Text       bool   `json:"text"`
}

type MissingFieldsResponse struct {
	Error   string               `json:"error"`
	Details MissingFieldsDetails `json:"details"`
}

type UnsupportedPairResponse struct {
	Error          string   `json:"error"`
	SupportedPairs []string `json:"supportedPairs"`
}

type SupportedPairsResponse struct {
	SupportedPairs []string `json:"supportedPairs"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}
