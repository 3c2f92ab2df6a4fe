package request_normalizer

import (
	"fmt"
	"strings"

	"phrase-bridge/pkg/types"
)

// MissingFieldsError reports which required fields were empty after
// normalization. Text presence is reported without its content.
type MissingFieldsError struct {
	SourceLang string
	TargetLang string
	Text       bool
}

func (e *MissingFieldsError) Error() string {
	var missing []string
	if e.SourceLang == "" {
		missing = append(missing, "source_lang")
	}
	if e.TargetLang == "" {
		missing = append(missing, "target_lang")
	}
	if !e.Text {
		missing = append(missing, "text")
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", "))
}

// Details converts the error into its response payload.
func (e *MissingFieldsError) Details() types.MissingFieldsDetails {
	return types.MissingFieldsDetails{
		SourceLang: e.SourceLang,
		TargetLang: e.TargetLang,
		Text:       e.Text,
	}
}

// Normalize reconciles snake_case and camelCase field names, trims every
// field and lower-cases the language codes.
func Normalize(payload map[string]any) (types.TranslationQuery, *MissingFieldsError) {
	query := types.TranslationQuery{
		SourceLang: languageField(payload, "source_lang", "sourceLang"),
		TargetLang: languageField(payload, "target_lang", "targetLang"),
		Text:       strings.TrimSpace(stringField(payload, "text")),
	}

	if query.SourceLang == "" || query.TargetLang == "" || query.Text == "" {
		return types.TranslationQuery{}, &MissingFieldsError{
			SourceLang: query.SourceLang,
			TargetLang: query.TargetLang,
			Text:       query.Text != "",
		}
	}

	return query, nil
}

// languageField prefers the snake_case key when it holds a non-empty value.
func languageField(payload map[string]any, snake, camel string) string {
	value := strings.TrimSpace(stringField(payload, snake))
	if value == "" {
		value = strings.TrimSpace(stringField(payload, camel))
	}
	return strings.ToLower(value)
}

// stringField returns the value under key, or "" when it is absent or not a string.
func stringField(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	s, _ := payload[key].(string)
	return s
}
