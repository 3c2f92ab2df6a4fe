package prompt

import (
	"fmt"
	"strings"
)

// BuildTranslationPrompt asks a generative model for a bare translation of text.
func BuildTranslationPrompt(text, source, target string) string {
	b := strings.Builder{}
	b.WriteString("You are a professional translator.\n")
	b.WriteString(fmt.Sprintf("Source language: %s\n", source))
	b.WriteString(fmt.Sprintf("Target language: %s\n", target))
	b.WriteString("Translate the following SOURCE_TEXT. Respond with the translated text only, without quotes, notes or explanations.\n")
	b.WriteString("SOURCE_TEXT:\n")
	b.WriteString(text)
	return b.String()
}
