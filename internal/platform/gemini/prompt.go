package gemini

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Husniddin989/rustili-lug-at/internal/domain"
)

const promptText = `You are helping an Uzbek speaker learn Russian vocabulary.
Write one short, natural Russian sentence that uses the word "{{.Source}}"
({{.Category}}, meaning "{{.Target}}" in Uzbek). Then translate the sentence into Uzbek.
Keep the sentence under 12 words and suitable for a beginner.
Reply with JSON only, in the form:
{"example": "<Russian sentence>", "example_translation": "<Uzbek translation>"}`

var promptTemplate = template.Must(template.New("example").Parse(promptText))

type promptData struct {
	Source   string
	Target   string
	Category string
}

func buildPrompt(word *domain.Word) (string, error) {
	if word == nil || strings.TrimSpace(word.SourceText) == "" {
		return "", ErrEmptyWord
	}

	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, promptData{
		Source:   strings.TrimSpace(word.SourceText),
		Target:   strings.TrimSpace(word.TargetText),
		Category: string(word.Category),
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
