package domain

import (
	"fmt"
	"strings"
)

// Category groups words by part of speech or usage.
type Category string

// Known categories.
const (
	CategoryGreeting  Category = "greeting"
	CategoryVerb      Category = "verb"
	CategoryNoun      Category = "noun"
	CategoryAdjective Category = "adjective"
	CategoryNumber    Category = "number"
	CategoryPhrase    Category = "phrase"
)

// DefaultCategory is used when a word is added without a category.
const DefaultCategory = CategoryNoun

// defaultCategoryIcon is shown for values outside the known set.
const defaultCategoryIcon = "📝"

var categoryIcons = map[Category]string{
	CategoryGreeting:  "👋",
	CategoryVerb:      "🏃",
	CategoryNoun:      "🏠",
	CategoryAdjective: "🎨",
	CategoryNumber:    "🔢",
	CategoryPhrase:    "💬",
}

var categoryLabels = map[Category]string{
	CategoryGreeting:  "Greetings",
	CategoryVerb:      "Verbs",
	CategoryNoun:      "Nouns",
	CategoryAdjective: "Adjectives",
	CategoryNumber:    "Numbers",
	CategoryPhrase:    "Phrases",
}

// AllCategories returns the known categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryGreeting,
		CategoryVerb,
		CategoryNoun,
		CategoryAdjective,
		CategoryNumber,
		CategoryPhrase,
	}
}

// Icon returns the emoji shown next to the category.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return defaultCategoryIcon
}

// Label returns the human readable name of the category.
// Unknown values are returned as-is.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	_, ok := categoryIcons[c]
	return ok
}

// ParseCategory converts user input into a Category.
// Matching ignores case and surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}
