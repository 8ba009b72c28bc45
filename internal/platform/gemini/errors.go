package gemini

import "errors"

// ErrEmptyWord is returned when the word has no source text to build a prompt from.
var ErrEmptyWord = errors.New("word text cannot be empty")
