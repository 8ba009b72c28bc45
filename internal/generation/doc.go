// Package generation defines how the application asks a language model for
// example sentences, without coupling callers to a specific provider. The
// Gemini implementation lives in internal/platform/gemini.
package generation
