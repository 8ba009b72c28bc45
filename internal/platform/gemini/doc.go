// Package gemini implements generation.Generator on top of Google's Gemini API.
//
// The generator renders a prompt for a single vocabulary word, asks the model
// for a JSON object holding a Russian example sentence and its Uzbek
// translation, and validates the reply before handing it back.
//
// Transient failures (rate limiting, server errors, network errors) are
// retried with exponential backoff and jitter. Blocked content and malformed
// replies are permanent and returned immediately.
package gemini
