package generation

import "errors"

// Generator implementations wrap one of these so callers can decide
// whether a retry makes sense.
var (
	ErrGenerationFailed   = errors.New("failed to generate example")
	ErrInvalidResponse    = errors.New("model returned an unusable example")
	ErrContentBlocked     = errors.New("model refused the prompt")
	ErrTransientFailure   = errors.New("temporary model failure")
	ErrInvalidConfig      = errors.New("invalid generator configuration")
	ErrGenerationDisabled = errors.New("example generation is disabled")
)
