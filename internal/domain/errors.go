package domain

import "errors"

var (
	// ErrValidation wraps every rule a word or its fields can break.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID marks a malformed or missing identifier.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidCategory marks a category outside the known set.
	ErrInvalidCategory = errors.New("invalid category")
)
