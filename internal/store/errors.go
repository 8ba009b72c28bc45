package store

import (
	"errors"
	"fmt"
)

// Generic outcomes every store maps its driver errors onto. The entity
// variants below wrap them, so errors.Is against a generic sentinel matches
// every entity.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrDuplicate     = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")
)

var (
	ErrWordNotFound     = fmt.Errorf("%w: word", ErrNotFound)
	ErrWordExists       = fmt.Errorf("%w: word", ErrDuplicate)
	ErrTaskNotFound     = fmt.Errorf("%w: task", ErrNotFound)
	ErrProgressNotFound = fmt.Errorf("%w: progress", ErrNotFound)
)

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is, or wraps, ErrDuplicate.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
