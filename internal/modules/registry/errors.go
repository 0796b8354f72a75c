package registry

import "errors"

var (
	ErrNotFound          = errors.New("equipment not found")
	ErrInvalidTransition = errors.New("invalid equipment status transition")
	ErrValidation        = errors.New("validation error")
)
