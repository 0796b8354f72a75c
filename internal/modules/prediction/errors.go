package prediction

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid prediction status transition")
	ErrScoringUnavailable = errors.New("scoring capability unavailable")
	ErrValidation         = errors.New("validation error")
)
