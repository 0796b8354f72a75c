package maintenance

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("open maintenance request already exists")
	ErrInvalidTransition = errors.New("invalid maintenance status transition")
	ErrValidation        = errors.New("validation error")
)
