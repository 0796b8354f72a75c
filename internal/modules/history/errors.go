package history

import "errors"

var (
	ErrNotFound         = errors.New("failure record not found")
	ErrInvalidReference = errors.New("equipment does not exist")
	ErrValidation       = errors.New("validation error")
)
