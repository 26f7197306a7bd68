package planning

import "errors"

var (
	ErrNotFound   = errors.New("planning: entry not found")
	ErrValidation = errors.New("planning: invalid input")
)
