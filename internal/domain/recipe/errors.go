package recipe

import "errors"

// Domain errors for catalog recipes

var (
	ErrMissingID        = errors.New("recipe and ingredient identifiers are required")
	ErrNoSlots          = errors.New("recipe must belong to at least one meal slot")
	ErrNegativeCalories = errors.New("recipe calories cannot be negative")
	ErrNegativeAmount   = errors.New("ingredient amount cannot be negative")
	ErrInvalidServings  = errors.New("base servings must be at least 1")
)
