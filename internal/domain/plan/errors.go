package plan

import "errors"

// Domain errors for plan configuration and generation

var (
	ErrUnknownPlanType  = errors.New("unknown meal plan type")
	ErrNoDates          = errors.New("at least one date is required")
	ErrInvalidTargets   = errors.New("nutrition targets must be positive")
	ErrInvalidSelection = errors.New("two-meal plans require exactly two selected slots")
)
