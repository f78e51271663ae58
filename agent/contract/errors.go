package contract

import "errors"

var (
	ErrModelInvoke = errors.New("model invoke failed")
	ErrToolBackend = errors.New("tool backend unavailable")
	ErrStepBudget  = errors.New("workflow step budget exceeded")
	ErrValidation  = errors.New("validation failed")
)
