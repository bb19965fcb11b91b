package validator

import "errors"

var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidConfig is returned by Config.Check for unusable thresholds or patterns.
	ErrInvalidConfig = errors.New("invalid validator config")
)
