package formpost

import "errors"

var (
	ErrDeliveryFailed   = errors.New("formpost: delivery failed")
	ErrPermanentFailure = errors.New("formpost: permanent failure")
	ErrTemporaryFailure = errors.New("formpost: temporary failure")
	ErrInvalidURL       = errors.New("formpost: invalid endpoint URL")
	ErrTimeout          = errors.New("formpost: request timeout")
	ErrInvalidSignature = errors.New("formpost: invalid signature")
)
