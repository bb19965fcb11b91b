package app

import "errors"

var (
	ErrUnknownTransport = errors.New("app: unknown transport")
	ErrInvalidConfig    = errors.New("app: invalid config")
)
