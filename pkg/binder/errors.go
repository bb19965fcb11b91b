package binder

import "errors"

var (
	// ErrNotApplicable tells the caller to skip a binder for this request.
	ErrNotApplicable = errors.New("binder not applicable")

	ErrInvalidTarget        = errors.New("binder: target must be a non-nil pointer to struct")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidForm          = errors.New("failed to parse form data")
	ErrInvalidPath          = errors.New("failed to parse path parameters")
	ErrInvalidSignals       = errors.New("failed to read datastar signals")
)
