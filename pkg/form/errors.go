package form

import "errors"

var (
	ErrUnknownField  = errors.New("form: unknown field")
	ErrUnknownForm   = errors.New("form: unknown form")
	ErrClosed        = errors.New("form: controller closed")
	ErrInvalidSchema = errors.New("form: invalid schema")
)
