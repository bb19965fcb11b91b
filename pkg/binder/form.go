package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// DefaultMaxMemory bounds in-memory parsing of multipart bodies.
const DefaultMaxMemory = 1 << 20

// Form binds url-encoded or multipart form values into fields tagged
// `form:"name"`. A `form:"*"` map[string]string field receives every posted
// value, which is how schema-driven forms with arbitrary field names are
// read.
//
// Requests that carry no form body are reported as ErrNotApplicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rv, err := structValue(v)
		if err != nil {
			return err
		}
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			return ErrNotApplicable
		}
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
		case "application/json":
			return ErrNotApplicable
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
		}
		return bindToStruct(rv, "form", r.PostForm, ErrInvalidForm)
	}
}
