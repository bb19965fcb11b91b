package binder

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Path binds chi URL parameters into fields tagged `path:"name"`.
//
//	type fieldEvent struct {
//		Session string `path:"session"`
//		Field   string `path:"field"`
//	}
func Path() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rv, err := structValue(v)
		if err != nil {
			return err
		}
		rctx := chi.RouteContext(r.Context())
		if rctx == nil {
			return ErrNotApplicable
		}

		values := make(map[string][]string, len(rctx.URLParams.Keys))
		for i, key := range rctx.URLParams.Keys {
			values[key] = []string{rctx.URLParams.Values[i]}
		}
		return bindToStruct(rv, "path", values, ErrInvalidPath)
	}
}
