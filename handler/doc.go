// Package handler turns typed handler functions into http.HandlerFuncs.
//
// A handler receives a Context and a request struct filled by binders from
// pkg/binder, and returns a Response. Responses adapt to the caller: templ
// components are sent as datastar element patches over SSE when the request
// comes from the datastar client and as plain HTML otherwise.
//
//	type submitRequest struct {
//		Session string `path:"session"`
//	}
//
//	r.Post("/forms/{session}/submit", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, submitRequest](binder.Path()),
//		handler.WithErrorHandler[handler.Context, submitRequest](errHandler),
//	))
//
// Long-lived streams use SSE, which hands a StreamContext to a callback that
// runs until the client disconnects.
package handler
