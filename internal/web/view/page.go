package view

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/contactform/handler"
)

// DataStarScript is the datastar client bundle matching the SDK's protocol.
const DataStarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// ToastContainer receives error toasts for datastar requests.
const ToastContainer = "toasts"

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(title)
		h.raw("</title>")
		h.raw(`<script type="module"`)
		h.attr("src", DataStarScript)
		h.raw("></script></head><body>")
		h.raw(`<div`)
		h.attr("id", ToastContainer)
		h.raw("></div><main>")
		h.component(ctx, body)
		h.raw("</main></body></html>")
		return h.err
	})
}

// Page renders every form. Wired forms are wrapped in an element that
// opens the session stream once loaded; the wrapper itself is never patched.
func Page(title string, forms []Live) templ.Component {
	return layout(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		for _, l := range forms {
			if l.wired() {
				h.raw("<section")
				h.attr("id", l.Doc.ElementID()+"-live")
				h.attr("data-on-load", action("get", l.StreamURL()))
				h.raw(">")
			} else {
				h.raw("<section>")
			}
			h.component(ctx, Form(l))
			h.raw("</section>")
		}
		return h.err
	}))
}

func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return layout("Error", templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="error-page"><h1>`)
		h.text(strconv.Itoa(p.StatusCode))
		h.raw("</h1><p>")
		h.text(p.Error)
		h.raw("</p>")
		if p.RequestID != "" {
			h.raw(`<p class="request-id">Request ID: `)
			h.text(p.RequestID)
			h.raw("</p>")
		}
		h.raw(`<a href="/">Back to the form</a></div>`)
		return h.err
	}))
}

func Toast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="toast toast-` + templ.EscapeString(p.Type) + `" role="alert">`)
		h.text(p.Message)
		h.raw("</div>")
		return h.err
	})
}
