// Package enhance adds the optional textarea niceties to a form document:
// a character counter under length-limited text areas and auto-resizing
// heights for text areas that ask for it.
//
// An Enhancer is attached to a form once, when the live session is created,
// and then refreshed from the form controller's input hook:
//
//	e := enhance.New()
//	e.Attach(doc)
//	ctrl := form.NewController(doc, checker, form.WithInputHook(e.Update))
//
// Counters warn once the value is longer than 90% of the limit. Heights are
// computed by a Measurer; the default LineMeasurer approximates a browser's
// scroll height from wrapped line count, line height and padding.
package enhance
