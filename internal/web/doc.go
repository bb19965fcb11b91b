// Package web serves live forms: the page, one datastar event stream per
// form session, the endpoints the page posts interactions to, and a plain
// form post fallback for browsers without scripting.
package web
