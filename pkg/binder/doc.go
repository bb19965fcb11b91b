// Package binder fills typed request structs from chi path parameters,
// posted form values and datastar signals. Each binder reads one struct tag
// (`path`, `form`, or the json tags for signals) and leaves the rest of the
// struct alone, so several binders can be applied to the same value.
package binder
