// Package debounce provides a trailing-edge debouncer.
//
// A Debouncer wraps an operation and a delay. Each Trigger call cancels the
// previously scheduled run and schedules a new one, so a burst of calls
// results in a single run, delay after the last call, receiving the value
// passed to that last call.
//
//	d := debounce.New(300*time.Millisecond, func(value string) {
//	    validate(value)
//	})
//	d.Trigger("a")
//	d.Trigger("ab") // only "ab" is validated, 300ms from now
//
// Time is read from a github.com/benbjohnson/clock Clock; pass WithClock with
// a mock clock to drive the debouncer deterministically in tests.
package debounce
