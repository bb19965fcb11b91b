// Package submission sends a validated form somewhere and reports back on
// the form itself.
//
// A Pipeline belongs to one form. Run validates the whole form; an invalid
// form gets an error banner and the transport is never called. A valid form
// has its submit control disabled and relabelled "Sending...", then the
// Transport is called asynchronously with the field values. Success shows a
// banner, resets the fields and clears their errors; the banner fades after
// five seconds and disappears 300ms later unless something newer replaced
// it. A failure (an unsuccessful Result, an error or a panic) shows the
// failure banner and leaves the values alone. Either way the submit control
// is restored afterwards.
//
// Each Run walks a small lifecycle:
//
//	idle -> validating -> invalid -> idle
//	                   -> valid -> submitting -> success -> idle
//	                                          -> failed  -> idle
//
// Run returns ErrInProgress when the form is not idle, which is how a second
// click on a disabled button is ignored.
//
// Transports shipped here: StubTransport (fixed delay, always succeeds),
// EmailTransport (mails the values), HTTPTransport (posts to a hosted form
// backend) and QueueTransport (pushes onto a Redis list). TransportFunc
// adapts a function.
package submission
