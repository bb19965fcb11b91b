// Package async runs a single computation in its own goroutine and hands
// back a Future for its result.
//
// The submission pipeline uses it to call a transport without holding the
// form lock, and to turn a panicking transport into an ordinary error:
//
//	fut := async.Async(ctx, values, transport.Submit)
//	res, err := fut.Await()
//	if errors.Is(err, async.ErrPanic) {
//	    // the transport blew up
//	}
//
// If ctx is already cancelled when the goroutine starts, fn is never called
// and the future completes with ctx.Err().
package async
