// Package ratelimiter implements a token bucket limiter.
//
// A Bucket holds Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each Allow takes one token; a request that finds the
// bucket empty is refused without draining it further, and Result carries
// the time until the next refill. MemoryStore keeps buckets in process
// memory and sweeps idle ones in the background; both use an injectable
// clock so refills can be tested deterministically.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	}, nil)
//
//	res, err := limiter.Allow(ctx, clientip.FromContext(ctx))
//	ratelimiter.SetHeaders(w, res)
//	if !res.Allowed { ... }
package ratelimiter
