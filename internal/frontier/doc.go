// Package frontier implements the crawl frontier: a deduplicating,
// budget-capped queue of URLs awaiting a visit.
//
// The frontier is the sole arbiter of "has this URL already been
// scheduled". The visited set, the pending queue, and the acquire counter
// form one atomically-updated unit guarded by a single mutex, so two
// workers can never acquire or re-enqueue the same URL.
//
// Design decision: We use a mutex-protected struct rather than a
// channel-fed actor goroutine because:
//  1. Every operation is a short critical section with no blocking work
//  2. Workers poll TryAcquire with their own backoff, so the frontier
//     never needs to park a caller
//  3. Drain detection needs a consistent view of queue + in-flight state,
//     which a single lock gives for free
package frontier
