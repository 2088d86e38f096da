// Package async provides generic helpers for running computations
// concurrently and joining on their completion.
//
// Async starts a function in its own goroutine and returns a *Future that can
// be awaited, awaited with a timeout, or polled. Two joins are provided:
// WaitAll stops collecting at the first error, while WaitAllSettled waits for
// every future and reports each outcome independently. Dispatch fan-out uses
// the settled variant so one failing channel never hides the others.
//
// Go runs a function fully detached: its error is logged, its panic is
// recovered, and nothing propagates to the spawner. Triggers use it to hand
// delivery off without blocking the business caller.
package async
