// Package bridge lets blocking callers (HTTP handlers, the terminal UI, CLI
// commands) run asynchronous work such as LLM calls, retrieval and image
// analysis on a single dedicated loop and collect the result synchronously.
//
// A Bridge owns exactly one loop goroutine and its task queue. Submit enqueues
// a Coroutine and returns a Handle immediately; the loop dispatches every queued
// task onto its own goroutine, so independently submitted coroutines interleave
// and complete in any order. Run is Submit plus a blocking wait with timeout.
//
// The timeout passed to Run bounds only the caller's wait. A coroutine that
// outlives it keeps running unless the bridge was built WithCancelOnTimeout.
// Shutdown cancels every coroutine context, resolves unfinished handles with
// ErrAbandoned and rejects later submissions with ErrNotRunning.
//
// Lifecycle:
//
//	b, err := bridge.Default() // or bridge.New(opts...) for an injected instance
//	v, err := b.Run(ctx, coro, 30*time.Second)
//	bridge.ShutdownDefault()   // or b.Shutdown()
package bridge
