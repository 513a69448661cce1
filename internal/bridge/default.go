package bridge

import (
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	defaultMu     sync.Mutex // guards construction and defaultOpts only
	defaultBridge atomic.Pointer[Bridge]
	defaultOpts   []Option
)

// Configure sets the options used the next time Default builds the
// process-wide bridge. It does not affect a bridge that is already running.
func Configure(opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultOpts = append([]Option(nil), opts...)
}

// Default returns the process-wide bridge, building it on first use.
// Concurrent first calls build exactly one instance. Once that instance has
// been shut down, the next call builds a fresh loop in its place.
func Default() (*Bridge, error) {
	if b := defaultBridge.Load(); b != nil && b.State() == StateRunning {
		return b, nil
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if b := defaultBridge.Load(); b != nil && b.State() == StateRunning {
		return b, nil
	}
	b, err := New(defaultOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start default bridge: %w", err)
	}
	defaultBridge.Store(b)
	return b, nil
}

// ShutdownDefault stops the process-wide bridge, if any, and clears it.
// Wire it into process exit paths with defer.
func ShutdownDefault() {
	defaultMu.Lock()
	b := defaultBridge.Swap(nil)
	defaultMu.Unlock()

	if b != nil {
		b.Shutdown()
	}
}
