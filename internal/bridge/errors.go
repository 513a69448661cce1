package bridge

import (
	"errors"
	"fmt"
)

var (
	// ErrStartFailed is returned by New when the loop goroutine does not report
	// ready within the start timeout.
	ErrStartFailed = errors.New("bridge: loop failed to start")

	// ErrNotRunning is returned by Submit and Run once the bridge is stopping or stopped.
	ErrNotRunning = errors.New("bridge: loop is not running")

	// ErrTimeout is wrapped by the error Run and Handle.Wait return when the
	// caller's wait elapses before the task resolves.
	ErrTimeout = errors.New("bridge: timed out waiting for task result")

	// ErrReentrantRun is returned when Run is called from a coroutine executing
	// on the same bridge.
	ErrReentrantRun = errors.New("bridge: cannot call Run from within the bridge loop")

	// ErrAbandoned resolves tasks that were still pending when the bridge shut down.
	ErrAbandoned = errors.New("bridge: task abandoned at shutdown")

	ErrNilCoroutine  = errors.New("bridge: coroutine must not be nil")
	ErrInvalidOption = errors.New("bridge: invalid option")
	ErrPending       = errors.New("bridge: task has not resolved yet")
)

// PanicError carries a panic recovered from a coroutine.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("bridge: coroutine panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
