package bridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handle is the single-resolution result slot of one submitted coroutine.
// The task goroutine (or Shutdown) writes it once; any number of callers may
// wait on it.
type Handle struct {
	id        uuid.UUID
	submitted time.Time
	cancel    context.CancelFunc

	once  sync.Once
	done  chan struct{}
	value any
	err   error
}

func newHandle(cancel context.CancelFunc) *Handle {
	return &Handle{
		id:        uuid.New(),
		submitted: time.Now(),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// ID identifies the task in logs and spans.
func (h *Handle) ID() uuid.UUID { return h.id }

// Done is closed once the task has resolved.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Result returns the outcome without blocking, or ErrPending.
func (h *Handle) Result() (any, error) {
	select {
	case <-h.done:
		return h.value, h.err
	default:
		return nil, ErrPending
	}
}

// Err returns the task error once resolved, ErrPending before that.
func (h *Handle) Err() error {
	_, err := h.Result()
	return err
}

// Wait blocks until the task resolves, the timeout elapses or ctx is done.
// A non-positive timeout waits without deadline. Giving up does not stop the
// coroutine; use Cancel for that. A nil ctx is treated as context.Background.
func (h *Handle) Wait(ctx context.Context, timeout time.Duration) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-h.done:
		return h.value, h.err
	default:
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-h.done:
		return h.value, h.err
	case <-expired:
		return nil, fmt.Errorf("%w after %s (task %s)", ErrTimeout, timeout, h.id)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel cancels the context handed to the coroutine. A task that has not been
// dispatched yet resolves with context.Canceled without running.
func (h *Handle) Cancel() {
	if h.cancel != nil {
		h.cancel()
	}
}

// resolve stores the outcome. Only the first call wins.
func (h *Handle) resolve(value any, err error) bool {
	resolved := false
	h.once.Do(func() {
		h.value = value
		h.err = err
		resolved = true
		close(h.done)
	})
	return resolved
}
