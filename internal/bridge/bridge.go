package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Coroutine is a unit of asynchronous work. The context it receives is
// cancelled when the bridge shuts down or the task's Handle is cancelled.
type Coroutine func(ctx context.Context) (any, error)

// State is the lifecycle state of a Bridge.
//
//	StateUnstarted → StateRunning   [New]
//	StateRunning   → StateStopping  [Shutdown]
//	StateStopping  → StateStopped   [Shutdown, after the loop exits or the wait times out]
//
// A stopped bridge is never restarted; Default builds a fresh one instead.
type State int32

const (
	StateUnstarted State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

const (
	outcomeSuccess   = "success"
	outcomeError     = "error"
	outcomePanic     = "panic"
	outcomeCanceled  = "canceled"
	outcomeAbandoned = "abandoned"
)

// loopKey marks contexts handed to coroutines with the bridge running them.
type loopKey struct{}

type task struct {
	name     string
	coro     Coroutine
	ctx      context.Context
	handle   *Handle
	callback func(any)
}

// Bridge runs coroutines submitted from arbitrary goroutines on one dedicated
// loop goroutine and hands their outcomes back through Handles.
type Bridge struct {
	opts   *options
	logger *slog.Logger

	state atomic.Int32

	mu       sync.Mutex // guards queue and inflight
	queue    []*task
	inflight map[uuid.UUID]*task // queued or running, keyed by handle ID

	wake     chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
	loopDone chan struct{}
}

// New builds a bridge and starts its loop goroutine. It fails with
// ErrInvalidOption for bad options and ErrStartFailed when the loop does not
// report ready within the start timeout.
func New(opts ...Option) (*Bridge, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	b := &Bridge{
		opts:     o,
		logger:   o.logger.With(slog.String("component", "bridge"), slog.String("bridge", o.name)),
		inflight: make(map[uuid.UUID]*task),
		wake:     make(chan struct{}, 1),
		loopDone: make(chan struct{}),
	}
	ctx, cancel := context.WithCancel(context.Background())
	b.ctx = context.WithValue(ctx, loopKey{}, b)
	b.cancel = cancel

	if err := b.start(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bridge) start() error {
	ready := make(chan struct{})
	go b.loop(ready)

	timer := time.NewTimer(b.opts.startTimeout)
	defer timer.Stop()

	select {
	case <-ready:
	case <-timer.C:
		b.cancel()
		b.state.Store(int32(StateStopped))
		b.logger.Error("Async bridge loop did not start", slog.Duration("start_timeout", b.opts.startTimeout))
		return fmt.Errorf("%w: loop not ready after %s", ErrStartFailed, b.opts.startTimeout)
	}

	if !b.state.CompareAndSwap(int32(StateUnstarted), int32(StateRunning)) {
		b.cancel()
		return fmt.Errorf("%w: unexpected state %s", ErrStartFailed, b.State())
	}
	b.logger.Debug("Async bridge started")
	return nil
}

// State reports the current lifecycle state.
func (b *Bridge) State() State {
	return State(b.state.Load())
}

// Pending returns the number of tasks queued or running.
func (b *Bridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.inflight)
}

// Submit schedules coro on the loop and returns its handle without blocking.
// ctx only links the task's span to the caller's trace; cancelling it does not
// cancel the task.
func (b *Bridge) Submit(ctx context.Context, coro Coroutine, opts ...SubmitOption) (*Handle, error) {
	if coro == nil {
		return nil, ErrNilCoroutine
	}
	if ctx == nil {
		ctx = context.Background()
	}

	taskCtx, cancel := context.WithCancel(trace.ContextWithSpan(b.ctx, trace.SpanFromContext(ctx)))
	t := &task{
		coro:   coro,
		ctx:    taskCtx,
		handle: newHandle(cancel),
	}
	for _, opt := range opts {
		opt(t)
	}

	b.mu.Lock()
	if b.State() != StateRunning {
		b.mu.Unlock()
		cancel()
		return nil, ErrNotRunning
	}
	b.queue = append(b.queue, t)
	b.inflight[t.handle.id] = t
	b.mu.Unlock()

	if m := b.opts.metrics; m != nil {
		attrs := metric.WithAttributes(attribute.String("bridge", b.opts.name))
		m.BridgeTasksSubmittedTotal.Add(ctx, 1, attrs)
		m.BridgeTasksInFlight.Add(ctx, 1, attrs)
	}

	select {
	case b.wake <- struct{}{}:
	default:
	}
	return t.handle, nil
}

// Run submits coro and blocks until it resolves, the timeout elapses or ctx is
// done. A non-positive timeout uses the bridge default.
//
// The coroutine's own error is returned unchanged. On timeout the returned
// error wraps ErrTimeout and the coroutine keeps running unless the bridge was
// built WithCancelOnTimeout.
//
// Calling Run with a context handed out by this bridge, or one derived from
// it, fails with ErrReentrantRun. Detection relies on the coroutine passing its
// ctx along: a nested Run given an unrelated context such as
// context.Background is scheduled as an ordinary task. That cannot deadlock
// since every task runs on its own goroutine, but it escapes the caller's
// cancellation and timeout.
func (b *Bridge) Run(ctx context.Context, coro Coroutine, timeout time.Duration) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if b.owns(ctx) {
		return nil, ErrReentrantRun
	}
	if timeout <= 0 {
		timeout = b.opts.defaultTimeout
	}

	h, err := b.Submit(ctx, coro)
	if err != nil {
		return nil, err
	}

	value, err := h.Wait(ctx, timeout)
	if errors.Is(err, ErrTimeout) {
		b.logger.WarnContext(ctx, "Gave up waiting for task",
			slog.String("task_id", h.ID().String()),
			slog.Duration("timeout", timeout),
			slog.Bool("cancelled", b.opts.cancelOnTimeout))
		if m := b.opts.metrics; m != nil {
			m.BridgeRunTimeoutsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("bridge", b.opts.name)))
		}
		if b.opts.cancelOnTimeout {
			h.Cancel()
		}
	}
	return value, err
}

// Shutdown stops accepting work, cancels every coroutine context, resolves
// unfinished handles with ErrAbandoned and waits (bounded) for the loop
// goroutine to exit. Calling it again is a no-op.
func (b *Bridge) Shutdown() {
	b.mu.Lock()
	if b.State() != StateRunning {
		b.mu.Unlock()
		return
	}
	b.state.Store(int32(StateStopping))
	abandoned := make([]*task, 0, len(b.inflight))
	for _, t := range b.inflight {
		abandoned = append(abandoned, t)
	}
	b.inflight = make(map[uuid.UUID]*task)
	b.queue = nil
	b.mu.Unlock()

	b.logger.Info("Shutting down async bridge", slog.Int("abandoned_tasks", len(abandoned)))
	b.cancel()
	for _, t := range abandoned {
		if t.handle.resolve(nil, ErrAbandoned) {
			b.record(t, outcomeAbandoned)
		}
	}

	timer := time.NewTimer(b.opts.shutdownTimeout)
	defer timer.Stop()
	select {
	case <-b.loopDone:
	case <-timer.C:
		b.logger.Warn("Async bridge loop did not exit in time", slog.Duration("shutdown_timeout", b.opts.shutdownTimeout))
	}

	b.state.Store(int32(StateStopped))
	b.logger.Info("Async bridge stopped")
}

func (b *Bridge) owns(ctx context.Context) bool {
	owner, _ := ctx.Value(loopKey{}).(*Bridge)
	return owner == b
}

// loop is the only goroutine that reads the queue. It never runs coroutine
// code itself, so a slow coroutine cannot stall dispatch.
func (b *Bridge) loop(ready chan<- struct{}) {
	defer close(b.loopDone)
	close(ready)

	for {
		select {
		case <-b.ctx.Done():
			return
		case <-b.wake:
		}
		for _, t := range b.drain() {
			b.dispatch(t)
		}
	}
}

func (b *Bridge) drain() []*task {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch := b.queue
	b.queue = nil
	return batch
}

func (b *Bridge) dispatch(t *task) {
	if err := t.ctx.Err(); err != nil {
		b.finish(t, nil, err)
		return
	}
	go b.execute(t)
}

func (b *Bridge) execute(t *task) {
	ctx, span := otel.Tracer("AsyncBridge").Start(t.ctx, "bridge.task", trace.WithAttributes(
		attribute.String("bridge.name", b.opts.name),
		attribute.String("task.id", t.handle.id.String()),
		attribute.String("task.name", t.name),
	))
	defer span.End()

	value, err := invoke(ctx, t.coro)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Task failed")
	} else {
		span.SetStatus(codes.Ok, "Task completed")
	}
	b.finish(t, value, err)
}

func invoke(ctx context.Context, coro Coroutine) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return coro(ctx)
}

func (b *Bridge) finish(t *task, value any, err error) {
	b.mu.Lock()
	delete(b.inflight, t.handle.id)
	b.mu.Unlock()

	resolved := t.handle.resolve(value, err)
	t.handle.cancel()
	if !resolved {
		// Shutdown got there first; the result is discarded.
		return
	}

	outcome := classify(err)
	b.record(t, outcome)
	if outcome != outcomeSuccess {
		b.logger.Debug("Task resolved with error",
			slog.String("task_id", t.handle.id.String()),
			slog.String("task", t.name),
			slog.String("outcome", outcome),
			slog.Any("error", err))
		return
	}
	if t.callback != nil {
		b.runCallback(t, value)
	}
}

func (b *Bridge) runCallback(t *task, value any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Task callback panicked",
				slog.String("task_id", t.handle.id.String()),
				slog.Any("panic", r))
		}
	}()
	t.callback(value)
}

func (b *Bridge) record(t *task, outcome string) {
	m := b.opts.metrics
	if m == nil {
		return
	}
	ctx := context.Background()
	name := attribute.String("bridge", b.opts.name)
	m.BridgeTasksCompletedTotal.Add(ctx, 1, metric.WithAttributes(name, attribute.String("outcome", outcome)))
	m.BridgeTaskDurationSeconds.Record(ctx, time.Since(t.handle.submitted).Seconds(), metric.WithAttributes(name, attribute.String("outcome", outcome)))
	m.BridgeTasksInFlight.Add(ctx, -1, metric.WithAttributes(name))
}

func classify(err error) string {
	var panicErr *PanicError
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.As(err, &panicErr):
		return outcomePanic
	case errors.Is(err, context.Canceled):
		return outcomeCanceled
	default:
		return outcomeError
	}
}
