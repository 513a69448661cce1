package bridge

import (
	"context"
	"fmt"
	"time"
)

// Run is the typed form of (*Bridge).Run.
func Run[T any](ctx context.Context, b *Bridge, fn func(ctx context.Context) (T, error), timeout time.Duration) (T, error) {
	var zero T
	if fn == nil {
		return zero, ErrNilCoroutine
	}
	v, err := b.Run(ctx, func(ctx context.Context) (any, error) {
		return fn(ctx)
	}, timeout)
	if err != nil {
		return zero, err
	}
	return cast[T](v)
}

// Await waits on a handle and converts its value to T.
func Await[T any](ctx context.Context, h *Handle, timeout time.Duration) (T, error) {
	var zero T
	v, err := h.Wait(ctx, timeout)
	if err != nil {
		return zero, err
	}
	return cast[T](v)
}

// Sync adapts fn into a blocking function that runs it on b with the given
// timeout every time it is called.
func Sync[A, T any](b *Bridge, fn func(ctx context.Context, arg A) (T, error), timeout time.Duration) func(ctx context.Context, arg A) (T, error) {
	return func(ctx context.Context, arg A) (T, error) {
		return Run(ctx, b, func(ctx context.Context) (T, error) {
			return fn(ctx, arg)
		}, timeout)
	}
}

func cast[T any](v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("bridge: task returned %T, want %T", v, zero)
	}
	return typed, nil
}
