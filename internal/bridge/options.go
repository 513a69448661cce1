package bridge

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/FACorreiaa/go-tourism-chatbot/app/observability/metrics"
)

const (
	defaultRunTimeout      = 60 * time.Second
	defaultShutdownTimeout = 5 * time.Second
	defaultStartTimeout    = 5 * time.Second
	defaultName            = "async-bridge"
)

// Option configures a Bridge.
type Option func(*options)

type options struct {
	name            string
	logger          *slog.Logger
	metrics         *metrics.AppMetrics
	defaultTimeout  time.Duration
	shutdownTimeout time.Duration
	startTimeout    time.Duration
	cancelOnTimeout bool
}

func defaultOptions() *options {
	return &options{
		name:            defaultName,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaultTimeout:  defaultRunTimeout,
		shutdownTimeout: defaultShutdownTimeout,
		startTimeout:    defaultStartTimeout,
	}
}

func (o *options) validate() error {
	if o.shutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive, got %s", ErrInvalidOption, o.shutdownTimeout)
	}
	if o.startTimeout <= 0 {
		return fmt.Errorf("%w: start timeout must be positive, got %s", ErrInvalidOption, o.startTimeout)
	}
	if o.logger == nil {
		return fmt.Errorf("%w: logger must not be nil", ErrInvalidOption)
	}
	return nil
}

// WithName labels the bridge in logs and spans.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger for the bridge. Logs are discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records task counts and durations on the given instruments.
func WithMetrics(m *metrics.AppMetrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithDefaultTimeout sets the wait used by Run when it is given a non-positive
// timeout. A non-positive default makes such runs wait without deadline.
func WithDefaultTimeout(d time.Duration) Option {
	return func(o *options) {
		o.defaultTimeout = d
	}
}

// WithShutdownTimeout bounds how long Shutdown waits for the loop goroutine.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		o.shutdownTimeout = d
	}
}

// WithStartTimeout bounds how long New waits for the loop to report ready.
func WithStartTimeout(d time.Duration) Option {
	return func(o *options) {
		o.startTimeout = d
	}
}

// WithCancelOnTimeout makes Run cancel the coroutine's context when the
// caller's wait times out. Off by default: timed-out coroutines keep running.
func WithCancelOnTimeout(cancel bool) Option {
	return func(o *options) {
		o.cancelOnTimeout = cancel
	}
}

// SubmitOption configures a single submission.
type SubmitOption func(*task)

// WithCallback registers fn to be called with the coroutine's value once it
// succeeds. It runs on the task's goroutine, never on the loop goroutine, and
// is not called for failed, cancelled or abandoned tasks.
func WithCallback(fn func(any)) SubmitOption {
	return func(t *task) {
		t.callback = fn
	}
}

// WithTaskName labels the task in logs and spans.
func WithTaskName(name string) SubmitOption {
	return func(t *task) {
		t.name = name
	}
}
