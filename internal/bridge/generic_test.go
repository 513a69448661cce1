package bridge

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answer struct {
	Text    string
	Sources []string
}

func TestRunTyped(t *testing.T) {
	b := newTestBridge(t)
	ctx := context.Background()

	t.Run("returns a typed value", func(t *testing.T) {
		got, err := Run(ctx, b, func(ctx context.Context) (*answer, error) {
			return &answer{Text: "Visit Sigiriya at sunrise", Sources: []string{"destinations"}}, nil
		}, time.Second)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Visit Sigiriya at sunrise", got.Text)
	})

	t.Run("nil pointer results stay nil", func(t *testing.T) {
		got, err := Run(ctx, b, func(ctx context.Context) (*answer, error) {
			return nil, nil
		}, time.Second)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("returns the zero value with the error", func(t *testing.T) {
		want := errors.New("quota exceeded")
		got, err := Run(ctx, b, func(ctx context.Context) (int, error) {
			return 3, want
		}, time.Second)
		assert.Same(t, want, err)
		assert.Equal(t, 0, got)
	})

	t.Run("nil function", func(t *testing.T) {
		_, err := Run[string](ctx, b, nil, time.Second)
		assert.ErrorIs(t, err, ErrNilCoroutine)
	})
}

func TestAwait(t *testing.T) {
	b := newTestBridge(t)
	ctx := context.Background()

	h, err := b.Submit(ctx, func(ctx context.Context) (any, error) {
		return "colombo", nil
	})
	require.NoError(t, err)

	city, err := Await[string](ctx, h, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "colombo", city)

	_, err = Await[int](ctx, h, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task returned string")
}

func TestAwait_NilContext(t *testing.T) {
	b := newTestBridge(t)

	release := make(chan struct{})
	h, err := b.Submit(context.Background(), func(ctx context.Context) (any, error) {
		<-release
		return 42, nil
	})
	require.NoError(t, err)
	time.AfterFunc(20*time.Millisecond, func() { close(release) })

	var nilCtx context.Context
	var got int
	require.NotPanics(t, func() { got, err = Await[int](nilCtx, h, time.Second) })
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestSync(t *testing.T) {
	b := newTestBridge(t)

	shout := Sync(b, func(ctx context.Context, s string) (string, error) {
		if s == "" {
			return "", errors.New("empty input")
		}
		return strings.ToUpper(s), nil
	}, time.Second)

	got, err := shout(context.Background(), "kandy")
	require.NoError(t, err)
	assert.Equal(t, "KANDY", got)

	_, err = shout(context.Background(), "")
	assert.EqualError(t, err, "empty input")
}
