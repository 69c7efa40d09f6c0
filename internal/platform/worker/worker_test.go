package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWait_Elapses(t *testing.T) {
	require.NoError(t, Wait(context.Background(), time.Millisecond))
	require.NoError(t, Wait(context.Background(), 0))
}

func TestWait_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Wait(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)

	err = Wait(ctx, 0)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunWithTimeout(t *testing.T) {
	err := RunWithTimeout(context.Background(), time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	require.True(t, errors.Is(err, context.DeadlineExceeded))

	err = RunWithTimeout(context.Background(), 0, func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		require.False(t, ok)

		return nil
	})
	require.NoError(t, err)
}

func TestTasks_StartReplacesPrevious(t *testing.T) {
	tasks := NewTasks[int64](nil)

	firstCanceled := make(chan struct{})
	started := make(chan struct{})

	tasks.Start(context.Background(), 1, "first", func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(firstCanceled)
	})

	<-started

	release := make(chan struct{})

	tasks.Start(context.Background(), 1, "second", func(ctx context.Context) {
		<-release
	})

	select {
	case <-firstCanceled:
	case <-time.After(time.Second):
		t.Fatal("first task was not canceled")
	}

	require.Equal(t, 1, tasks.Running())

	close(release)
	tasks.Wait()
	require.Zero(t, tasks.Running())
}

func TestTasks_Cancel(t *testing.T) {
	tasks := NewTasks[int64](nil)
	require.False(t, tasks.Cancel(7))

	var stopped atomic.Bool

	started := make(chan struct{})

	tasks.Start(context.Background(), 7, "cancel", func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		stopped.Store(true)
	})

	<-started
	require.True(t, tasks.Cancel(7))
	tasks.Wait()
	require.True(t, stopped.Load())
}

func TestTasks_RecoversPanic(t *testing.T) {
	tasks := NewTasks[string](nil)

	tasks.Start(context.Background(), "k", "panicky", func(context.Context) {
		panic("boom")
	})

	tasks.Wait()
	require.Zero(t, tasks.Running())
}
