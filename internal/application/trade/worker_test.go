package trade

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWorker(t *testing.T) (*Worker, context.CancelFunc) {
	t.Helper()
	w := NewWorker(8, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return w, cancel
}

func TestWorker_RunsCommandsInOrder(t *testing.T) {
	w, _ := startWorker(t)

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		require.True(t, w.Submit(func() { order = append(order, i) }))
	}
	require.NoError(t, w.Do(context.Background(), func() { order = append(order, 5) }))

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, order)
}

func TestWorker_RecoversPanics(t *testing.T) {
	w, _ := startWorker(t)

	require.NoError(t, w.Do(context.Background(), func() { panic("boom") }))

	ran := false
	require.NoError(t, w.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestWorker_StoppedRejectsCommands(t *testing.T) {
	w := NewWorker(1, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))

	assert.False(t, w.Submit(func() {}))
	assert.ErrorIs(t, w.Do(context.Background(), func() {}), ErrWorkerStopped)
}

func TestWorker_DoHonoursContext(t *testing.T) {
	w := NewWorker(1, zerolog.Nop())
	// Not running: the queue fills and Do waits on the context.
	require.True(t, w.Submit(func() {}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, w.Do(ctx, func() {}), context.DeadlineExceeded)
}

func TestWorker_DoSkipsCommandAbandonedInQueue(t *testing.T) {
	w := NewWorker(2, zerolog.Nop())

	ran := false
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, w.Do(ctx, func() { ran = true }), context.DeadlineExceeded)

	runCtx, stop := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = w.Run(runCtx)
	}()
	require.NoError(t, w.Do(context.Background(), func() {}))
	stop()
	<-stopped

	assert.False(t, ran, "a command whose caller gave up must not run")
}

func TestWorker_DoWaitsForStartedCommand(t *testing.T) {
	w, _ := startWorker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	ran := false
	err := w.Do(ctx, func() {
		<-ctx.Done()
		ran = true
	})

	require.NoError(t, err)
	assert.True(t, ran)
}
