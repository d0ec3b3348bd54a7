package trade

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// ErrWorkerStopped is returned when a command is submitted after Run returned.
var ErrWorkerStopped = errors.New("trade worker stopped")

// Worker runs every trade operation on a single goroutine, in submission order.
type Worker struct {
	cmds    chan func()
	done    chan struct{}
	stopped sync.Once
	logger  zerolog.Logger
}

// NewWorker creates a worker with a queue of the given size.
func NewWorker(queueSize int, logger zerolog.Logger) *Worker {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Worker{
		cmds:   make(chan func(), queueSize),
		done:   make(chan struct{}),
		logger: logger.With().Str("component", "trade_worker").Logger(),
	}
}

// Run processes commands until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info().Msg("trade worker started")
	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("trade worker stopped")
			return nil
		case cmd := <-w.cmds:
			w.exec(cmd)
		}
	}
}

func (w *Worker) stop() {
	w.stopped.Do(func() { close(w.done) })
}

func (w *Worker) exec(cmd func()) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().Interface("panic", r).Msg("trade command panicked")
		}
	}()
	cmd()
}

// Submit queues fn without waiting for it. It reports false once the worker
// has stopped.
func (w *Worker) Submit(fn func()) bool {
	select {
	case <-w.done:
		return false
	default:
	}
	select {
	case w.cmds <- fn:
		return true
	case <-w.done:
		return false
	}
}

const (
	cmdQueued int32 = iota
	cmdRunning
	cmdAbandoned
)

// Do runs fn on the worker and waits for it to finish. It must not be called
// from inside a command. If ctx ends while fn is still queued, fn never runs
// and ctx.Err() is returned; once fn has started, Do waits for it and
// returns nil.
func (w *Worker) Do(ctx context.Context, fn func()) error {
	var state atomic.Int32
	finished := make(chan struct{})
	cmd := func() {
		defer close(finished)
		if !state.CompareAndSwap(cmdQueued, cmdRunning) {
			return
		}
		fn()
	}
	select {
	case w.cmds <- cmd:
	case <-w.done:
		return ErrWorkerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-w.done:
		if state.CompareAndSwap(cmdQueued, cmdAbandoned) {
			return ErrWorkerStopped
		}
		<-finished
		return nil
	case <-ctx.Done():
		if state.CompareAndSwap(cmdQueued, cmdAbandoned) {
			return ctx.Err()
		}
		<-finished
		return nil
	}
}
