package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Tasks runs at most one background task per key. Starting a task for a key
// cancels the one already running for it.
type Tasks[K comparable] struct {
	mu      sync.Mutex
	running map[K]*task
	wg      sync.WaitGroup
	logger  *zerolog.Logger
}

type task struct {
	cancel context.CancelFunc
}

// NewTasks creates an empty task set.
func NewTasks[K comparable](logger *zerolog.Logger) *Tasks[K] {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Tasks[K]{
		running: make(map[K]*task),
		logger:  logger,
	}
}

// Start runs fn in a new goroutine under a context derived from ctx.
// The previous task for key, if any, is canceled first.
func (t *Tasks[K]) Start(ctx context.Context, key K, name string, fn func(ctx context.Context)) {
	taskCtx, cancel := context.WithCancel(ctx)
	current := &task{cancel: cancel}

	t.mu.Lock()
	if prev, ok := t.running[key]; ok {
		prev.cancel()
	}

	t.running[key] = current
	t.mu.Unlock()

	t.wg.Add(1)

	go func() {
		defer t.wg.Done()
		defer t.finish(key, current)
		defer RecoverPanic(t.logger, name)

		fn(taskCtx)
	}()
}

// Cancel stops the task running for key. It reports whether one was running.
func (t *Tasks[K]) Cancel(key K) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.running[key]
	if !ok {
		return false
	}

	current.cancel()
	delete(t.running, key)

	return true
}

// Running returns the number of live tasks.
func (t *Tasks[K]) Running() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.running)
}

// Wait blocks until every started task has returned.
func (t *Tasks[K]) Wait() {
	t.wg.Wait()
}

func (t *Tasks[K]) finish(key K, done *task) {
	done.cancel()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running[key] == done {
		delete(t.running, key)
	}
}
