// Package async provides a minimal future used where the application stands in
// for a network round trip (login latency, post-submit redirect). A real
// backend call can replace the body of a task without touching its callers.
package async

import (
	"context"
	"time"
)

// Task is a one-shot result that becomes available once.
type Task[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn in its own goroutine and completes the task with its result.
func Go[T any](fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		t.val, t.err = fn()
		close(t.done)
	}()
	return t
}

// After completes the task with fn's result once d has elapsed. fn runs
// exactly once. A non-positive d runs fn immediately on the calling goroutine.
func After[T any](d time.Duration, fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	if d <= 0 {
		t.val, t.err = fn()
		close(t.done)
		return t
	}
	time.AfterFunc(d, func() {
		t.val, t.err = fn()
		close(t.done)
	})
	return t
}

// Resolved returns an already completed task.
func Resolved[T any](v T) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), val: v}
	close(t.done)
	return t
}

func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Wait blocks until the task completes or ctx is done. Giving up on the wait
// does not cancel the task.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
