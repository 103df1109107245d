package restahead

import (
	"context"
	"sync"
)

// Future is the handle of an asynchronous call.
// It completes exactly once, with either a value or an error.
type Future[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

// NewFuture returns an incomplete future. Complete it with [Future.Complete].
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future already completed with v.
func Resolved[T any](v T) *Future[T] {
	f := NewFuture[T]()
	f.Complete(v, nil)
	return f
}

// Failed returns a future already completed with err.
func Failed[T any](err error) *Future[T] {
	f := NewFuture[T]()
	var zero T
	f.Complete(zero, err)
	return f
}

// Go runs fn on a new goroutine and returns a future for its result.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := NewFuture[T]()
	go func() {
		f.Complete(fn())
	}()
	return f
}

// Complete sets the result of the future. Only the first call has an effect;
// it reports whether this call completed the future.
func (f *Future[T]) Complete(v T, err error) bool {
	completed := false
	f.once.Do(func() {
		f.val, f.err = v, err
		close(f.done)
		completed = true
	})
	return completed
}

// Done returns a channel that is closed once the future completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future completes or ctx is done.
// If ctx ends first, the context error is returned and the future keeps running.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	default:
	}
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result blocks until the future completes.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}

// Then returns a future completed with fn applied to the value of f.
// If f fails, fn is not called and the error is carried over.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	return transform(f, func(v T, err error) (U, error) {
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	})
}

// transform chains fn after f regardless of its outcome.
func transform[T, U any](f *Future[T], fn func(T, error) (U, error)) *Future[U] {
	next := NewFuture[U]()
	go func() {
		<-f.done
		next.Complete(fn(f.val, f.err))
	}()
	return next
}
