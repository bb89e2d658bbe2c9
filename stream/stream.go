package stream

import (
	"context"
	"sync"

	"github.com/Feel-Joy/redux"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Stream represents a lazy, pull-based sequence of values. No work happens
// until values are pulled via Collect, Drain, or ForEach.
type Stream[T any] struct {
	create func(ctx context.Context) Iterator[T]
}

// Runnable is a fully-configured stream ready to execute.
type Runnable struct {
	run func(ctx context.Context) error
}

// Run executes the stream until completion or context cancellation.
func (r *Runnable) Run(ctx context.Context) error {
	return r.run(ctx)
}

// result carries a value or error through a channel.
type result[T any] struct {
	val T
	ok  bool
	err error
}

// feed pulls source values into ch until exhaustion, error, or cancellation.
func feed[T any](ctx context.Context, source Iterator[T], ch chan<- result[T]) {
	defer close(ch)
	for {
		val, ok, err := source.Next(ctx)
		if err != nil {
			select {
			case ch <- result[T]{err: err}:
			case <-ctx.Done():
			}
			return
		}
		if !ok {
			return
		}
		select {
		case ch <- result[T]{val: val, ok: true}:
		case <-ctx.Done():
			return
		}
	}
}

// --- Constructors ---

// From creates a stream from an existing Iterator.
func From[T any](iter Iterator[T]) *Stream[T] {
	return &Stream[T]{
		create: func(_ context.Context) Iterator[T] {
			return iter
		},
	}
}

// FromSlice creates a stream from a slice of values.
func FromSlice[T any](items []T) *Stream[T] {
	return &Stream[T]{
		create: func(_ context.Context) Iterator[T] {
			return &sliceIter[T]{items: items}
		},
	}
}

// FromChannel creates a stream reading from ch until it is closed.
func FromChannel[T any](ch <-chan T) *Stream[T] {
	return &Stream[T]{
		create: func(_ context.Context) Iterator[T] {
			return &channelIter[T]{ch: ch}
		},
	}
}

// FromStore creates a stream of a store's states, starting with the current
// one. States are conflated: when the consumer falls behind the dispatcher,
// intermediate states are dropped and only the latest is retained. The
// stream never exhausts on its own; bound it with Take, a context, or by
// closing the iterator.
func FromStore[S any](store redux.Store[S]) *Stream[S] {
	return &Stream[S]{
		create: func(_ context.Context) Iterator[S] {
			it := &storeIter[S]{
				states: make(chan S, 1),
				done:   make(chan struct{}),
			}
			unsubscribe, err := store.Observe(redux.ObserverFunc[S](it.push))
			if err != nil {
				return &failedIter[S]{err: err}
			}
			it.unsubscribe = unsubscribe
			return it
		},
	}
}

// --- Terminals ---

// Drain creates a Runnable that pulls all values and sends each to sink.
func Drain[T any](s *Stream[T], sink func(context.Context, T) error) *Runnable {
	return &Runnable{
		run: func(ctx context.Context) error {
			iter := s.create(ctx)
			defer iter.Close()
			for {
				val, ok, err := iter.Next(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				if err := sink(ctx, val); err != nil {
					return err
				}
			}
		},
	}
}

// Collect runs the stream and returns all values as a slice.
func Collect[T any](ctx context.Context, s *Stream[T]) ([]T, error) {
	iter := s.create(ctx)
	defer iter.Close()
	var out []T
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, val)
	}
}

// ForEach pulls all values and calls fn for each. Convenience wrapper around Drain.
func ForEach[T any](ctx context.Context, s *Stream[T], fn func(context.Context, T) error) error {
	return Drain(s, fn).Run(ctx)
}

// Iter returns the raw Iterator for this stream. The caller must Close() it.
func (s *Stream[T]) Iter(ctx context.Context) Iterator[T] {
	return s.create(ctx)
}

// --- Internal iterators ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

type channelIter[T any] struct {
	ch <-chan T
}

func (it *channelIter[T]) Next(ctx context.Context) (T, bool, error) {
	select {
	case val, open := <-it.ch:
		if !open {
			var zero T
			return zero, false, nil
		}
		return val, true, nil
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

func (it *channelIter[T]) Close() error { return nil }

type storeIter[S any] struct {
	states      chan S
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe redux.UnsubscribeFunc
}

// push runs on the dispatching goroutine and must never block it. When the
// buffer is full the stale state is replaced, so the channel always holds
// the latest one.
func (it *storeIter[S]) push(state S) {
	select {
	case <-it.done:
		return
	default:
	}
	for {
		select {
		case it.states <- state:
			return
		default:
			select {
			case <-it.states:
			default:
			}
		}
	}
}

func (it *storeIter[S]) Next(ctx context.Context) (S, bool, error) {
	select {
	case state := <-it.states:
		return state, true, nil
	case <-it.done:
		var zero S
		return zero, false, nil
	case <-ctx.Done():
		var zero S
		return zero, false, ctx.Err()
	}
}

func (it *storeIter[S]) Close() error {
	var err error
	it.closeOnce.Do(func() {
		close(it.done)
		if it.unsubscribe != nil {
			err = it.unsubscribe()
		}
	})
	return err
}

type failedIter[T any] struct {
	err error
}

func (it *failedIter[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, it.err
}

func (it *failedIter[T]) Close() error { return nil }
