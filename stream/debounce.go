package stream

import (
	"context"
	"time"
)

// Debounce waits for silence of the given duration after the last value
// before emitting. If a new value arrives during the quiet period, the
// timer resets and only the latest value is emitted.
//
// On a state stream this yields "settled" states: bursts of dispatches
// collapse into the state they ended on.
func Debounce[T any](s *Stream[T], duration time.Duration) *Stream[T] {
	return &Stream[T]{
		create: func(ctx context.Context) Iterator[T] {
			source := s.create(ctx)
			debCtx, cancel := context.WithCancel(ctx)

			ch := make(chan result[T], 1)
			go feed(debCtx, source, ch)

			return &debounceIter[T]{
				ch:       ch,
				duration: duration,
				cancel:   cancel,
				closer:   source.Close,
			}
		},
	}
}

type debounceIter[T any] struct {
	ch       <-chan result[T]
	duration time.Duration
	cancel   context.CancelFunc
	closer   func() error
}

func (it *debounceIter[T]) Next(ctx context.Context) (T, bool, error) {
	var latest T
	hasValue := false
	timer := time.NewTimer(it.duration)
	defer timer.Stop()

	for {
		select {
		case r, open := <-it.ch:
			if !open {
				if hasValue {
					return latest, true, nil
				}
				var zero T
				return zero, false, nil
			}
			if r.err != nil {
				return r.val, false, r.err
			}
			latest = r.val
			hasValue = true
			// New value arrived, restart the quiet period.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(it.duration)

		case <-timer.C:
			if hasValue {
				return latest, true, nil
			}
			// Nothing buffered yet, keep waiting.
			timer.Reset(it.duration)

		case <-ctx.Done():
			var zero T
			return zero, false, ctx.Err()
		}
	}
}

func (it *debounceIter[T]) Close() error {
	it.cancel()
	return it.closer()
}
