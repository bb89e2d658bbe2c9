package stream

import (
	"context"
	"time"
)

// Throttle drops values that arrive faster than the given interval. Only
// the first value in each interval window is emitted; later values within
// the same window are dropped. Useful for rate-limiting downstream work
// driven by a chatty store.
func Throttle[T any](s *Stream[T], interval time.Duration) *Stream[T] {
	return &Stream[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &throttleIter[T]{
				source:   s.create(ctx),
				interval: interval,
			}
		},
	}
}

type throttleIter[T any] struct {
	source   Iterator[T]
	interval time.Duration
	lastEmit time.Time
}

func (it *throttleIter[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, ok, err
		}
		now := time.Now()
		if it.lastEmit.IsZero() || now.Sub(it.lastEmit) >= it.interval {
			it.lastEmit = now
			return val, true, nil
		}
		// Too soon, drop it.
	}
}

func (it *throttleIter[T]) Close() error { return it.source.Close() }
