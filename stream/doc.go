// Package stream provides composable, pull-based operators over sequences
// of values, with a bridge from store state changes.
//
// Streams are lazy. No work happens until values are pulled via Collect,
// Drain, or ForEach; each stage pulls from the previous one on demand.
//
// FromStore turns a store into an endless stream of its states, starting
// with the current one. Because dispatch must never block on a slow
// consumer, states are conflated: if the consumer lags, intermediate
// states are dropped and only the latest survives. Bound such streams
// with Take or a cancellable context.
//
// # Operators
//
//   - Map: transform each value
//   - Filter: keep values matching a predicate
//   - DistinctUntil: drop consecutive values a custom equality considers the same
//   - Tap: side-effect without altering the value
//   - Take: end the stream after n values
//   - Debounce: emit the latest value once input goes quiet
//   - Throttle: emit at most one value per interval
//
// # Usage
//
//	states := stream.FromStore(store)
//	counts := stream.Map(states, func(_ context.Context, s AppState) (int, error) {
//	    return s.Count, nil
//	})
//	changed := stream.DistinctUntil(counts, func(a, b int) bool { return a == b })
//	first3, err := stream.Collect(ctx, stream.Take(changed, 3))
package stream
