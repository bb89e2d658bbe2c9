package redux

// StoreCreator constructs a store from a reducer and options. New hands the
// enhancer stack a creator that builds the base store; each enhancer returns
// a creator building on the one it received.
type StoreCreator[S any] func(reducer Reducer[S], opts ...Option[S]) (Store[S], error)

// Enhancer wraps store construction to add cross-cutting capability without
// the store knowing about it. ApplyMiddleware is the canonical enhancer;
// anything else conforming to the shape composes with it.
type Enhancer[S any] func(next StoreCreator[S]) StoreCreator[S]

// ComposeEnhancers combines enhancers right to left, so the first enhancer
// listed wraps the result of all the ones after it. Enhancers doing work at
// construction time should therefore be listed last to run innermost.
func ComposeEnhancers[S any](enhancers ...Enhancer[S]) Enhancer[S] {
	fns := make([]func(StoreCreator[S]) StoreCreator[S], len(enhancers))
	for i, enhancer := range enhancers {
		fns[i] = enhancer
	}
	return Compose(fns...)
}
