package redux

// DispatchFunc is the unit of the dispatch pipeline: it accepts an action and
// returns the action that reached the end of the pipeline, or an error.
type DispatchFunc func(action Action) (Action, error)

// MiddlewareAPI is the fixed surface a middleware receives at construction
// time. State reads through to the base store. Dispatch re-enters the whole
// chain from the top and is late-bound: closures captured during
// construction keep working after the chain is finalized.
type MiddlewareAPI[S any] struct {
	State    func() (S, error)
	Dispatch DispatchFunc
}

// Middleware intercepts dispatched actions. Given the store API it returns a
// wrapper that receives the next pipeline stage and produces its own stage.
type Middleware[S any] func(api MiddlewareAPI[S]) func(next DispatchFunc) DispatchFunc

// dispatchCell is the indirection holding the pipeline head while the chain
// is under construction. Its initial content rejects every call;
// ApplyMiddleware swaps in the composed chain once it exists.
type dispatchCell struct {
	fn DispatchFunc
}

func (c *dispatchCell) dispatch(action Action) (Action, error) {
	return c.fn(action)
}

func chainGuard(Action) (Action, error) {
	return nil, ErrChainNotReady
}

// ApplyMiddleware returns an enhancer that threads dispatch through the given
// middleware, leftmost outermost: the first middleware sees each action first
// on the way in and last on the way out, with the base store's raw dispatch
// as the innermost stage.
//
// Only the dispatch path changes. State, Subscribe, ReplaceReducer, and
// Observe reach the base store untouched, and the replace dispatch issued by
// ReplaceReducer bypasses the chain entirely.
func ApplyMiddleware[S any](middlewares ...Middleware[S]) Enhancer[S] {
	return func(next StoreCreator[S]) StoreCreator[S] {
		return func(reducer Reducer[S], opts ...Option[S]) (Store[S], error) {
			for _, mw := range middlewares {
				if mw == nil {
					return nil, ErrMiddlewareRequired
				}
			}
			base, err := next(reducer, opts...)
			if err != nil {
				return nil, err
			}

			cell := &dispatchCell{fn: chainGuard}
			api := MiddlewareAPI[S]{
				State:    base.State,
				Dispatch: cell.dispatch,
			}
			wrappers := make([]func(DispatchFunc) DispatchFunc, 0, len(middlewares))
			for _, mw := range middlewares {
				wrappers = append(wrappers, mw(api))
			}
			cell.fn = Compose(wrappers...)(base.Dispatch)

			return &chainedStore[S]{Store: base, dispatch: cell.dispatch}, nil
		}
	}
}

// chainedStore is the enhanced store: the base store with only its dispatch
// replaced by the middleware chain.
type chainedStore[S any] struct {
	Store[S]
	dispatch DispatchFunc
}

func (s *chainedStore[S]) Dispatch(action Action) (Action, error) {
	return s.dispatch(action)
}
