// Package redux provides a minimal, synchronous unidirectional state container.
//
// A store owns a single state value that changes only by dispatching actions
// through a pure reducer. Listeners registered with Subscribe are notified
// synchronously after every successful transition, and a middleware chain can
// be spliced in front of dispatch without the store knowing about it.
//
// The container is deliberately synchronous and single-owner: dispatch either
// completes on the calling goroutine or returns an error, and a re-entrancy
// gate rejects reads and registry mutations while a reducer is running. One
// goroutine must own a store at a time; the stream package bridges state
// changes to concurrent consumers.
//
// # Core pieces
//
//   - Store: state storage, the dispatch pipeline, and a copy-on-write
//     listener registry with snapshot-consistent notification
//   - Compose: right-to-left composition of unary functions, used for both
//     middleware chains and enhancer stacks
//   - ApplyMiddleware: a store enhancer that wraps dispatch in a chain of
//     interceptors while leaving every other operation untouched
//
// # Usage
//
//	type increment struct{ By int }
//
//	func (increment) ActionType() string { return "counter/increment" }
//
//	counter := func(state int, action redux.Action) int {
//	    if inc, ok := action.(increment); ok {
//	        return state + inc.By
//	    }
//	    return state
//	}
//
//	store, err := redux.New(counter)
//	if err != nil {
//	    // handle
//	}
//	unsubscribe, _ := store.Subscribe(func() {
//	    n, _ := store.State()
//	    fmt.Println("count:", n)
//	})
//	defer unsubscribe()
//	store.Dispatch(increment{By: 1})
//
// With middleware:
//
//	store, err := redux.New(counter,
//	    redux.WithEnhancer(redux.ApplyMiddleware(
//	        middleware.WithRecovery[int](log),
//	        middleware.WithLogging[int](log),
//	    )),
//	)
package redux
