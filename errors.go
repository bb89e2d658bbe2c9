package redux

import "errors"

// Sentinel errors returned by store operations. All of them are synchronous
// and fatal to the triggering call only: the store stays usable afterward,
// with the gate cleared and the prior state retained.
var (
	// ErrReducerRequired is returned when a nil reducer is passed to New or
	// ReplaceReducer.
	ErrReducerRequired = errors.New("redux: expected the reducer to be a non-nil function")

	// ErrEnhancerRequired is returned when a nil enhancer is passed to
	// WithEnhancer.
	ErrEnhancerRequired = errors.New("redux: expected the enhancer to be a non-nil function")

	// ErrListenerRequired is returned when a nil listener is passed to
	// Subscribe.
	ErrListenerRequired = errors.New("redux: expected the listener to be a non-nil function")

	// ErrObserverRequired is returned when a nil observer is passed to
	// Observe.
	ErrObserverRequired = errors.New("redux: expected the observer to be non-nil")

	// ErrInvalidAction is returned when the dispatched action is a nil
	// interface value or a nil pointer, neither of which can carry a
	// discriminator.
	ErrInvalidAction = errors.New("redux: actions must be non-nil values implementing Action")

	// ErrActionTypeEmpty is returned when the dispatched action reports an
	// empty discriminator.
	ErrActionTypeEmpty = errors.New("redux: actions may not have an empty type")

	// ErrNestedDispatch is returned when a reducer dispatches an action on
	// its own store during its own computation.
	ErrNestedDispatch = errors.New("redux: reducers may not dispatch actions")

	// ErrStateDuringDispatch is returned when State is called while the
	// reducer is executing. The reducer already receives the state as an
	// argument; pass it down instead of reading it from the store.
	ErrStateDuringDispatch = errors.New("redux: state may not be read while the reducer is executing")

	// ErrSubscribeDuringDispatch is returned when Subscribe is called while
	// the reducer is executing.
	ErrSubscribeDuringDispatch = errors.New("redux: listeners may not be added while the reducer is executing")

	// ErrUnsubscribeDuringDispatch is returned when an unsubscribe function
	// is first called while the reducer is executing.
	ErrUnsubscribeDuringDispatch = errors.New("redux: listeners may not be removed while the reducer is executing")

	// ErrChainNotReady is returned when a middleware dispatches during its
	// own construction, before the chain exists. Allowing it would silently
	// bypass every middleware constructed after the caller.
	ErrChainNotReady = errors.New("redux: dispatching while constructing middleware is not allowed")

	// ErrMiddlewareRequired is returned when a nil middleware is passed to
	// ApplyMiddleware.
	ErrMiddlewareRequired = errors.New("redux: expected the middleware to be a non-nil function")
)
