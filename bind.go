package redux

// Bind wires a no-argument action creator to a dispatch function, so callers
// can trigger a transition without holding the store. Both arguments must be
// non-nil.
func Bind(dispatch DispatchFunc, creator func() Action) func() (Action, error) {
	return func() (Action, error) {
		return dispatch(creator())
	}
}

// Bind1 wires a single-argument action creator to a dispatch function.
func Bind1[T any](dispatch DispatchFunc, creator func(arg T) Action) func(arg T) (Action, error) {
	return func(arg T) (Action, error) {
		return dispatch(creator(arg))
	}
}
