package redux

// Observer receives state pushes from Observe.
type Observer[S any] interface {
	// Next is called with the current state at subscription time and after
	// every completed transition.
	Next(state S)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc[S any] func(state S)

func (f ObserverFunc[S]) Next(state S) { f(state) }

// Observe implements the minimal reactive protocol as a thin wrapper over
// Subscribe: the observer receives the current state once immediately, then
// after every change, until the returned unsubscribe function runs.
func (s *store[S]) Observe(observer Observer[S]) (UnsubscribeFunc, error) {
	if observer == nil {
		return nil, ErrObserverRequired
	}

	unsubscribe, err := s.Subscribe(func() {
		observer.Next(s.state)
	})
	if err != nil {
		return nil, err
	}
	observer.Next(s.state)
	return unsubscribe, nil
}
