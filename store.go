package redux

import "github.com/rs/zerolog"

// Reducer computes the next state from the current state and an action. It
// must be pure, and it must return an initial state when called with the zero
// value of S and an unknown action, which is how the init dispatch seeds the
// store. A panicking reducer propagates to the dispatch caller with the gate
// released and the state unchanged.
type Reducer[S any] func(state S, action Action) S

// Store owns one state value and orchestrates dispatch and subscription.
//
// Stores returned by New are not safe for concurrent use. One goroutine owns
// a store at a time; re-entrancy is cooperative and policed by the dispatch
// gate, which holds only while a reducer is executing. The stream package
// bridges state changes to concurrent consumers.
type Store[S any] interface {
	// State returns the current state. It fails while a reducer is
	// executing: the reducer already received the state as an argument.
	State() (S, error)

	// Dispatch validates the action, runs the reducer with the gate held,
	// notifies the committed listener snapshot in registration order, and
	// returns the action unchanged for chaining.
	Dispatch(action Action) (Action, error)

	// Subscribe registers a listener for change notifications and returns
	// its idempotent unsubscribe function. Listeners added while a dispatch
	// is notifying run from the next dispatch on.
	Subscribe(listener Listener) (UnsubscribeFunc, error)

	// ReplaceReducer swaps the reducer, then reseeds every state slice by
	// dispatching a reserved replace action through the base dispatch.
	ReplaceReducer(next Reducer[S]) error

	// Observe pushes the current state to the observer immediately, then
	// again after every change, until the returned function runs.
	Observe(observer Observer[S]) (UnsubscribeFunc, error)
}

// Option configures store construction.
type Option[S any] func(*storeConfig[S])

type storeConfig[S any] struct {
	preloaded    S
	hasPreloaded bool
	enhancers    []Enhancer[S]
	logger       zerolog.Logger
}

// WithPreloadedState seeds the store before the init dispatch runs, so the
// reducer sees it instead of the zero value and may fill defaults around it.
func WithPreloadedState[S any](state S) Option[S] {
	return func(cfg *storeConfig[S]) {
		cfg.preloaded = state
		cfg.hasPreloaded = true
	}
}

// WithEnhancer wraps store construction. The option is repeatable: multiple
// enhancers compose right to left like Compose, so the first one listed is
// the outermost.
func WithEnhancer[S any](enhancer Enhancer[S]) Option[S] {
	return func(cfg *storeConfig[S]) {
		cfg.enhancers = append(cfg.enhancers, enhancer)
	}
}

// WithLogger attaches a logger for store lifecycle events. The default is a
// no-op logger; the store never logs on the dispatch path itself, that is
// middleware territory.
func WithLogger[S any](logger zerolog.Logger) Option[S] {
	return func(cfg *storeConfig[S]) {
		cfg.logger = logger
	}
}

// New constructs a store driven by reducer.
//
// Without enhancers, New validates the reducer, seeds the state, and
// dispatches a reserved init action so State reflects the reducer's defaults
// before any user dispatch. With enhancers, construction is delegated
// entirely to the composed enhancer stack, which receives a creator building
// the base store with the same options.
func New[S any](reducer Reducer[S], opts ...Option[S]) (Store[S], error) {
	cfg := storeConfig[S]{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if len(cfg.enhancers) > 0 {
		for _, enhancer := range cfg.enhancers {
			if enhancer == nil {
				return nil, ErrEnhancerRequired
			}
		}
		base := cfg
		base.enhancers = nil
		creator := StoreCreator[S](func(r Reducer[S], extra ...Option[S]) (Store[S], error) {
			inner := base
			for _, opt := range extra {
				if opt != nil {
					opt(&inner)
				}
			}
			return newStore(r, inner)
		})
		return ComposeEnhancers(cfg.enhancers...)(creator)(reducer)
	}
	return newStore(reducer, cfg)
}

func newStore[S any](reducer Reducer[S], cfg storeConfig[S]) (Store[S], error) {
	if reducer == nil {
		return nil, ErrReducerRequired
	}
	s := &store[S]{
		reducer: reducer,
		state:   cfg.preloaded,
		subs:    newSubscriberSet(),
		log:     cfg.logger,
	}
	if _, err := s.Dispatch(initAction); err != nil {
		return nil, err
	}
	s.log.Debug().Bool("preloaded", cfg.hasPreloaded).Msg("store created")
	return s, nil
}

// store is the base implementation. Every field is unexported so no caller
// can reach past the gate.
type store[S any] struct {
	reducer     Reducer[S]
	state       S
	subs        *subscriberSet
	dispatching bool
	log         zerolog.Logger
}

func (s *store[S]) State() (S, error) {
	if s.dispatching {
		var zero S
		return zero, ErrStateDuringDispatch
	}
	return s.state, nil
}

func (s *store[S]) Dispatch(action Action) (Action, error) {
	if err := validateAction(action); err != nil {
		return nil, err
	}
	if s.dispatching {
		return nil, ErrNestedDispatch
	}

	s.reduce(action)

	snapshot := s.subs.commit()
	for i := 0; i < len(snapshot.entries); i++ {
		snapshot.entries[i].listener()
	}
	return action, nil
}

// reduce runs the reducer with the gate held. The deferred release executes
// on every exit path, so a panicking reducer propagates with the gate clear
// and the state unchanged.
func (s *store[S]) reduce(action Action) {
	s.dispatching = true
	defer func() { s.dispatching = false }()
	s.state = s.reducer(s.state, action)
}

func (s *store[S]) Subscribe(listener Listener) (UnsubscribeFunc, error) {
	if listener == nil {
		return nil, ErrListenerRequired
	}
	if s.dispatching {
		return nil, ErrSubscribeDuringDispatch
	}

	sub := s.subs.add(listener)
	s.log.Debug().Int("listeners", s.subs.len()).Msg("listener subscribed")

	subscribed := true
	return func() error {
		if !subscribed {
			return nil
		}
		if s.dispatching {
			return ErrUnsubscribeDuringDispatch
		}
		subscribed = false
		s.subs.remove(sub)
		s.log.Debug().Int("listeners", s.subs.len()).Msg("listener unsubscribed")
		return nil
	}, nil
}

func (s *store[S]) ReplaceReducer(next Reducer[S]) error {
	if next == nil {
		return ErrReducerRequired
	}
	s.reducer = next
	if _, err := s.Dispatch(replaceAction); err != nil {
		return err
	}
	s.log.Debug().Msg("reducer replaced")
	return nil
}
