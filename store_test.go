package redux

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// typed is a minimal action carrying only its discriminator.
type typed struct{ t string }

func (a typed) ActionType() string { return a.t }

// increment and decrement drive the counter reducer used across the suite.
type increment struct{}

func (increment) ActionType() string { return "counter/increment" }

type decrement struct{}

func (decrement) ActionType() string { return "counter/decrement" }

func counter(state int, action Action) int {
	switch action.(type) {
	case increment:
		return state + 1
	case decrement:
		return state - 1
	default:
		return state
	}
}

// mapDefaults seeds the given defaults when the state is absent and passes
// the state through otherwise.
func mapDefaults(defaults map[string]int) Reducer[map[string]int] {
	return func(state map[string]int, _ Action) map[string]int {
		if state == nil {
			return defaults
		}
		return state
	}
}

// --- Construction tests ---

func TestNew_NilReducer(t *testing.T) {
	_, err := New[int](nil)
	require.ErrorIs(t, err, ErrReducerRequired)
}

func TestNew_SeedsDefaults(t *testing.T) {
	store, err := New(mapDefaults(map[string]int{"a": 1}))
	require.NoError(t, err)

	state, err := store.State()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, state)
}

func TestNew_PreloadedState(t *testing.T) {
	store, err := New(counter, WithPreloadedState(10))
	require.NoError(t, err)

	state, err := store.State()
	require.NoError(t, err)
	assert.Equal(t, 10, state)
}

func TestNew_InitReachesReducer(t *testing.T) {
	var seen []string
	recording := func(state int, action Action) int {
		seen = append(seen, action.ActionType())
		return state
	}

	_, err := New(recording)
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.True(t, strings.HasPrefix(seen[0], initTypePrefix))
}

func TestNew_NilEnhancerOption(t *testing.T) {
	_, err := New(counter, WithEnhancer[int](nil))
	require.ErrorIs(t, err, ErrEnhancerRequired)
}

func TestWithLogger_EmitsLifecycleEvents(t *testing.T) {
	var buf bytes.Buffer
	store, err := New(counter, WithLogger[int](zerolog.New(&buf)))
	require.NoError(t, err)

	_, err = store.Subscribe(func() {})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "store created")
	assert.Contains(t, buf.String(), "listener subscribed")
}

// --- Dispatch tests ---

func TestDispatch_ReturnsAction(t *testing.T) {
	store, err := New(counter)
	require.NoError(t, err)

	returned, err := store.Dispatch(typed{"a"})
	require.NoError(t, err)
	assert.Equal(t, typed{"a"}, returned)
}

func TestDispatch_AppliesReducer(t *testing.T) {
	store, err := New(counter)
	require.NoError(t, err)

	store.Dispatch(increment{})
	store.Dispatch(increment{})
	store.Dispatch(decrement{})

	state, err := store.State()
	require.NoError(t, err)
	assert.Equal(t, 1, state)
}

func TestDispatch_NilAction(t *testing.T) {
	store, _ := New(counter)
	_, err := store.Dispatch(nil)
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestDispatch_NilPointerAction(t *testing.T) {
	store, _ := New(counter)
	var action *typed
	_, err := store.Dispatch(action)
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestDispatch_EmptyActionType(t *testing.T) {
	store, _ := New(counter)
	_, err := store.Dispatch(typed{})
	require.ErrorIs(t, err, ErrActionTypeEmpty)
}

func TestDispatch_MalformedLeavesStateUntouched(t *testing.T) {
	store, _ := New(counter)
	store.Dispatch(increment{})

	_, err := store.Dispatch(typed{})
	require.Error(t, err)

	state, err := store.State()
	require.NoError(t, err)
	assert.Equal(t, 1, state)
}

func TestDispatch_FromReducerRejected(t *testing.T) {
	var store Store[int]
	var nested error
	reducer := func(state int, action Action) int {
		if action.ActionType() == "outer" {
			_, nested = store.Dispatch(typed{"inner"})
		}
		return state + 1
	}

	var err error
	store, err = New(reducer)
	require.NoError(t, err)
	before, _ := store.State()

	_, err = store.Dispatch(typed{"outer"})
	require.NoError(t, err)
	require.ErrorIs(t, nested, ErrNestedDispatch)

	// The outer reduction applied exactly once and the gate is released.
	state, err := store.State()
	require.NoError(t, err)
	assert.Equal(t, before+1, state)

	_, err = store.Dispatch(typed{"later"})
	require.NoError(t, err)
}

func TestDispatch_ReducerPanicReleasesGate(t *testing.T) {
	reducer := func(state int, action Action) int {
		if action.ActionType() == "explode" {
			panic("kaboom")
		}
		return state + 1
	}
	store, err := New(reducer)
	require.NoError(t, err)
	before, _ := store.State()

	require.Panics(t, func() { store.Dispatch(typed{"explode"}) })

	// Gate released, state untouched by the failed call, store still usable.
	state, err := store.State()
	require.NoError(t, err)
	assert.Equal(t, before, state)

	_, err = store.Dispatch(typed{"onward"})
	require.NoError(t, err)
	state, _ = store.State()
	assert.Equal(t, before+1, state)
}

func TestState_DuringReduce(t *testing.T) {
	var store Store[int]
	var readErr error
	reducer := func(state int, action Action) int {
		if action.ActionType() == "read" {
			_, readErr = store.State()
		}
		return state
	}

	store, _ = New(reducer)
	store.Dispatch(typed{"read"})
	require.ErrorIs(t, readErr, ErrStateDuringDispatch)
}

func TestSubscribe_DuringReduce(t *testing.T) {
	var store Store[int]
	var subErr error
	reducer := func(state int, action Action) int {
		if action.ActionType() == "register" {
			_, subErr = store.Subscribe(func() {})
		}
		return state
	}

	store, _ = New(reducer)
	store.Dispatch(typed{"register"})
	require.ErrorIs(t, subErr, ErrSubscribeDuringDispatch)
}

func TestUnsubscribe_DuringReduce(t *testing.T) {
	var store Store[int]
	var unsubscribe UnsubscribeFunc
	var unsubErr error
	reducer := func(state int, action Action) int {
		if action.ActionType() == "drop" && unsubscribe != nil {
			unsubErr = unsubscribe()
		}
		return state
	}

	store, _ = New(reducer)
	unsubscribe, _ = store.Subscribe(func() {})
	store.Dispatch(typed{"drop"})
	require.ErrorIs(t, unsubErr, ErrUnsubscribeDuringDispatch)
}

// --- Subscription tests ---

func TestSubscribe_NilListener(t *testing.T) {
	store, _ := New(counter)
	_, err := store.Subscribe(nil)
	require.ErrorIs(t, err, ErrListenerRequired)
}

func TestSubscribe_NotifiesInRegistrationOrder(t *testing.T) {
	store, _ := New(counter)
	var order []string
	store.Subscribe(func() { order = append(order, "first") })
	store.Subscribe(func() { order = append(order, "second") })
	store.Subscribe(func() { order = append(order, "third") })

	store.Dispatch(increment{})
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestUnsubscribe_Idempotent(t *testing.T) {
	store, _ := New(counter)
	calls := 0
	unsubscribe, err := store.Subscribe(func() { calls++ })
	require.NoError(t, err)

	require.NoError(t, unsubscribe())
	require.NoError(t, unsubscribe())

	store.Dispatch(increment{})
	assert.Equal(t, 0, calls)
}

func TestUnsubscribe_OnlyRemovesOwnListener(t *testing.T) {
	store, _ := New(counter)
	kept := 0
	unsubscribe, _ := store.Subscribe(func() {})
	store.Subscribe(func() { kept++ })

	require.NoError(t, unsubscribe())
	store.Dispatch(increment{})
	assert.Equal(t, 1, kept)
}

func TestSubscribe_AddedDuringNotifyRunsNextDispatch(t *testing.T) {
	store, _ := New(counter)
	lateCalls := 0
	registered := false
	store.Subscribe(func() {
		if registered {
			return
		}
		registered = true
		store.Subscribe(func() { lateCalls++ })
	})

	store.Dispatch(increment{})
	assert.Equal(t, 0, lateCalls)

	store.Dispatch(increment{})
	assert.Equal(t, 1, lateCalls)
}

func TestUnsubscribe_DuringNotifyKeepsCommittedSnapshot(t *testing.T) {
	store, _ := New(counter)
	victimCalls := 0
	var removeVictim UnsubscribeFunc

	store.Subscribe(func() {
		if removeVictim != nil {
			removeVictim()
			removeVictim = nil
		}
	})
	removeVictim, _ = store.Subscribe(func() { victimCalls++ })

	// The victim was committed before this dispatch, so it still runs once.
	store.Dispatch(increment{})
	assert.Equal(t, 1, victimCalls)

	store.Dispatch(increment{})
	assert.Equal(t, 1, victimCalls)
}

func TestUnsubscribe_SelfRemovalDuringNotify(t *testing.T) {
	store, _ := New(counter)
	selfCalls := 0
	otherCalls := 0
	var unsubscribeSelf UnsubscribeFunc
	unsubscribeSelf, _ = store.Subscribe(func() {
		selfCalls++
		unsubscribeSelf()
	})
	store.Subscribe(func() { otherCalls++ })

	store.Dispatch(increment{})
	store.Dispatch(increment{})

	assert.Equal(t, 1, selfCalls)
	assert.Equal(t, 2, otherCalls)
}

func TestListener_MayDispatch(t *testing.T) {
	store, _ := New(counter)
	chained := false
	store.Subscribe(func() {
		state, err := store.State()
		require.NoError(t, err)
		if state == 1 && !chained {
			chained = true
			_, err := store.Dispatch(increment{})
			require.NoError(t, err)
		}
	})

	store.Dispatch(increment{})
	state, _ := store.State()
	assert.Equal(t, 2, state)
}

// --- ReplaceReducer tests ---

func TestReplaceReducer_Nil(t *testing.T) {
	store, _ := New(counter)
	require.ErrorIs(t, store.ReplaceReducer(nil), ErrReducerRequired)
}

func TestReplaceReducer_SwapsBehavior(t *testing.T) {
	store, _ := New(counter)
	store.Dispatch(increment{})

	byTens := func(state int, action Action) int {
		if _, ok := action.(increment); ok {
			return state + 10
		}
		return state
	}
	require.NoError(t, store.ReplaceReducer(byTens))

	store.Dispatch(increment{})
	state, _ := store.State()
	assert.Equal(t, 11, state)
}

func TestReplaceReducer_DispatchesReplaceAction(t *testing.T) {
	var seen []string
	recording := func(state int, action Action) int {
		seen = append(seen, action.ActionType())
		return state
	}
	store, err := New(recording)
	require.NoError(t, err)

	require.NoError(t, store.ReplaceReducer(recording))
	require.Len(t, seen, 2)
	assert.True(t, strings.HasPrefix(seen[1], replaceTypePrefix))
}

func TestReplaceReducer_NotifiesListeners(t *testing.T) {
	store, _ := New(counter)
	notified := 0
	store.Subscribe(func() { notified++ })

	require.NoError(t, store.ReplaceReducer(counter))
	assert.Equal(t, 1, notified)
}
