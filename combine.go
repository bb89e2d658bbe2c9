package redux

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/rs/zerolog"
)

// CombineOption configures CombineReducers.
type CombineOption func(*combineConfig)

type combineConfig struct {
	logger zerolog.Logger
}

// CombineLogger enables unexpected-key warnings through the given logger.
// Without it the combined reducer stays silent.
func CombineLogger(logger zerolog.Logger) CombineOption {
	return func(cfg *combineConfig) { cfg.logger = logger }
}

// CombineReducers builds a single reducer over a map-shaped state from one
// child reducer per key. Each child owns the slice stored under its key and
// receives nil when the slice is absent; an untyped nil result is never
// legal, it plays the role of an absent value.
//
// Shape violations surface eagerly: before the combined reducer is returned,
// every child is probed with the init action and with a random unknown
// action, and must produce a non-nil state for both. A nil child reducer is
// likewise an error.
//
// The combined reducer runs children in sorted key order, panics with a
// descriptive error if a child returns nil mid-flight, and returns the
// previous map unchanged when no child produced a new slice, preserving map
// identity for cheap change detection.
func CombineReducers(reducers map[string]Reducer[any], opts ...CombineOption) (Reducer[map[string]any], error) {
	cfg := combineConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	keys := make([]string, 0, len(reducers))
	for key, reducer := range reducers {
		if reducer == nil {
			return nil, fmt.Errorf("redux: no reducer provided for key %q", key)
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if err := assertReducerShape(key, reducers[key]); err != nil {
			return nil, err
		}
	}

	warned := make(map[string]bool)
	return func(state map[string]any, action Action) map[string]any {
		warnUnexpectedKeys(cfg.logger, warned, state, reducers, action)

		hasChanged := false
		nextState := make(map[string]any, len(keys))
		for _, key := range keys {
			previous := state[key]
			next := reducers[key](previous, action)
			if next == nil {
				panic(fmt.Errorf("redux: reducer for key %q returned nil when handling action type %q", key, action.ActionType()))
			}
			nextState[key] = next
			hasChanged = hasChanged || !identical(next, previous)
		}
		hasChanged = hasChanged || len(keys) != len(state)
		if !hasChanged {
			if state == nil {
				// Seed the empty shape when there was no incoming state.
				return nextState
			}
			return state
		}
		return nextState
	}, nil
}

// assertReducerShape checks that a child reducer seeds an initial state and
// leaves unknown actions alone, mirroring the init dispatch every store
// performs against the combined reducer.
func assertReducerShape(key string, reducer Reducer[any]) error {
	if reducer(nil, initAction) == nil {
		return fmt.Errorf("redux: reducer for key %q returned nil during initialization; return the initial state explicitly when the state argument is nil", key)
	}
	if reducer(nil, probeAction()) == nil {
		return fmt.Errorf("redux: reducer for key %q returned nil when probed with a random action type; do not handle reserved action types", key)
	}
	return nil
}

// warnUnexpectedKeys logs once per state key no child reducer owns. Replace
// actions skip the check, since the incoming state may legitimately predate
// the reducer map that is taking over.
func warnUnexpectedKeys(logger zerolog.Logger, warned map[string]bool, state map[string]any, reducers map[string]Reducer[any], action Action) {
	if action.ActionType() == replaceAction.typ {
		return
	}
	for key := range state {
		if _, owned := reducers[key]; owned || warned[key] {
			continue
		}
		warned[key] = true
		logger.Warn().Str("key", key).Msg("state key has no matching reducer and will be ignored")
	}
}

// identical reports whether two state slices are the same value: reference
// identity for reference kinds, value equality for comparable values, false
// otherwise. It stands in for reference comparison in the change check
// without panicking on maps and slices stored in interfaces.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	default:
		if !va.Type().Comparable() {
			return false
		}
		return a == b
	}
}
