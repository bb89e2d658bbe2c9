package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/Feel-Joy/redux"
)

// ErrDispatchPanic marks a downstream panic converted into an error by
// WithRecovery. The panic value is attached to the error message.
var ErrDispatchPanic = errors.New("middleware: dispatch panicked")

// WithRecovery returns a middleware that recovers from panics raised further
// down the chain, reducers included, logs the stack, and turns the panic
// into an error. Place it outermost so nothing escapes.
func WithRecovery[S any](log zerolog.Logger) redux.Middleware[S] {
	return func(api redux.MiddlewareAPI[S]) func(redux.DispatchFunc) redux.DispatchFunc {
		return func(next redux.DispatchFunc) redux.DispatchFunc {
			return func(action redux.Action) (result redux.Action, err error) {
				defer func() {
					if r := recover(); r != nil {
						log.Error().
							Str("action", actionType(action)).
							Str("panic", fmt.Sprintf("%v", r)).
							Str("stack", string(debug.Stack())).
							Msg("panic recovered")
						result = nil
						err = fmt.Errorf("%w: %v", ErrDispatchPanic, r)
					}
				}()
				return next(action)
			}
		}
	}
}
