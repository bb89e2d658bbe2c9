package middleware

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/Feel-Joy/redux"
)

// WithLogging returns a middleware that logs each dispatch.
// Logs: action type, duration, and success/error status.
func WithLogging[S any](log zerolog.Logger) redux.Middleware[S] {
	return func(api redux.MiddlewareAPI[S]) func(redux.DispatchFunc) redux.DispatchFunc {
		return func(next redux.DispatchFunc) redux.DispatchFunc {
			return func(action redux.Action) (redux.Action, error) {
				start := time.Now()
				result, err := next(action)
				duration := time.Since(start)

				if err != nil {
					log.Error().
						Err(err).
						Str("action", actionType(action)).
						Dur("duration", duration).
						Msg("dispatch failed")
				} else {
					log.Debug().
						Str("action", actionType(action)).
						Dur("duration", duration).
						Msg("dispatch ok")
				}

				return result, err
			}
		}
	}
}
