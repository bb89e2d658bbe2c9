// Package middleware provides stock dispatch middleware: logging, panic
// recovery, metrics, tracing, and action validation.
//
// Each constructor returns a redux.Middleware ready for ApplyMiddleware.
// Order matters: the first middleware is outermost. A sensible full stack
// puts recovery first so it catches panics from everything below it:
//
//	store, err := redux.New(reducer, redux.WithEnhancer(redux.ApplyMiddleware(
//	    middleware.WithRecovery[State](log),
//	    middleware.WithLogging[State](log),
//	    middleware.WithMetrics[State](instruments),
//	    middleware.WithTracing[State]("myapp"),
//	    middleware.WithValidation[State](),
//	)))
//
// Metrics and tracing use the OpenTelemetry API against the globally
// registered providers; without a configured SDK they are no-ops.
package middleware
