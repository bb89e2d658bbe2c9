package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Feel-Joy/redux"
)

// WithTracing returns a middleware that opens an OpenTelemetry span around
// each dispatch. The span name is "{serviceName}.dispatch" and the action
// type is attached as an attribute. Spans are rooted in the background
// context since dispatch itself carries none.
func WithTracing[S any](serviceName string) redux.Middleware[S] {
	tracer := otel.Tracer(serviceName)
	return func(api redux.MiddlewareAPI[S]) func(redux.DispatchFunc) redux.DispatchFunc {
		return func(next redux.DispatchFunc) redux.DispatchFunc {
			return func(action redux.Action) (redux.Action, error) {
				_, span := tracer.Start(context.Background(), serviceName+".dispatch",
					trace.WithAttributes(attribute.String("action.type", actionType(action))),
				)
				defer span.End()

				result, err := next(action)
				if err != nil {
					span.RecordError(err)
				}

				return result, err
			}
		}
	}
}
