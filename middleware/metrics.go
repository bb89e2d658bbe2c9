package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Feel-Joy/redux"
)

// Metrics holds OpenTelemetry metric instruments for dispatch observability.
type Metrics struct {
	dispatchTotal    metric.Int64Counter
	dispatchDuration metric.Float64Histogram
	errorTotal       metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	dispatchTotal, err := meter.Int64Counter("dispatch.total",
		metric.WithDescription("Total number of dispatched actions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dispatch.total counter: %w", err)
	}

	dispatchDuration, err := meter.Float64Histogram("dispatch.duration",
		metric.WithDescription("Duration of dispatches in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dispatch.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("dispatch.errors",
		metric.WithDescription("Total dispatch errors by action type"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dispatch.errors counter: %w", err)
	}

	return &Metrics{
		dispatchTotal:    dispatchTotal,
		dispatchDuration: dispatchDuration,
		errorTotal:       errorTotal,
	}, nil
}

func (m *Metrics) record(ctx context.Context, action, status string, duration time.Duration) {
	m.dispatchTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("status", status),
	))
	m.dispatchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("action", action),
	))
}

func (m *Metrics) recordError(ctx context.Context, action string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
	))
}

// WithMetrics returns a middleware that records dispatch count, duration,
// and errors on the given instruments. Dispatch is synchronous and carries
// no context, so instruments record against the background context.
func WithMetrics[S any](m *Metrics) redux.Middleware[S] {
	return func(api redux.MiddlewareAPI[S]) func(redux.DispatchFunc) redux.DispatchFunc {
		return func(next redux.DispatchFunc) redux.DispatchFunc {
			return func(action redux.Action) (redux.Action, error) {
				ctx := context.Background()
				start := time.Now()
				result, err := next(action)
				duration := time.Since(start)

				status := "ok"
				if err != nil {
					status = "error"
					m.recordError(ctx, actionType(action))
				}
				m.record(ctx, actionType(action), status, duration)

				return result, err
			}
		}
	}
}
