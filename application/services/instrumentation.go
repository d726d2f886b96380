// Package services groups the use-cases behind the controllers used by
// the HTTP and queue entry points.
package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"essay-backend/application/ports"
	"essay-backend/pkg/common"
)

// Instrumentation wraps every use-case call in a trace span, an operation
// metric and a debug log line.
type Instrumentation struct {
	metrics ports.Metrics
	tracer  ports.Tracer
	logger  *zap.Logger
}

func NewInstrumentation(metrics ports.Metrics, tracer ports.Tracer, logger *zap.Logger) *Instrumentation {
	return &Instrumentation{metrics: metrics, tracer: tracer, logger: logger}
}

func instrument[T any](ctx context.Context, in *Instrumentation, operation string, fn func(context.Context) (T, error)) (T, error) {
	var result T
	start := time.Now()

	err := in.tracer.TraceFunction(ctx, operation, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})

	duration := time.Since(start)
	in.metrics.RecordOperation(ctx, operation, duration, err)
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.Duration("duration", duration),
		zap.Bool("success", err == nil),
	}
	if id, ok := common.GetRequestID(ctx); ok {
		fields = append(fields, zap.String("requestID", id))
	}
	if id, ok := common.GetCorrelationID(ctx); ok {
		fields = append(fields, zap.String("correlationID", id))
	}
	in.logger.Debug("Operation finished", fields...)
	return result, err
}
