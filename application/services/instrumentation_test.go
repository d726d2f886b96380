package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"essay-backend/pkg/common"
)

type recordedOp struct {
	name string
	err  error
}

type recordingMetrics struct {
	ops []recordedOp
}

func (m *recordingMetrics) RecordOperation(_ context.Context, operation string, _ time.Duration, err error) {
	m.ops = append(m.ops, recordedOp{name: operation, err: err})
}

func (m *recordingMetrics) RecordEssayGraded(context.Context, string, int, time.Duration) {}

type recordingTracer struct {
	spans []string
}

func (t *recordingTracer) TraceFunction(ctx context.Context, name string, fn func(context.Context) error) error {
	t.spans = append(t.spans, name)
	return fn(ctx)
}

func (t *recordingTracer) AddAnnotation(context.Context, string, string) {}

func TestInstrument(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	metrics := &recordingMetrics{}
	tracer := &recordingTracer{}
	in := NewInstrumentation(metrics, tracer, zap.New(core))

	ctx := common.WithCorrelationID(context.Background(), "corr-1")

	got, err := instrument(ctx, in, "GetThing", func(context.Context) (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	boom := errors.New("boom")
	_, err = instrument(ctx, in, "BreakThing", func(context.Context) (*struct{}, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"GetThing", "BreakThing"}, tracer.spans)
	assert.Equal(t, []recordedOp{{name: "GetThing"}, {name: "BreakThing", err: boom}}, metrics.ops)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "corr-1", entries[0].ContextMap()["correlationID"])
	assert.Equal(t, false, entries[1].ContextMap()["success"])
}
