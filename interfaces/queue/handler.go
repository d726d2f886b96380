// Package queue adapts SQS batches to the essay processing use-case.
package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"essay-backend/application/commands"
	"essay-backend/application/ports"
	"essay-backend/infrastructure/messaging/sqs"
	"essay-backend/pkg/common"
)

// EssayProcessor runs the grading pipeline for one essay.
type EssayProcessor interface {
	ProcessEssay(ctx context.Context, cmd commands.ProcessEssayCommand) (*commands.ProcessEssayResult, error)
}

// Handler processes essay messages one at a time and reports the ids of
// the messages that failed, so only those are redelivered.
type Handler struct {
	processor EssayProcessor
	logger    *zap.Logger
}

func NewHandler(processor EssayProcessor, logger *zap.Logger) *Handler {
	return &Handler{processor: processor, logger: logger}
}

// Handle is the SQS event handler registered with the Lambda runtime.
func (h *Handler) Handle(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	var failures []events.SQSBatchItemFailure

	for _, record := range event.Records {
		if err := h.handleRecord(ctx, record); err != nil {
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
	}

	if len(failures) > 0 {
		h.logger.Warn("Batch finished with failures",
			zap.Int("records", len(event.Records)),
			zap.Int("failed", len(failures)),
		)
	}
	return events.SQSEventResponse{BatchItemFailures: failures}, nil
}

func (h *Handler) handleRecord(ctx context.Context, record events.SQSMessage) error {
	ctx = common.WithStartTime(ctx, time.Now())
	logger := h.logger.With(zap.String("messageID", record.MessageId))

	if attr, ok := record.MessageAttributes[sqs.CorrelationIDAttribute]; ok && attr.StringValue != nil {
		ctx = common.WithCorrelationID(ctx, *attr.StringValue)
		logger = logger.With(zap.String("correlationID", *attr.StringValue))
	}

	var msg ports.ProcessEssayMessage
	if err := json.Unmarshal([]byte(record.Body), &msg); err != nil {
		logger.Error("Failed to decode essay message", zap.Error(err))
		return err
	}

	result, err := h.processor.ProcessEssay(ctx, commands.ProcessEssayCommand{
		EssayID:    msg.EssayID,
		UserID:     msg.UserID,
		AIProvider: string(msg.AIProvider),
	})
	if err != nil {
		logger.Error("Essay processing failed",
			zap.String("essayID", msg.EssayID),
			zap.Duration("elapsed", common.GetElapsedTime(ctx)),
			zap.Error(err),
		)
		return err
	}

	logger.Info("Essay processed",
		zap.String("essayID", msg.EssayID),
		zap.Int("totalScore", result.Correction.TotalScore),
		zap.Duration("elapsed", common.GetElapsedTime(ctx)),
	)
	return nil
}
