package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"essay-backend/application/ports"
)

// CorrelationIDAttribute is the message attribute carrying the correlation id.
const CorrelationIDAttribute = "correlationId"

// maxDelay is the largest per-message delay SQS accepts.
const maxDelay = 15 * time.Minute

// SendAPI is the SQS operation the queue adapter uses.
type SendAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Queue sends JSON messages to one SQS queue.
type Queue struct {
	client   SendAPI
	queueURL string
	logger   *zap.Logger
}

// NewQueue creates a queue adapter for queueURL
func NewQueue(client SendAPI, queueURL string, logger *zap.Logger) *Queue {
	return &Queue{client: client, queueURL: queueURL, logger: logger}
}

var _ ports.Queue = (*Queue)(nil)

// Send marshals message to JSON and enqueues it after delay.
func (q *Queue) Send(ctx context.Context, message interface{}, delay time.Duration) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if delay < 0 {
		delay = 0
	}
	if delay > maxDelay {
		delay = maxDelay
	}

	correlationID := uuid.NewString()
	out, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(q.queueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: int32(delay / time.Second),
		MessageAttributes: map[string]types.MessageAttributeValue{
			CorrelationIDAttribute: {
				DataType:    aws.String("String"),
				StringValue: aws.String(correlationID),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	q.logger.Info("Message enqueued",
		zap.String("messageId", aws.ToString(out.MessageId)),
		zap.String("correlationId", correlationID),
	)
	return nil
}
