package eventbridge

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"essay-backend/domain/events"
)

type mockEventBridge struct {
	mock.Mock
}

func (m *mockEventBridge) PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*eventbridge.PutEventsOutput)
	return out, args.Error(1)
}

func failedEvent(id string) events.DomainEvent {
	return events.NewEssayFailed(id, "u1", "boom", time.Now())
}

func TestPublishBatchesOfTen(t *testing.T) {
	ctx := context.Background()
	client := new(mockEventBridge)
	client.On("PutEvents", ctx, mock.MatchedBy(func(in *eventbridge.PutEventsInput) bool { return len(in.Entries) == 10 })).
		Return(&eventbridge.PutEventsOutput{}, nil).Once()
	client.On("PutEvents", ctx, mock.MatchedBy(func(in *eventbridge.PutEventsInput) bool {
		return len(in.Entries) == 2 && aws.ToString(in.Entries[0].DetailType) == events.TypeEssayFailed
	})).Return(&eventbridge.PutEventsOutput{}, nil).Once()

	evts := make([]events.DomainEvent, 12)
	for i := range evts {
		evts[i] = failedEvent("e")
	}

	assert.NoError(t, NewPublisher(client, "bus", zap.NewNop()).Publish(ctx, evts...))
	client.AssertExpectations(t)
}

func TestPublishReportsFailedEntries(t *testing.T) {
	ctx := context.Background()
	client := new(mockEventBridge)
	client.On("PutEvents", ctx, mock.Anything).Return(&eventbridge.PutEventsOutput{
		FailedEntryCount: 1,
		Entries:          []types.PutEventsResultEntry{{ErrorCode: aws.String("InternalFailure")}},
	}, nil)

	err := NewPublisher(client, "bus", zap.NewNop()).Publish(ctx, failedEvent("e1"))
	assert.ErrorContains(t, err, "1 events failed")
}

func TestPublishDisabledBus(t *testing.T) {
	client := new(mockEventBridge)
	err := NewPublisher(client, "", zap.NewNop()).Publish(context.Background(), failedEvent("e1"))
	assert.NoError(t, err)
	client.AssertNotCalled(t, "PutEvents", mock.Anything, mock.Anything)
}
