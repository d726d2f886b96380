package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCounterStore struct {
	mock.Mock
}

func (m *mockCounterStore) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, params)
	return &dynamodb.UpdateItemOutput{}, args.Error(1)
}

func TestRateLimiterAllow(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 12, 0, 30, 0, time.UTC)

	t.Run("under limit", func(t *testing.T) {
		store := new(mockCounterStore)
		var input *dynamodb.UpdateItemInput
		store.On("UpdateItem", ctx, mock.Anything).
			Run(func(args mock.Arguments) { input = args.Get(1).(*dynamodb.UpdateItemInput) }).
			Return(nil, nil)

		limiter := NewRateLimiter(store, "main", 5, time.Minute, "AUTH")
		limiter.now = func() time.Time { return fixed }

		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)

		require.NotNil(t, input)
		assert.Equal(t, "main", aws.ToString(input.TableName))
		assert.Equal(t, "RATELIMIT#AUTH#10.0.0.1", input.Key["PK"].(*types.AttributeValueMemberS).Value)
		assert.Equal(t, "WINDOW#1714564800", input.Key["SK"].(*types.AttributeValueMemberS).Value)
		assert.NotNil(t, input.ConditionExpression)
	})

	t.Run("limit reached", func(t *testing.T) {
		store := new(mockCounterStore)
		store.On("UpdateItem", ctx, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{Message: aws.String("limit")})

		allowed, err := NewRateLimiter(store, "main", 5, time.Minute, "AUTH").Allow(ctx, "k")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("store failure fails open", func(t *testing.T) {
		store := new(mockCounterStore)
		store.On("UpdateItem", ctx, mock.Anything).Return(nil, errors.New("throttled"))

		allowed, err := NewRateLimiter(store, "main", 5, time.Minute, "AUTH").Allow(ctx, "k")
		assert.Error(t, err)
		assert.True(t, allowed)
	})

	t.Run("disabled", func(t *testing.T) {
		allowed, err := NewRateLimiter(nil, "main", 0, 0, "AUTH").Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}
