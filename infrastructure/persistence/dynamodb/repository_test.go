package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"essay-backend/application/ports"
	"essay-backend/domain/core/entities"
	"essay-backend/domain/core/valueobjects"
	apperrors "essay-backend/pkg/errors"
)

type mockDynamoDB struct {
	mock.Mock
}

func (m *mockDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.GetItemOutput)
	return out, args.Error(1)
}

func (m *mockDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.PutItemOutput)
	return out, args.Error(1)
}

func (m *mockDynamoDB) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.UpdateItemOutput)
	return out, args.Error(1)
}

func (m *mockDynamoDB) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.DeleteItemOutput)
	return out, args.Error(1)
}

func (m *mockDynamoDB) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.QueryOutput)
	return out, args.Error(1)
}

func newTestEssayRepo(client *mockDynamoDB) *EssayRepository {
	return NewEssayRepository(NewStore(client, "main"), "GSI1", "GSI2", zap.NewNop())
}

func stringAttr(item map[string]types.AttributeValue, key string) string {
	if s, ok := item[key].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func hasStringValue(values map[string]types.AttributeValue, want string) bool {
	for _, v := range values {
		if s, ok := v.(*types.AttributeValueMemberS); ok && s.Value == want {
			return true
		}
	}
	return false
}

func sampleEssay(t *testing.T) *entities.Essay {
	t.Helper()
	e, err := entities.NewEssay(entities.NewEssayParams{
		UserID:  "user-1",
		Title:   "Desafios da educação",
		Content: "texto da redação",
	}, time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC))
	require.NoError(t, err)
	return e
}

func TestEssayRepositoryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("writes keys and projections", func(t *testing.T) {
		client := new(mockDynamoDB)
		var input *dynamodb.PutItemInput
		client.On("PutItem", ctx, mock.Anything).
			Run(func(args mock.Arguments) { input = args.Get(1).(*dynamodb.PutItemInput) }).
			Return(&dynamodb.PutItemOutput{}, nil)

		essay := sampleEssay(t)
		require.NoError(t, newTestEssayRepo(client).Create(ctx, essay))

		item := input.Item
		assert.Equal(t, "USER#user-1", stringAttr(item, "PK"))
		assert.Equal(t, "ESSAY#"+essay.ID, stringAttr(item, "SK"))
		assert.Equal(t, "ESSAY#STATUS#pending", stringAttr(item, "GSI1PK"))
		assert.Equal(t, "ESSAY#2024-02-03T04:05:06.000Z", stringAttr(item, "GSI1SK"))
		assert.Equal(t, "ESSAY#USER#user-1", stringAttr(item, "GSI2PK"))
		assert.Equal(t, "ESSAY", stringAttr(item, "type"))
		assert.NotContains(t, item, "fileKey")
		assert.NotNil(t, input.ConditionExpression)
	})

	t.Run("duplicate id is a conflict", func(t *testing.T) {
		client := new(mockDynamoDB)
		client.On("PutItem", ctx, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := newTestEssayRepo(client).Create(ctx, sampleEssay(t))
		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestEssayRepositoryFindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		client := new(mockDynamoDB)
		client.On("GetItem", ctx, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		_, err := newTestEssayRepo(client).FindByID(ctx, "user-1", "nope")
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("round trip", func(t *testing.T) {
		essay := sampleEssay(t)
		av, err := attributevalue.MarshalMap(newEssayItem(essay))
		require.NoError(t, err)

		client := new(mockDynamoDB)
		client.On("GetItem", ctx, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			return stringAttr(in.Key, "PK") == "USER#user-1" && stringAttr(in.Key, "SK") == "ESSAY#"+essay.ID
		})).Return(&dynamodb.GetItemOutput{Item: av}, nil)

		got, err := newTestEssayRepo(client).FindByID(ctx, "user-1", essay.ID)
		require.NoError(t, err)
		assert.Equal(t, essay.ID, got.ID)
		assert.Equal(t, valueobjects.StatusPending, got.Status)
		assert.True(t, essay.CreatedAt.Equal(got.CreatedAt))
	})
}

func TestEssayRepositoryUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("status change moves projection", func(t *testing.T) {
		client := new(mockDynamoDB)
		var input *dynamodb.UpdateItemInput
		client.On("UpdateItem", ctx, mock.Anything).
			Run(func(args mock.Arguments) { input = args.Get(1).(*dynamodb.UpdateItemInput) }).
			Return(&dynamodb.UpdateItemOutput{}, nil)

		status := valueobjects.StatusCompleted
		err := newTestEssayRepo(client).Update(ctx, "user-1", "e1", ports.EssayUpdate{Status: &status})
		require.NoError(t, err)

		assert.True(t, hasStringValue(input.ExpressionAttributeValues, "ESSAY#STATUS#completed"))
		assert.True(t, hasStringValue(input.ExpressionAttributeValues, "completed"))
		assert.NotNil(t, input.ConditionExpression)
		assert.Contains(t, aws.ToString(input.UpdateExpression), "SET")
	})

	t.Run("failed status removes correction", func(t *testing.T) {
		client := new(mockDynamoDB)
		var input *dynamodb.UpdateItemInput
		client.On("UpdateItem", ctx, mock.Anything).
			Run(func(args mock.Arguments) { input = args.Get(1).(*dynamodb.UpdateItemInput) }).
			Return(&dynamodb.UpdateItemOutput{}, nil)

		status := valueobjects.StatusFailed
		err := newTestEssayRepo(client).Update(ctx, "user-1", "e1", ports.EssayUpdate{Status: &status, ClearCorrection: true})
		require.NoError(t, err)

		assert.Contains(t, aws.ToString(input.UpdateExpression), "REMOVE")
		names := make([]string, 0, len(input.ExpressionAttributeNames))
		for _, name := range input.ExpressionAttributeNames {
			names = append(names, name)
		}
		assert.Contains(t, names, "correction")
	})

	t.Run("missing essay", func(t *testing.T) {
		client := new(mockDynamoDB)
		client.On("UpdateItem", ctx, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		status := valueobjects.StatusProcessing
		err := newTestEssayRepo(client).Update(ctx, "user-1", "e1", ports.EssayUpdate{Status: &status})
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestEssayRepositoryListByStatus(t *testing.T) {
	ctx := context.Background()
	client := new(mockDynamoDB)

	essay := sampleEssay(t)
	av, err := attributevalue.MarshalMap(newEssayItem(essay))
	require.NoError(t, err)

	lastKey := map[string]types.AttributeValue{
		"PK":     &types.AttributeValueMemberS{Value: "USER#user-1"},
		"SK":     &types.AttributeValueMemberS{Value: "ESSAY#" + essay.ID},
		"GSI1PK": &types.AttributeValueMemberS{Value: "ESSAY#STATUS#pending"},
		"GSI1SK": &types.AttributeValueMemberS{Value: "ESSAY#2024-02-03T04:05:06.000Z"},
	}

	var first *dynamodb.QueryInput
	client.On("Query", ctx, mock.MatchedBy(func(in *dynamodb.QueryInput) bool { return in.ExclusiveStartKey == nil })).
		Run(func(args mock.Arguments) { first = args.Get(1).(*dynamodb.QueryInput) }).
		Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{av}, LastEvaluatedKey: lastKey}, nil).Once()

	repo := newTestEssayRepo(client)
	page, err := repo.ListByStatus(ctx, "user-1", valueobjects.StatusPending, ports.ListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotEmpty(t, page.NextToken)

	assert.Equal(t, "GSI1", aws.ToString(first.IndexName))
	assert.Equal(t, int32(defaultPageSize), aws.ToInt32(first.Limit))
	assert.False(t, aws.ToBool(first.ScanIndexForward))
	assert.NotNil(t, first.FilterExpression)
	assert.True(t, hasStringValue(first.ExpressionAttributeValues, "user-1"))

	client.On("Query", ctx, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExclusiveStartKey != nil && stringAttr(in.ExclusiveStartKey, "GSI1SK") == "ESSAY#2024-02-03T04:05:06.000Z"
	})).Return(&dynamodb.QueryOutput{}, nil).Once()

	next, err := repo.ListByStatus(ctx, "user-1", valueobjects.StatusPending, ports.ListOptions{NextToken: page.NextToken})
	require.NoError(t, err)
	assert.Empty(t, next.Items)
	assert.Empty(t, next.NextToken)
	client.AssertExpectations(t)
}

func TestEssayRepositoryListByStatusFilteredPage(t *testing.T) {
	ctx := context.Background()
	client := new(mockDynamoDB)

	essay := sampleEssay(t)
	av, err := attributevalue.MarshalMap(newEssayItem(essay))
	require.NoError(t, err)

	lastKey := map[string]types.AttributeValue{
		"PK":     &types.AttributeValueMemberS{Value: "USER#user-2"},
		"SK":     &types.AttributeValueMemberS{Value: "ESSAY#other"},
		"GSI1PK": &types.AttributeValueMemberS{Value: "ESSAY#STATUS#pending"},
		"GSI1SK": &types.AttributeValueMemberS{Value: "ESSAY#2024-03-01T00:00:00.000Z"},
	}

	// every item the first read examined belonged to another owner
	client.On("Query", ctx, mock.MatchedBy(func(in *dynamodb.QueryInput) bool { return in.ExclusiveStartKey == nil })).
		Return(&dynamodb.QueryOutput{LastEvaluatedKey: lastKey}, nil).Once()
	client.On("Query", ctx, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return in.ExclusiveStartKey != nil && stringAttr(in.ExclusiveStartKey, "GSI1SK") == "ESSAY#2024-03-01T00:00:00.000Z"
	})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{av}}, nil).Once()

	repo := newTestEssayRepo(client)
	page, err := repo.ListByStatus(ctx, "user-1", valueobjects.StatusPending, ports.ListOptions{Limit: 1})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	require.NotEmpty(t, page.NextToken)

	next, err := repo.ListByStatus(ctx, "user-1", valueobjects.StatusPending, ports.ListOptions{Limit: 1, NextToken: page.NextToken})
	require.NoError(t, err)
	require.Len(t, next.Items, 1)
	assert.Equal(t, essay.ID, next.Items[0].ID)
	assert.Empty(t, next.NextToken)
	client.AssertExpectations(t)
}

func TestEssayRepositoryListByUser(t *testing.T) {
	ctx := context.Background()
	client := new(mockDynamoDB)
	client.On("Query", ctx, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return aws.ToString(in.IndexName) == "GSI2" && in.FilterExpression == nil && aws.ToInt32(in.Limit) == maxPageSize
	})).Return(&dynamodb.QueryOutput{}, nil)

	page, err := newTestEssayRepo(client).ListByUser(ctx, "user-1", ports.ListOptions{Limit: 1000})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestInvalidContinuationToken(t *testing.T) {
	client := new(mockDynamoDB)
	_, err := newTestEssayRepo(client).ListByUser(context.Background(), "u", ports.ListOptions{NextToken: "%%%"})
	assert.True(t, apperrors.IsValidation(err))
	client.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create writes email projection", func(t *testing.T) {
		client := new(mockDynamoDB)
		var input *dynamodb.PutItemInput
		client.On("PutItem", ctx, mock.Anything).
			Run(func(args mock.Arguments) { input = args.Get(1).(*dynamodb.PutItemInput) }).
			Return(&dynamodb.PutItemOutput{}, nil)

		repo := NewUserRepository(NewStore(client, "main"), "GSI1", zap.NewNop())
		require.NoError(t, repo.Create(ctx, entities.NewUser("sub-1", "Ana@Example.com", "Ana", "", time.Now())))

		assert.Equal(t, "USER#sub-1", stringAttr(input.Item, "PK"))
		assert.Equal(t, "USER#sub-1", stringAttr(input.Item, "SK"))
		assert.Equal(t, "USER#EMAIL#ana@example.com", stringAttr(input.Item, "GSI1PK"))
		assert.Equal(t, "USER", stringAttr(input.Item, "type"))
	})

	t.Run("find by email", func(t *testing.T) {
		client := new(mockDynamoDB)
		av, err := attributevalue.MarshalMap(newUserItem(entities.NewUser("sub-1", "ana@example.com", "Ana", "", time.Now())))
		require.NoError(t, err)
		client.On("Query", ctx, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return hasStringValue(in.ExpressionAttributeValues, "USER#EMAIL#ana@example.com")
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{av}}, nil)

		repo := NewUserRepository(NewStore(client, "main"), "GSI1", zap.NewNop())
		user, err := repo.FindByEmail(ctx, " ANA@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "sub-1", user.ID)
	})

	t.Run("find by email miss", func(t *testing.T) {
		client := new(mockDynamoDB)
		client.On("Query", ctx, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

		repo := NewUserRepository(NewStore(client, "main"), "GSI1", zap.NewNop())
		user, err := repo.FindByEmail(ctx, "x@y.z")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("update returns stored user", func(t *testing.T) {
		client := new(mockDynamoDB)
		updated := newUserItem(entities.NewUser("sub-1", "ana@example.com", "Ana Maria", "+5511999999999", time.Now()))
		av, err := attributevalue.MarshalMap(updated)
		require.NoError(t, err)
		client.On("UpdateItem", ctx, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			return in.ReturnValues == types.ReturnValueAllNew
		})).Return(&dynamodb.UpdateItemOutput{Attributes: av}, nil)

		repo := NewUserRepository(NewStore(client, "main"), "GSI1", zap.NewNop())
		name := "Ana Maria"
		user, err := repo.Update(ctx, "sub-1", ports.UserUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Ana Maria", user.Name)
	})
}
