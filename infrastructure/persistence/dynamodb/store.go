package dynamodb

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	apperrors "essay-backend/pkg/errors"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConditionFailed is returned when a write condition did not hold.
var ErrConditionFailed = errors.New("condition check failed")

// Store is a thin key-value adapter over one table keyed by PK and SK.
type Store struct {
	client    DynamoDBAPI
	tableName string
}

// NewStore creates a store for tableName
func NewStore(client DynamoDBAPI, tableName string) *Store {
	return &Store{client: client, tableName: tableName}
}

func itemKey(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

// Get loads the item at (pk, sk) into out. It reports false when absent.
func (s *Store) Get(ctx context.Context, pk, sk string, out interface{}) (bool, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       itemKey(pk, sk),
	})
	if err != nil {
		return false, fmt.Errorf("failed to get item: %w", err)
	}
	if len(result.Item) == 0 {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return true, nil
}

// Put writes item, optionally guarded by cond. A failed guard returns
// ErrConditionFailed.
func (s *Store) Put(ctx context.Context, item interface{}, cond *expression.ConditionBuilder) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	}
	if cond != nil {
		expr, err := expression.NewBuilder().WithCondition(*cond).Build()
		if err != nil {
			return fmt.Errorf("failed to build condition: %w", err)
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		return wrapConditional(err, "failed to put item")
	}
	return nil
}

// Update applies update to an existing item and returns its new attributes.
// A missing item returns ErrConditionFailed.
func (s *Store) Update(ctx context.Context, pk, sk string, update expression.UpdateBuilder, out interface{}) error {
	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.Name("PK").AttributeExists()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       itemKey(pk, sk),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if out != nil {
		input.ReturnValues = types.ReturnValueAllNew
	}

	result, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		return wrapConditional(err, "failed to update item")
	}
	if out != nil {
		if err := attributevalue.UnmarshalMap(result.Attributes, out); err != nil {
			return fmt.Errorf("failed to unmarshal updated item: %w", err)
		}
	}
	return nil
}

// Delete removes the item at (pk, sk). Deleting a missing item is not an error.
func (s *Store) Delete(ctx context.Context, pk, sk string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       itemKey(pk, sk),
	})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// QueryParams describes one page of an index query.
type QueryParams struct {
	IndexName string
	KeyCond   expression.KeyConditionBuilder
	Filter    *expression.ConditionBuilder
	Limit     int32
	NextToken string
	Newest    bool
}

// Query returns one page of raw items and the continuation token for the next.
func (s *Store) Query(ctx context.Context, p QueryParams) ([]map[string]types.AttributeValue, string, error) {
	builder := expression.NewBuilder().WithKeyCondition(p.KeyCond)
	if p.Filter != nil {
		builder = builder.WithFilter(*p.Filter)
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, "", fmt.Errorf("failed to build query expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(!p.Newest),
	}
	if p.IndexName != "" {
		input.IndexName = aws.String(p.IndexName)
	}
	if p.Limit > 0 {
		input.Limit = aws.Int32(p.Limit)
	}
	if p.NextToken != "" {
		startKey, err := decodeToken(p.NextToken)
		if err != nil {
			return nil, "", err
		}
		input.ExclusiveStartKey = startKey
	}

	result, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query: %w", err)
	}

	next, err := encodeToken(result.LastEvaluatedKey)
	if err != nil {
		return nil, "", err
	}
	return result.Items, next, nil
}

func wrapConditional(err error, msg string) error {
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return ErrConditionFailed
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Continuation tokens are base64url JSON of the last evaluated key. Every
// key attribute of this table is a string.
func encodeToken(key map[string]types.AttributeValue) (string, error) {
	if len(key) == 0 {
		return "", nil
	}
	var plain map[string]string
	if err := attributevalue.UnmarshalMap(key, &plain); err != nil {
		return "", fmt.Errorf("failed to encode continuation token: %w", err)
	}
	data, err := json.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("failed to encode continuation token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func decodeToken(token string) (map[string]types.AttributeValue, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid nextToken")
	}
	var plain map[string]string
	if err := json.Unmarshal(data, &plain); err != nil || len(plain) == 0 {
		return nil, apperrors.NewValidationError("invalid nextToken")
	}
	key, err := attributevalue.MarshalMap(plain)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid nextToken")
	}
	return key, nil
}
