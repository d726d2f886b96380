package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"go.uber.org/zap"

	"essay-backend/application/ports"
	"essay-backend/domain/core/entities"
	apperrors "essay-backend/pkg/errors"
	"essay-backend/pkg/utils"
)

// UserRepository stores users at PK=SK=USER#{userId} with an email lookup
// projection on GSI1.
type UserRepository struct {
	store      *Store
	emailIndex string
	logger     *zap.Logger
	now        func() time.Time
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store *Store, emailIndex string, logger *zap.Logger) *UserRepository {
	return &UserRepository{store: store, emailIndex: emailIndex, logger: logger, now: time.Now}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	cond := expression.Name("PK").AttributeNotExists()
	if err := r.store.Put(ctx, newUserItem(user), &cond); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return apperrors.NewConflictError("user already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID string) (*entities.User, error) {
	var item userItem
	found, err := r.store.Get(ctx, userPK(userID), userPK(userID), &item)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, apperrors.NewNotFoundError("User")
	}
	return item.toEntity(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	raw, _, err := r.store.Query(ctx, QueryParams{
		IndexName: r.emailIndex,
		KeyCond:   expression.Key("GSI1PK").Equal(expression.Value(emailKey(entities.NormalizeEmail(email)))),
		Limit:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(raw[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return item.toEntity(), nil
}

func (r *UserRepository) Update(ctx context.Context, userID string, update ports.UserUpdate) (*entities.User, error) {
	upd := expression.Set(expression.Name("updatedAt"), expression.Value(utils.FormatTimestamp(r.now())))
	if update.Name != nil {
		upd = upd.Set(expression.Name("name"), expression.Value(*update.Name))
	}
	if update.PhoneNumber != nil {
		upd = upd.Set(expression.Name("phoneNumber"), expression.Value(*update.PhoneNumber))
	}

	var item userItem
	if err := r.store.Update(ctx, userPK(userID), userPK(userID), upd, &item); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return nil, apperrors.NewNotFoundError("User")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return item.toEntity(), nil
}
