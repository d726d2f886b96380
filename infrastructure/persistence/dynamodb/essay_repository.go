package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"essay-backend/application/ports"
	"essay-backend/domain/core/entities"
	"essay-backend/domain/core/valueobjects"
	apperrors "essay-backend/pkg/errors"
	"essay-backend/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// EssayRepository stores essays under PK=USER#{userId}, SK=ESSAY#{essayId}
// with a status projection on GSI1 and an owner projection on GSI2.
type EssayRepository struct {
	store       *Store
	statusIndex string
	ownerIndex  string
	logger      *zap.Logger
	now         func() time.Time
}

// NewEssayRepository creates a new EssayRepository
func NewEssayRepository(store *Store, statusIndex, ownerIndex string, logger *zap.Logger) *EssayRepository {
	return &EssayRepository{
		store:       store,
		statusIndex: statusIndex,
		ownerIndex:  ownerIndex,
		logger:      logger,
		now:         time.Now,
	}
}

var _ ports.EssayRepository = (*EssayRepository)(nil)

// Create persists a new essay; an existing id is a conflict.
func (r *EssayRepository) Create(ctx context.Context, essay *entities.Essay) error {
	cond := expression.Name("PK").AttributeNotExists()
	if err := r.store.Put(ctx, newEssayItem(essay), &cond); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return apperrors.NewConflictError("essay already exists")
		}
		return fmt.Errorf("failed to create essay: %w", err)
	}

	r.logger.Debug("Essay created",
		zap.String("essayId", essay.ID),
		zap.String("userId", essay.UserID),
	)
	return nil
}

// FindByID loads an essay from the owner's partition
func (r *EssayRepository) FindByID(ctx context.Context, userID, essayID string) (*entities.Essay, error) {
	var item essayItem
	found, err := r.store.Get(ctx, userPK(userID), essaySK(essayID), &item)
	if err != nil {
		return nil, fmt.Errorf("failed to get essay: %w", err)
	}
	if !found {
		return nil, apperrors.NewNotFoundError("Essay")
	}
	return item.toEntity(), nil
}

// Update writes the non-nil fields plus updatedAt. A status change also
// moves the status projection.
func (r *EssayRepository) Update(ctx context.Context, userID, essayID string, update ports.EssayUpdate) error {
	upd := expression.Set(expression.Name("updatedAt"), expression.Value(utils.FormatTimestamp(r.now())))
	if update.Status != nil {
		upd = upd.Set(expression.Name("status"), expression.Value(string(*update.Status))).
			Set(expression.Name("GSI1PK"), expression.Value(statusIndexPK(*update.Status)))
	}
	if update.ExtractedText != nil {
		upd = upd.Set(expression.Name("extractedText"), expression.Value(*update.ExtractedText))
	}
	if update.Correction != nil {
		upd = upd.Set(expression.Name("correction"), expression.Value(update.Correction))
	} else if update.ClearCorrection {
		upd = upd.Remove(expression.Name("correction"))
	}

	if err := r.store.Update(ctx, userPK(userID), essaySK(essayID), upd, nil); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return apperrors.NewNotFoundError("Essay")
		}
		return fmt.Errorf("failed to update essay: %w", err)
	}
	return nil
}

// Delete removes the essay item
func (r *EssayRepository) Delete(ctx context.Context, userID, essayID string) error {
	if err := r.store.Delete(ctx, userPK(userID), essaySK(essayID)); err != nil {
		return fmt.Errorf("failed to delete essay: %w", err)
	}
	return nil
}

// ListByUser pages through the owner index, newest first
func (r *EssayRepository) ListByUser(ctx context.Context, userID string, opts ports.ListOptions) (*ports.EssayPage, error) {
	return r.list(ctx, QueryParams{
		IndexName: r.ownerIndex,
		KeyCond:   expression.Key("GSI2PK").Equal(expression.Value(ownerIndexPK(userID))),
		Limit:     pageSize(opts.Limit),
		NextToken: opts.NextToken,
		Newest:    true,
	})
}

// ListByStatus pages through the status index, which spans every owner, so
// the query filters on the owner attribute.
func (r *EssayRepository) ListByStatus(ctx context.Context, userID string, status valueobjects.EssayStatus, opts ports.ListOptions) (*ports.EssayPage, error) {
	owner := expression.Name("userId").Equal(expression.Value(userID))
	return r.list(ctx, QueryParams{
		IndexName: r.statusIndex,
		KeyCond:   expression.Key("GSI1PK").Equal(expression.Value(statusIndexPK(status))),
		Filter:    &owner,
		Limit:     pageSize(opts.Limit),
		NextToken: opts.NextToken,
		Newest:    true,
	})
}

func (r *EssayRepository) list(ctx context.Context, p QueryParams) (*ports.EssayPage, error) {
	rawItems, next, err := r.store.Query(ctx, p)
	if err != nil {
		if apperrors.IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to list essays: %w", err)
	}

	essays, err := unmarshalEssays(rawItems)
	if err != nil {
		return nil, err
	}
	return &ports.EssayPage{Items: essays, NextToken: next}, nil
}

func unmarshalEssays(raw []map[string]types.AttributeValue) ([]*entities.Essay, error) {
	var items []essayItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal essays: %w", err)
	}
	essays := make([]*entities.Essay, 0, len(items))
	for _, item := range items {
		essays = append(essays, item.toEntity())
	}
	return essays, nil
}

func pageSize(limit int) int32 {
	switch {
	case limit <= 0:
		return defaultPageSize
	case limit > maxPageSize:
		return maxPageSize
	}
	return int32(limit)
}
