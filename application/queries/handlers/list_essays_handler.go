package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"essay-backend/application/ports"
	"essay-backend/application/queries"
	"essay-backend/domain/core/entities"
	"essay-backend/domain/core/valueobjects"
	"essay-backend/pkg/utils"
)

// ListEssaysHandler pages through the caller's essays
type ListEssaysHandler struct {
	essays ports.EssayRepository
	logger *zap.Logger
}

func NewListEssaysHandler(essays ports.EssayRepository, logger *zap.Logger) *ListEssaysHandler {
	return &ListEssaysHandler{essays: essays, logger: logger}
}

// Handle never returns essays of other users, whichever index served the
// page.
func (h *ListEssaysHandler) Handle(ctx context.Context, query queries.ListEssaysQuery) (*queries.ListEssaysResult, error) {
	if err := utils.ValidateStruct(query); err != nil {
		return nil, err
	}

	opts := ports.ListOptions{Limit: query.Limit, NextToken: query.NextToken}

	var (
		page *ports.EssayPage
		err  error
	)
	if query.Status != "" {
		page, err = h.essays.ListByStatus(ctx, query.UserID, valueobjects.EssayStatus(query.Status), opts)
	} else {
		page, err = h.essays.ListByUser(ctx, query.UserID, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list essays: %w", err)
	}

	items := make([]*entities.Essay, 0, len(page.Items))
	for _, essay := range page.Items {
		if !essay.IsOwnedBy(query.UserID) {
			h.logger.Warn("Dropped essay of another user from listing",
				zap.String("essayID", essay.ID),
				zap.String("userID", query.UserID),
			)
			continue
		}
		items = append(items, essay)
	}

	return &queries.ListEssaysResult{Items: items, NextToken: page.NextToken}, nil
}
