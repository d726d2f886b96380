package handlers

import (
	"context"

	"go.uber.org/zap"

	"essay-backend/application/ports"
	"essay-backend/application/queries"
	"essay-backend/domain/core/entities"
	"essay-backend/pkg/utils"
)

// GetProfileHandler returns the caller's user record
type GetProfileHandler struct {
	users  ports.UserRepository
	logger *zap.Logger
}

func NewGetProfileHandler(users ports.UserRepository, logger *zap.Logger) *GetProfileHandler {
	return &GetProfileHandler{users: users, logger: logger}
}

func (h *GetProfileHandler) Handle(ctx context.Context, query queries.GetProfileQuery) (*entities.User, error) {
	if err := utils.ValidateStruct(query); err != nil {
		return nil, err
	}
	return h.users.FindByID(ctx, query.UserID)
}
