package handlers

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"essay-backend/application/commands"
	"essay-backend/application/ports"
	"essay-backend/domain/core/entities"
	"essay-backend/pkg/utils"
)

// UpdateProfileHandler syncs profile edits to the identity provider and
// then to the user mirror.
type UpdateProfileHandler struct {
	users    ports.UserRepository
	identity ports.IdentityProvider
	logger   *zap.Logger
}

func NewUpdateProfileHandler(users ports.UserRepository, identity ports.IdentityProvider, logger *zap.Logger) *UpdateProfileHandler {
	return &UpdateProfileHandler{users: users, identity: identity, logger: logger}
}

func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd commands.UpdateProfileCommand) (*entities.User, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		cmd.Name = &name
	}

	// fail fast on unknown users before touching the identity provider
	if _, err := h.users.FindByID(ctx, cmd.UserID); err != nil {
		return nil, err
	}

	if err := h.identity.UpdateUserAttributes(ctx, cmd.UserID, ports.UserAttributes{
		Name:        cmd.Name,
		PhoneNumber: cmd.PhoneNumber,
	}); err != nil {
		return nil, identityError(err, "Profile update rejected")
	}

	user, err := h.users.Update(ctx, cmd.UserID, ports.UserUpdate{
		Name:        cmd.Name,
		PhoneNumber: cmd.PhoneNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	h.logger.Info("Profile updated", zap.String("userID", cmd.UserID))
	return user, nil
}
