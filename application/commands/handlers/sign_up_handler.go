package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"essay-backend/application/commands"
	"essay-backend/application/ports"
	"essay-backend/domain/core/entities"
	apperrors "essay-backend/pkg/errors"
	"essay-backend/pkg/utils"
)

// SignUpHandler registers a user with the identity provider and stores
// the application side mirror.
type SignUpHandler struct {
	users    ports.UserRepository
	identity ports.IdentityProvider
	logger   *zap.Logger
}

// NewSignUpHandler creates a new sign up handler
func NewSignUpHandler(users ports.UserRepository, identity ports.IdentityProvider, logger *zap.Logger) *SignUpHandler {
	return &SignUpHandler{users: users, identity: identity, logger: logger}
}

// Handle rejects known emails before the identity provider is called.
func (h *SignUpHandler) Handle(ctx context.Context, cmd commands.SignUpCommand) (*commands.SignUpResult, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	email := entities.NormalizeEmail(cmd.Email)

	existing, err := h.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("User with this email already exists")
	}

	res, err := h.identity.SignUp(ctx, ports.SignUpInput{
		Email:       email,
		Password:    cmd.Password,
		Name:        cmd.Name,
		PhoneNumber: cmd.PhoneNumber,
	})
	if err != nil {
		return nil, identityError(err, "Sign up rejected")
	}

	user := entities.NewUser(res.UserID, email, cmd.Name, cmd.PhoneNumber, time.Now())
	if err := h.users.Create(ctx, user); err != nil {
		// the identity exists at this point; a retry of sign up will
		// answer Conflict from the identity provider
		h.logger.Error("Failed to store user after sign up",
			zap.String("userID", res.UserID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to store user: %w", err)
	}

	h.logger.Info("User signed up",
		zap.String("userID", user.ID),
		zap.Bool("confirmed", res.UserConfirmed),
	)

	return &commands.SignUpResult{
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.Name,
		UserConfirmed: res.UserConfirmed,
	}, nil
}
