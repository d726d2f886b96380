package handlers

import (
	"context"

	"go.uber.org/zap"

	"essay-backend/application/commands"
	"essay-backend/application/ports"
	"essay-backend/domain/core/entities"
	"essay-backend/pkg/utils"
)

// SignInHandler exchanges credentials for tokens
type SignInHandler struct {
	identity ports.IdentityProvider
	logger   *zap.Logger
}

func NewSignInHandler(identity ports.IdentityProvider, logger *zap.Logger) *SignInHandler {
	return &SignInHandler{identity: identity, logger: logger}
}

func (h *SignInHandler) Handle(ctx context.Context, cmd commands.SignInCommand) (*ports.AuthTokens, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	tokens, err := h.identity.SignIn(ctx, entities.NormalizeEmail(cmd.Email), cmd.Password)
	if err != nil {
		h.logger.Info("Sign in rejected", zap.Stringer("reason", ports.IdentityErrorKindOf(err)))
		return nil, identityError(err, "Invalid email or password")
	}
	return tokens, nil
}

// RefreshTokenHandler issues new access and id tokens
type RefreshTokenHandler struct {
	identity ports.IdentityProvider
	logger   *zap.Logger
}

func NewRefreshTokenHandler(identity ports.IdentityProvider, logger *zap.Logger) *RefreshTokenHandler {
	return &RefreshTokenHandler{identity: identity, logger: logger}
}

func (h *RefreshTokenHandler) Handle(ctx context.Context, cmd commands.RefreshTokenCommand) (*ports.AuthTokens, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	tokens, err := h.identity.RefreshToken(ctx, cmd.RefreshToken)
	if err != nil {
		return nil, identityError(err, "Invalid or expired refresh token")
	}
	return tokens, nil
}
