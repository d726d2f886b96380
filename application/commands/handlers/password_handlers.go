package handlers

import (
	"context"

	"go.uber.org/zap"

	"essay-backend/application/commands"
	"essay-backend/application/ports"
	"essay-backend/domain/core/entities"
	apperrors "essay-backend/pkg/errors"
	"essay-backend/pkg/utils"
)

// ForgotPasswordHandler starts the reset flow by sending a code
type ForgotPasswordHandler struct {
	identity ports.IdentityProvider
	logger   *zap.Logger
}

func NewForgotPasswordHandler(identity ports.IdentityProvider, logger *zap.Logger) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{identity: identity, logger: logger}
}

func (h *ForgotPasswordHandler) Handle(ctx context.Context, cmd commands.ForgotPasswordCommand) (*commands.MessageResult, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	if err := h.identity.ForgotPassword(ctx, entities.NormalizeEmail(cmd.Email)); err != nil {
		return nil, identityError(err, "Password reset is not allowed for this user")
	}
	return &commands.MessageResult{Message: "Password reset code sent to your email"}, nil
}

// ConfirmForgotPasswordHandler sets a new password with the reset code
type ConfirmForgotPasswordHandler struct {
	identity ports.IdentityProvider
	logger   *zap.Logger
}

func NewConfirmForgotPasswordHandler(identity ports.IdentityProvider, logger *zap.Logger) *ConfirmForgotPasswordHandler {
	return &ConfirmForgotPasswordHandler{identity: identity, logger: logger}
}

func (h *ConfirmForgotPasswordHandler) Handle(ctx context.Context, cmd commands.ConfirmForgotPasswordCommand) (*commands.MessageResult, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	err := h.identity.ConfirmForgotPassword(ctx, entities.NormalizeEmail(cmd.Email), cmd.ConfirmationCode, cmd.NewPassword)
	if err != nil {
		return nil, identityError(err, "Password reset is not allowed for this user")
	}
	return &commands.MessageResult{Message: "Password reset successfully"}, nil
}

// ChangePasswordHandler changes the password of a signed in user
type ChangePasswordHandler struct {
	identity ports.IdentityProvider
	logger   *zap.Logger
}

func NewChangePasswordHandler(identity ports.IdentityProvider, logger *zap.Logger) *ChangePasswordHandler {
	return &ChangePasswordHandler{identity: identity, logger: logger}
}

func (h *ChangePasswordHandler) Handle(ctx context.Context, cmd commands.ChangePasswordCommand) (*commands.MessageResult, error) {
	if cmd.AccessToken == "" {
		return nil, apperrors.NewUnauthorizedError("Access token is required")
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	if err := h.identity.ChangePassword(ctx, cmd.AccessToken, cmd.OldPassword, cmd.NewPassword); err != nil {
		return nil, identityError(err, "Incorrect password or expired session")
	}
	return &commands.MessageResult{Message: "Password changed successfully"}, nil
}
