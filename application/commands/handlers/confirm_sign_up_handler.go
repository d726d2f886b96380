package handlers

import (
	"context"

	"go.uber.org/zap"

	"essay-backend/application/commands"
	"essay-backend/application/ports"
	"essay-backend/domain/core/entities"
	"essay-backend/pkg/utils"
)

// ConfirmSignUpHandler confirms an account with the emailed code
type ConfirmSignUpHandler struct {
	identity ports.IdentityProvider
	logger   *zap.Logger
}

func NewConfirmSignUpHandler(identity ports.IdentityProvider, logger *zap.Logger) *ConfirmSignUpHandler {
	return &ConfirmSignUpHandler{identity: identity, logger: logger}
}

func (h *ConfirmSignUpHandler) Handle(ctx context.Context, cmd commands.ConfirmSignUpCommand) (*commands.ConfirmSignUpResult, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	if err := h.identity.ConfirmSignUp(ctx, entities.NormalizeEmail(cmd.Email), cmd.ConfirmationCode); err != nil {
		return nil, identityError(err, "Invalid confirmation request")
	}

	return &commands.ConfirmSignUpResult{
		Message:   "Email confirmed successfully",
		Confirmed: true,
	}, nil
}
