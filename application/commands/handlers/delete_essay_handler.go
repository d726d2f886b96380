package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"essay-backend/application/commands"
	"essay-backend/application/ports"
	apperrors "essay-backend/pkg/errors"
	"essay-backend/pkg/utils"
)

// DeleteEssayHandler deletes an essay owned by the caller
type DeleteEssayHandler struct {
	essays  ports.EssayRepository
	storage ports.BlobStorage
	logger  *zap.Logger
}

func NewDeleteEssayHandler(essays ports.EssayRepository, storage ports.BlobStorage, logger *zap.Logger) *DeleteEssayHandler {
	return &DeleteEssayHandler{essays: essays, storage: storage, logger: logger}
}

// Handle removes the uploaded file first so a failure leaves the essay
// visible and deletable again.
func (h *DeleteEssayHandler) Handle(ctx context.Context, cmd commands.DeleteEssayCommand) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return err
	}

	essay, err := h.essays.FindByID(ctx, cmd.UserID, cmd.EssayID)
	if err != nil {
		return err
	}
	if !essay.IsOwnedBy(cmd.UserID) {
		return apperrors.NewForbiddenError("You do not have access to this essay")
	}

	if essay.HasFile() {
		if err := h.storage.DeleteObject(ctx, essay.FileKey); err != nil {
			return fmt.Errorf("failed to delete essay file: %w", err)
		}
	}
	if err := h.essays.Delete(ctx, cmd.UserID, cmd.EssayID); err != nil {
		return fmt.Errorf("failed to delete essay: %w", err)
	}

	h.logger.Info("Essay deleted", zap.String("essayID", cmd.EssayID), zap.String("userID", cmd.UserID))
	return nil
}
