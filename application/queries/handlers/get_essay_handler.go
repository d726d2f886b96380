package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"essay-backend/application/ports"
	"essay-backend/application/queries"
	apperrors "essay-backend/pkg/errors"
	"essay-backend/pkg/utils"
)

// GetEssayHandler returns one essay of the caller
type GetEssayHandler struct {
	essays         ports.EssayRepository
	storage        ports.BlobStorage
	downloadExpiry time.Duration
	logger         *zap.Logger
}

// NewGetEssayHandler creates a new get essay handler. Essays with a file
// get a download link valid for downloadExpiry.
func NewGetEssayHandler(essays ports.EssayRepository, storage ports.BlobStorage, downloadExpiry time.Duration, logger *zap.Logger) *GetEssayHandler {
	return &GetEssayHandler{essays: essays, storage: storage, downloadExpiry: downloadExpiry, logger: logger}
}

func (h *GetEssayHandler) Handle(ctx context.Context, query queries.GetEssayQuery) (*queries.EssayResult, error) {
	if err := utils.ValidateStruct(query); err != nil {
		return nil, err
	}

	essay, err := h.essays.FindByID(ctx, query.UserID, query.EssayID)
	if err != nil {
		return nil, err
	}
	if !essay.IsOwnedBy(query.UserID) {
		return nil, apperrors.NewForbiddenError("You do not have access to this essay")
	}

	result := &queries.EssayResult{Essay: essay}
	if essay.HasFile() {
		url, err := h.storage.PresignDownload(ctx, essay.FileKey, h.downloadExpiry)
		if err != nil {
			// the essay is still useful without the link
			h.logger.Warn("Failed to presign essay download",
				zap.String("essayID", essay.ID),
				zap.Error(err),
			)
		} else {
			result.FileURL = url
		}
	}
	return result, nil
}
