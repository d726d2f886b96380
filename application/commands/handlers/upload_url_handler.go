package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"essay-backend/application/commands"
	"essay-backend/application/ports"
	"essay-backend/domain/core/valueobjects"
	apperrors "essay-backend/pkg/errors"
	"essay-backend/pkg/utils"
)

// UploadPolicy bounds direct uploads
type UploadPolicy struct {
	MaxFileSize  int64
	AllowedTypes []string
	Expiry       time.Duration
}

func (p UploadPolicy) allows(contentType string) bool {
	for _, t := range p.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

// GetUploadURLHandler issues presigned upload URLs. It creates no essay.
type GetUploadURLHandler struct {
	storage ports.BlobStorage
	policy  UploadPolicy
	logger  *zap.Logger
}

func NewGetUploadURLHandler(storage ports.BlobStorage, policy UploadPolicy, logger *zap.Logger) *GetUploadURLHandler {
	return &GetUploadURLHandler{storage: storage, policy: policy, logger: logger}
}

func (h *GetUploadURLHandler) Handle(ctx context.Context, cmd commands.GetUploadURLCommand) (*commands.UploadURLResult, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	if cmd.FileSize > h.policy.MaxFileSize {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"File size exceeds maximum allowed size of %dMB", h.policy.MaxFileSize/(1024*1024)))
	}
	if !h.policy.allows(cmd.FileType) {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"File type %s is not allowed. Allowed types: %s", cmd.FileType, strings.Join(h.policy.AllowedTypes, ", ")))
	}

	key := valueobjects.NewUploadKey(cmd.UserID, cmd.FileName)
	url, err := h.storage.PresignUpload(ctx, key, cmd.FileType, h.policy.Expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload url: %w", err)
	}

	h.logger.Debug("Issued upload url", zap.String("userID", cmd.UserID), zap.String("fileKey", key))
	return &commands.UploadURLResult{
		UploadURL: url,
		FileKey:   key,
		ExpiresIn: int(h.policy.Expiry / time.Second),
	}, nil
}
