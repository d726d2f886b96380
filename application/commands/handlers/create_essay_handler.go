package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"essay-backend/application/commands"
	"essay-backend/application/ports"
	"essay-backend/domain/core/entities"
	"essay-backend/domain/core/valueobjects"
	"essay-backend/domain/events"
	apperrors "essay-backend/pkg/errors"
	"essay-backend/pkg/utils"
)

// CreateEssayHandler stores a pending essay and queues it for grading
type CreateEssayHandler struct {
	essays    ports.EssayRepository
	queue     ports.Queue
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewCreateEssayHandler creates a new handler instance
func NewCreateEssayHandler(
	essays ports.EssayRepository,
	queue ports.Queue,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *CreateEssayHandler {
	return &CreateEssayHandler{
		essays:    essays,
		queue:     queue,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle writes the record before the processing message is sent, so a
// consumer can always find it.
func (h *CreateEssayHandler) Handle(ctx context.Context, cmd commands.CreateEssayCommand) (*entities.Essay, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	provider, err := valueobjects.ParseAIProvider(cmd.AIProvider)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if cmd.FileKey != "" && !strings.HasPrefix(cmd.FileKey, valueobjects.UploadKeyPrefix(cmd.UserID)) {
		return nil, apperrors.NewValidationError("fileKey does not reference one of your uploads")
	}

	essay, err := entities.NewEssay(entities.NewEssayParams{
		UserID:     cmd.UserID,
		Title:      cmd.Title,
		Content:    cmd.Content,
		FileKey:    cmd.FileKey,
		FileType:   valueobjects.FileType(cmd.FileType),
		AIProvider: provider,
	}, time.Now())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := h.essays.Create(ctx, essay); err != nil {
		return nil, fmt.Errorf("failed to store essay: %w", err)
	}

	msg := ports.ProcessEssayMessage{
		EssayID:    essay.ID,
		UserID:     essay.UserID,
		AIProvider: essay.AIProvider,
	}
	if err := h.queue.Send(ctx, msg, 0); err != nil {
		h.logger.Error("Essay stored but not queued",
			zap.String("essayID", essay.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to queue essay: %w", err)
	}

	if err := h.publisher.Publish(ctx, events.NewEssaySubmitted(essay, time.Now())); err != nil {
		h.logger.Warn("Failed to publish essay submitted event",
			zap.String("essayID", essay.ID),
			zap.Error(err),
		)
	}

	h.logger.Info("Essay submitted",
		zap.String("essayID", essay.ID),
		zap.String("userID", essay.UserID),
		zap.String("provider", essay.AIProvider.String()),
		zap.Bool("hasFile", essay.HasFile()),
	)
	return essay, nil
}
