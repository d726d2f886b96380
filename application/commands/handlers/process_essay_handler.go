package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"essay-backend/application/commands"
	"essay-backend/application/ports"
	"essay-backend/domain/core/entities"
	"essay-backend/domain/core/valueobjects"
	"essay-backend/domain/events"
	"essay-backend/pkg/utils"
)

// ErrNoEssayText means neither the inline content nor the extracted file
// text has anything to grade.
var ErrNoEssayText = errors.New("essay has no text to grade")

// ProcessEssayHandler runs the grading pipeline for one queued essay:
// processing, optional extraction, grading, then completed or failed.
type ProcessEssayHandler struct {
	essays    ports.EssayRepository
	extractor ports.TextExtractor
	graders   ports.GraderRegistry
	publisher ports.EventPublisher
	metrics   ports.Metrics
	tracer    ports.Tracer
	logger    *zap.Logger
}

// NewProcessEssayHandler creates a new handler instance
func NewProcessEssayHandler(
	essays ports.EssayRepository,
	extractor ports.TextExtractor,
	graders ports.GraderRegistry,
	publisher ports.EventPublisher,
	metrics ports.Metrics,
	tracer ports.Tracer,
	logger *zap.Logger,
) *ProcessEssayHandler {
	return &ProcessEssayHandler{
		essays:    essays,
		extractor: extractor,
		graders:   graders,
		publisher: publisher,
		metrics:   metrics,
		tracer:    tracer,
		logger:    logger,
	}
}

// Handle is safe to repeat for the same essay; a later run overwrites the
// earlier correction. Any failure after the essay was marked processing
// leaves it failed without a correction and is returned unchanged.
func (h *ProcessEssayHandler) Handle(ctx context.Context, cmd commands.ProcessEssayCommand) (*commands.ProcessEssayResult, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	h.tracer.AddAnnotation(ctx, "essayId", cmd.EssayID)

	processing := valueobjects.StatusProcessing
	if err := h.essays.Update(ctx, cmd.UserID, cmd.EssayID, ports.EssayUpdate{Status: &processing}); err != nil {
		return nil, fmt.Errorf("failed to mark essay processing: %w", err)
	}

	result, err := h.process(ctx, cmd)
	if err != nil {
		h.markFailed(ctx, cmd, err)
		return nil, err
	}
	return result, nil
}

func (h *ProcessEssayHandler) process(ctx context.Context, cmd commands.ProcessEssayCommand) (*commands.ProcessEssayResult, error) {
	essay, err := h.essays.FindByID(ctx, cmd.UserID, cmd.EssayID)
	if err != nil {
		return nil, err
	}

	text := essay.Content
	if essay.HasFile() {
		err := h.tracer.TraceFunction(ctx, "ExtractText", func(ctx context.Context) error {
			var extractErr error
			text, extractErr = h.extractor.ExtractText(ctx, essay.FileKey, essay.FileType)
			return extractErr
		})
		if err != nil {
			return nil, fmt.Errorf("failed to extract essay text: %w", err)
		}
		if err := h.essays.Update(ctx, essay.UserID, essay.ID, ports.EssayUpdate{ExtractedText: &text}); err != nil {
			return nil, fmt.Errorf("failed to store extracted text: %w", err)
		}
		essay.ExtractedText = text
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoEssayText
	}

	provider := essay.AIProvider
	if cmd.AIProvider != "" {
		provider = valueobjects.AIProvider(cmd.AIProvider)
	}
	grader, err := h.graders.Grader(provider)
	if err != nil {
		return nil, err
	}

	var evaluation *entities.Evaluation
	start := time.Now()
	err = h.tracer.TraceFunction(ctx, "GradeEssay", func(ctx context.Context) error {
		var gradeErr error
		evaluation, gradeErr = grader.Grade(ctx, ports.GradeRequest{Title: essay.Title, Text: text})
		return gradeErr
	})
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("failed to grade essay: %w", err)
	}

	correction, err := entities.NewCorrection(*evaluation, time.Now(), latency)
	if err != nil {
		return nil, fmt.Errorf("invalid evaluation: %w", err)
	}

	completed := valueobjects.StatusCompleted
	if err := h.essays.Update(ctx, essay.UserID, essay.ID, ports.EssayUpdate{
		Status:     &completed,
		Correction: correction,
	}); err != nil {
		return nil, fmt.Errorf("failed to store correction: %w", err)
	}
	essay.Status = completed
	essay.Correction = correction

	if err := h.publisher.Publish(ctx, events.NewEssayCompleted(essay.ID, essay.UserID, provider, correction, time.Now())); err != nil {
		h.logger.Warn("Failed to publish essay completed event", zap.String("essayID", essay.ID), zap.Error(err))
	}
	h.metrics.RecordEssayGraded(ctx, provider.String(), correction.TotalScore, latency)

	h.logger.Info("Essay graded",
		zap.String("essayID", essay.ID),
		zap.String("provider", provider.String()),
		zap.Int("totalScore", correction.TotalScore),
		zap.Duration("latency", latency),
	)
	return &commands.ProcessEssayResult{Essay: essay, Correction: correction}, nil
}

func (h *ProcessEssayHandler) markFailed(ctx context.Context, cmd commands.ProcessEssayCommand, cause error) {
	h.logger.Error("Essay processing failed",
		zap.String("essayID", cmd.EssayID),
		zap.String("userID", cmd.UserID),
		zap.Error(cause),
	)

	failed := valueobjects.StatusFailed
	if err := h.essays.Update(ctx, cmd.UserID, cmd.EssayID, ports.EssayUpdate{Status: &failed, ClearCorrection: true}); err != nil {
		h.logger.Error("Failed to mark essay failed",
			zap.String("essayID", cmd.EssayID),
			zap.Error(err),
		)
	}

	if err := h.publisher.Publish(ctx, events.NewEssayFailed(cmd.EssayID, cmd.UserID, cause.Error(), time.Now())); err != nil {
		h.logger.Warn("Failed to publish essay failed event", zap.String("essayID", cmd.EssayID), zap.Error(err))
	}
}
