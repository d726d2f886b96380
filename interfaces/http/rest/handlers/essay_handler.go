package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"essay-backend/application/commands"
	"essay-backend/application/queries"
	"essay-backend/domain/core/entities"
	"essay-backend/pkg/common"
	apperrors "essay-backend/pkg/errors"
)

// EssayUseCases are the essay operations of the authenticated caller.
type EssayUseCases interface {
	CreateEssay(ctx context.Context, cmd commands.CreateEssayCommand) (*entities.Essay, error)
	GetEssay(ctx context.Context, query queries.GetEssayQuery) (*queries.EssayResult, error)
	ListEssays(ctx context.Context, query queries.ListEssaysQuery) (*queries.ListEssaysResult, error)
	DeleteEssay(ctx context.Context, cmd commands.DeleteEssayCommand) error
	GetUploadURL(ctx context.Context, cmd commands.GetUploadURLCommand) (*commands.UploadURLResult, error)
}

// EssayHandler handles essay HTTP requests
type EssayHandler struct {
	service EssayUseCases
	errors  *apperrors.ErrorHandler
	logger  *zap.Logger
}

// NewEssayHandler creates a new essay handler
func NewEssayHandler(service EssayUseCases, errs *apperrors.ErrorHandler, logger *zap.Logger) *EssayHandler {
	return &EssayHandler{service: service, errors: errs, logger: logger}
}

// CreateEssay handles POST /essays
func (h *EssayHandler) CreateEssay(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var cmd commands.CreateEssayCommand
	if err := decodeBody(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.UserID = user.UserID

	essay, err := h.service.CreateEssay(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, essay)
}

// ListEssays handles GET /essays
func (h *EssayHandler) ListEssays(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	params := r.URL.Query()
	query := queries.ListEssaysQuery{
		UserID:    user.UserID,
		Status:    params.Get("status"),
		NextToken: params.Get("nextToken"),
	}
	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			h.errors.Handle(w, r, apperrors.NewValidationError("limit must be a number"))
			return
		}
		query.Limit = limit
	}

	result, err := h.service.ListEssays(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// GetEssay handles GET /essays/{essayId}
func (h *EssayHandler) GetEssay(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.service.GetEssay(r.Context(), queries.GetEssayQuery{
		UserID:  user.UserID,
		EssayID: chi.URLParam(r, "essayId"),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// DeleteEssay handles DELETE /essays/{essayId}
func (h *EssayHandler) DeleteEssay(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := h.service.DeleteEssay(r.Context(), commands.DeleteEssayCommand{
		UserID:  user.UserID,
		EssayID: chi.URLParam(r, "essayId"),
	}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondNoContent(w)
}

// GetUploadURL handles POST /essays/upload-url
func (h *EssayHandler) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var cmd commands.GetUploadURLCommand
	if err := decodeBody(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.UserID = user.UserID

	result, err := h.service.GetUploadURL(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.logger.Debug("Upload URL issued",
		zap.String("userID", user.UserID),
		zap.String("fileKey", result.FileKey),
	)
	common.RespondJSON(w, http.StatusOK, result)
}
