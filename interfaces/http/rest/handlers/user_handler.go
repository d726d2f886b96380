package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"essay-backend/application/commands"
	"essay-backend/application/queries"
	"essay-backend/domain/core/entities"
	"essay-backend/pkg/common"
	apperrors "essay-backend/pkg/errors"
)

// ProfileUseCases read and edit the caller's profile.
type ProfileUseCases interface {
	GetProfile(ctx context.Context, query queries.GetProfileQuery) (*entities.User, error)
	UpdateProfile(ctx context.Context, cmd commands.UpdateProfileCommand) (*entities.User, error)
}

// UserHandler handles profile HTTP requests
type UserHandler struct {
	service ProfileUseCases
	errors  *apperrors.ErrorHandler
	logger  *zap.Logger
}

func NewUserHandler(service ProfileUseCases, errs *apperrors.ErrorHandler, logger *zap.Logger) *UserHandler {
	return &UserHandler{service: service, errors: errs, logger: logger}
}

// GetProfile handles GET /users/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), queries.GetProfileQuery{UserID: user.UserID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /users/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var cmd commands.UpdateProfileCommand
	if err := decodeBody(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.UserID = user.UserID

	profile, err := h.service.UpdateProfile(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, profile)
}
