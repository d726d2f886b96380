package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"essay-backend/application/commands"
	"essay-backend/application/ports"
	"essay-backend/pkg/auth"
	"essay-backend/pkg/common"
	apperrors "essay-backend/pkg/errors"
)

// AuthUseCases are the account operations exposed under /auth.
type AuthUseCases interface {
	SignUp(ctx context.Context, cmd commands.SignUpCommand) (*commands.SignUpResult, error)
	SignIn(ctx context.Context, cmd commands.SignInCommand) (*ports.AuthTokens, error)
	ConfirmSignUp(ctx context.Context, cmd commands.ConfirmSignUpCommand) (*commands.ConfirmSignUpResult, error)
	RefreshToken(ctx context.Context, cmd commands.RefreshTokenCommand) (*ports.AuthTokens, error)
	ForgotPassword(ctx context.Context, cmd commands.ForgotPasswordCommand) (*commands.MessageResult, error)
	ConfirmForgotPassword(ctx context.Context, cmd commands.ConfirmForgotPasswordCommand) (*commands.MessageResult, error)
	ChangePassword(ctx context.Context, cmd commands.ChangePasswordCommand) (*commands.MessageResult, error)
}

// AuthHandler handles account HTTP requests
type AuthHandler struct {
	service AuthUseCases
	errors  *apperrors.ErrorHandler
	logger  *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthUseCases, errs *apperrors.ErrorHandler, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, errors: errs, logger: logger}
}

// SignUp handles POST /auth/sign-up
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var cmd commands.SignUpCommand
	if err := decodeBody(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.service.SignUp(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, result)
}

// SignIn handles POST /auth/sign-in
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var cmd commands.SignInCommand
	if err := decodeBody(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	tokens, err := h.service.SignIn(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, tokens)
}

// ConfirmSignUp handles POST /auth/confirm-sign-up
func (h *AuthHandler) ConfirmSignUp(w http.ResponseWriter, r *http.Request) {
	var cmd commands.ConfirmSignUpCommand
	if err := decodeBody(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.service.ConfirmSignUp(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// RefreshToken handles POST /auth/refresh-token
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var cmd commands.RefreshTokenCommand
	if err := decodeBody(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	tokens, err := h.service.RefreshToken(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, tokens)
}

// ForgotPassword handles POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var cmd commands.ForgotPasswordCommand
	if err := decodeBody(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.service.ForgotPassword(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// ConfirmForgotPassword handles POST /auth/confirm-forgot-password
func (h *AuthHandler) ConfirmForgotPassword(w http.ResponseWriter, r *http.Request) {
	var cmd commands.ConfirmForgotPasswordCommand
	if err := decodeBody(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.service.ConfirmForgotPassword(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// ChangePassword handles POST /auth/change-password. The access token
// comes from the Authorization header, not the body.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var cmd commands.ChangePasswordCommand
	if err := decodeBody(w, r, &cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	cmd.AccessToken = auth.BearerToken(r)

	result, err := h.service.ChangePassword(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
