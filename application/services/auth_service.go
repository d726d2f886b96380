package services

import (
	"context"

	"essay-backend/application/commands"
	"essay-backend/application/commands/handlers"
	"essay-backend/application/ports"
)

// AuthService is the controller for the account flows
type AuthService struct {
	signUp                *handlers.SignUpHandler
	signIn                *handlers.SignInHandler
	confirmSignUp         *handlers.ConfirmSignUpHandler
	refreshToken          *handlers.RefreshTokenHandler
	forgotPassword        *handlers.ForgotPasswordHandler
	confirmForgotPassword *handlers.ConfirmForgotPasswordHandler
	changePassword        *handlers.ChangePasswordHandler
	in                    *Instrumentation
}

// NewAuthService creates a new auth controller
func NewAuthService(
	signUp *handlers.SignUpHandler,
	signIn *handlers.SignInHandler,
	confirmSignUp *handlers.ConfirmSignUpHandler,
	refreshToken *handlers.RefreshTokenHandler,
	forgotPassword *handlers.ForgotPasswordHandler,
	confirmForgotPassword *handlers.ConfirmForgotPasswordHandler,
	changePassword *handlers.ChangePasswordHandler,
	in *Instrumentation,
) *AuthService {
	return &AuthService{
		signUp:                signUp,
		signIn:                signIn,
		confirmSignUp:         confirmSignUp,
		refreshToken:          refreshToken,
		forgotPassword:        forgotPassword,
		confirmForgotPassword: confirmForgotPassword,
		changePassword:        changePassword,
		in:                    in,
	}
}

func (s *AuthService) SignUp(ctx context.Context, cmd commands.SignUpCommand) (*commands.SignUpResult, error) {
	return instrument(ctx, s.in, "SignUp", func(ctx context.Context) (*commands.SignUpResult, error) {
		return s.signUp.Handle(ctx, cmd)
	})
}

func (s *AuthService) SignIn(ctx context.Context, cmd commands.SignInCommand) (*ports.AuthTokens, error) {
	return instrument(ctx, s.in, "SignIn", func(ctx context.Context) (*ports.AuthTokens, error) {
		return s.signIn.Handle(ctx, cmd)
	})
}

func (s *AuthService) ConfirmSignUp(ctx context.Context, cmd commands.ConfirmSignUpCommand) (*commands.ConfirmSignUpResult, error) {
	return instrument(ctx, s.in, "ConfirmSignUp", func(ctx context.Context) (*commands.ConfirmSignUpResult, error) {
		return s.confirmSignUp.Handle(ctx, cmd)
	})
}

func (s *AuthService) RefreshToken(ctx context.Context, cmd commands.RefreshTokenCommand) (*ports.AuthTokens, error) {
	return instrument(ctx, s.in, "RefreshToken", func(ctx context.Context) (*ports.AuthTokens, error) {
		return s.refreshToken.Handle(ctx, cmd)
	})
}

func (s *AuthService) ForgotPassword(ctx context.Context, cmd commands.ForgotPasswordCommand) (*commands.MessageResult, error) {
	return instrument(ctx, s.in, "ForgotPassword", func(ctx context.Context) (*commands.MessageResult, error) {
		return s.forgotPassword.Handle(ctx, cmd)
	})
}

func (s *AuthService) ConfirmForgotPassword(ctx context.Context, cmd commands.ConfirmForgotPasswordCommand) (*commands.MessageResult, error) {
	return instrument(ctx, s.in, "ConfirmForgotPassword", func(ctx context.Context) (*commands.MessageResult, error) {
		return s.confirmForgotPassword.Handle(ctx, cmd)
	})
}

func (s *AuthService) ChangePassword(ctx context.Context, cmd commands.ChangePasswordCommand) (*commands.MessageResult, error) {
	return instrument(ctx, s.in, "ChangePassword", func(ctx context.Context) (*commands.MessageResult, error) {
		return s.changePassword.Handle(ctx, cmd)
	})
}
