package ports

import (
	"context"
	"errors"
	"fmt"
)

// SignUpInput registers a new identity.
type SignUpInput struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
}

// SignUpResult is what the identity provider returns for a registration.
type SignUpResult struct {
	UserID        string
	UserConfirmed bool
}

// AuthTokens is the result of a sign in or refresh.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int32  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

// UserAttributes are the profile attributes synced to the identity provider.
type UserAttributes struct {
	Name        *string
	PhoneNumber *string
}

// IdentityProvider wraps the managed user directory.
type IdentityProvider interface {
	SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthTokens, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthTokens, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	ForgotPassword(ctx context.Context, email string) error
	ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error
	ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error
	UpdateUserAttributes(ctx context.Context, userID string, attrs UserAttributes) error
}

// IdentityErrorKind classifies identity provider failures.
type IdentityErrorKind int

const (
	IdentityErrOther IdentityErrorKind = iota
	IdentityErrCodeMismatch
	IdentityErrCodeExpired
	IdentityErrAlreadyConfirmed
	IdentityErrNotAuthorized
	IdentityErrUserNotFound
	IdentityErrUserNotConfirmed
	IdentityErrUsernameExists
	IdentityErrInvalidPassword
	IdentityErrLimitExceeded
)

func (k IdentityErrorKind) String() string {
	switch k {
	case IdentityErrCodeMismatch:
		return "CodeMismatch"
	case IdentityErrCodeExpired:
		return "CodeExpired"
	case IdentityErrAlreadyConfirmed:
		return "AlreadyConfirmed"
	case IdentityErrNotAuthorized:
		return "NotAuthorized"
	case IdentityErrUserNotFound:
		return "UserNotFound"
	case IdentityErrUserNotConfirmed:
		return "UserNotConfirmed"
	case IdentityErrUsernameExists:
		return "UsernameExists"
	case IdentityErrInvalidPassword:
		return "InvalidPassword"
	case IdentityErrLimitExceeded:
		return "LimitExceeded"
	default:
		return "Other"
	}
}

// IdentityError is returned by IdentityProvider implementations.
type IdentityError struct {
	Kind IdentityErrorKind
	Op   string
	Err  error
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("identity %s failed (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *IdentityError) Unwrap() error { return e.Err }

// IdentityErrorKindOf returns the kind of the first IdentityError in err's
// chain, or IdentityErrOther.
func IdentityErrorKindOf(err error) IdentityErrorKind {
	var idErr *IdentityError
	if errors.As(err, &idErr) {
		return idErr.Kind
	}
	return IdentityErrOther
}
