package handlers

import (
	"essay-backend/application/ports"
	apperrors "essay-backend/pkg/errors"
)

// identityError maps identity provider failures onto application errors.
// notAuthorized is the message used for rejected credentials in the
// calling flow.
func identityError(err error, notAuthorized string) error {
	kind := ports.IdentityErrorKindOf(err)

	var appErr *apperrors.AppError
	switch kind {
	case ports.IdentityErrCodeMismatch:
		appErr = apperrors.NewValidationError("Invalid confirmation code")
	case ports.IdentityErrCodeExpired:
		appErr = apperrors.NewValidationError("Confirmation code expired, request a new code")
	case ports.IdentityErrAlreadyConfirmed:
		appErr = apperrors.NewValidationError("User is already confirmed")
	case ports.IdentityErrNotAuthorized, ports.IdentityErrUserNotFound:
		appErr = apperrors.NewUnauthorizedError(notAuthorized)
	case ports.IdentityErrUserNotConfirmed:
		appErr = apperrors.NewForbiddenError("User is not confirmed")
	case ports.IdentityErrUsernameExists:
		appErr = apperrors.NewConflictError("User with this email already exists")
	case ports.IdentityErrInvalidPassword:
		appErr = apperrors.NewValidationError("Password does not meet the password policy")
	case ports.IdentityErrLimitExceeded:
		appErr = apperrors.NewThrottledError("Too many attempts, try again later")
	default:
		return apperrors.Wrap(err, "identity provider request failed")
	}
	return appErr.WithCause(err).WithCode(kind.String())
}
