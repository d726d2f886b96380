package handlers

import (
	"errors"
	"io"
	"net/http"

	"essay-backend/pkg/auth"
	"essay-backend/pkg/common"
	apperrors "essay-backend/pkg/errors"
)

// maxBodyBytes bounds JSON request bodies. Essay content is capped well
// below it by validation.
const maxBodyBytes = 1 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := common.ParseJSONBody(w, r, v, maxBodyBytes); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewValidationError("Request body is required")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.NewValidationError("Request body too large")
		}
		return apperrors.NewValidationError("Invalid request body").WithCause(err)
	}
	return nil
}

func currentUser(r *http.Request) (*auth.UserContext, error) {
	user, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}
	return user, nil
}
