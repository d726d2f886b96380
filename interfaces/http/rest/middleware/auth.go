package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"essay-backend/pkg/auth"
	apperrors "essay-backend/pkg/errors"
)

// Headers carrying the caller identity. The Lambda entry point fills them
// from the gateway authorizer claims after removing client supplied copies.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
)

// HeaderClientIP carries the caller address as seen by the gateway.
const HeaderClientIP = "X-Client-IP"

// ForwardingHeaders name the client address as reported by the client or
// an intermediate proxy. They are not trusted behind the gateway.
var ForwardingHeaders = []string{"True-Client-IP", "X-Real-IP", "X-Forwarded-For"}

// RequireUser rejects requests without a caller identity and stores it in
// the request context. Tokens are never validated here.
func RequireUser(errs *apperrors.ErrorHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(HeaderUserID)
			if userID == "" {
				errs.Handle(w, r, apperrors.NewUnauthorizedError("Unauthorized"))
				return
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{
				UserID: userID,
				Email:  r.Header.Get(HeaderUserEmail),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UnverifiedClaims copies the sub and email claims of the bearer token
// into the identity headers without checking the signature. Only the
// local development server installs it.
func UnverifiedClaims(logger *zap.Logger) func(next http.Handler) http.Handler {
	parser := jwt.NewParser()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Header.Del(HeaderUserID)
			r.Header.Del(HeaderUserEmail)

			if token := auth.BearerToken(r); token != "" {
				claims := jwt.MapClaims{}
				if _, _, err := parser.ParseUnverified(token, claims); err != nil {
					logger.Debug("Ignoring malformed bearer token", zap.Error(err))
				} else {
					if sub, _ := claims["sub"].(string); sub != "" {
						r.Header.Set(HeaderUserID, sub)
					}
					if email, _ := claims["email"].(string); email != "" {
						r.Header.Set(HeaderUserEmail, email)
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
