package middleware

import (
	"net"
	"net/http"

	"go.uber.org/zap"

	"essay-backend/pkg/auth"
	apperrors "essay-backend/pkg/errors"
)

// RateLimit throttles requests per client address. Limiter failures let
// the request through.
func RateLimit(limiter *auth.RateLimiter, errs *apperrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Warn("Rate limiter unavailable", zap.String("ip", ip), zap.Error(err))
			}
			if !allowed {
				errs.Handle(w, r, apperrors.NewRateLimitError(limiter.Limit(), limiter.Window().String()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers HeaderClientIP, which the Lambda entry point sets from
// the gateway source address after dropping any client supplied value.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get(HeaderClientIP); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
