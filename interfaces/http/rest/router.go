package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"essay-backend/interfaces/http/rest/handlers"
	"essay-backend/interfaces/http/rest/middleware"
	"essay-backend/pkg/auth"
	"essay-backend/pkg/common"
	apperrors "essay-backend/pkg/errors"
)

// Router creates and configures the HTTP router
type Router struct {
	auth    *handlers.AuthHandler
	users   *handlers.UserHandler
	essays  *handlers.EssayHandler
	limiter *auth.RateLimiter
	errors  *apperrors.ErrorHandler
	logger  *zap.Logger

	unverifiedTokens bool
	proxyHeaders     bool
}

// NewRouter creates a new router instance
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	essayHandler *handlers.EssayHandler,
	limiter *auth.RateLimiter,
	errs *apperrors.ErrorHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		auth:    authHandler,
		users:   userHandler,
		essays:  essayHandler,
		limiter: limiter,
		errors:  errs,
		logger:  logger,
	}
}

// WithUnverifiedTokens makes the router take the caller identity from the
// bearer token claims instead of the gateway headers. For local runs only.
func (rt *Router) WithUnverifiedTokens() *Router {
	rt.unverifiedTokens = true
	return rt
}

// WithProxyHeaders takes the client address from the forwarding headers
// (True-Client-IP, X-Real-IP, X-Forwarded-For). Only for a server that sits
// behind a proxy it controls.
func (rt *Router) WithProxyHeaders() *Router {
	rt.proxyHeaders = true
	return rt
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	if rt.proxyHeaders {
		router.Use(chimiddleware.RealIP)
	}
	router.Use(middleware.Logger(rt.logger))
	router.Use(rt.errors.Middleware)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Amz-Date", "X-Api-Key", "X-Amz-Security-Token"},
		MaxAge:         300,
	}))

	if rt.unverifiedTokens {
		router.Use(middleware.UnverifiedClaims(rt.logger))
	}

	router.Get("/health", rt.healthCheck)

	router.Route("/auth", func(r chi.Router) {
		r.Use(middleware.RateLimit(rt.limiter, rt.errors, rt.logger))

		r.Post("/sign-up", rt.auth.SignUp)
		r.Post("/sign-in", rt.auth.SignIn)
		r.Post("/confirm-sign-up", rt.auth.ConfirmSignUp)
		r.Post("/refresh-token", rt.auth.RefreshToken)
		r.Post("/forgot-password", rt.auth.ForgotPassword)
		r.Post("/confirm-forgot-password", rt.auth.ConfirmForgotPassword)
		r.Post("/change-password", rt.auth.ChangePassword)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(rt.errors))

		r.Route("/users/profile", func(r chi.Router) {
			r.Get("/", rt.users.GetProfile)
			r.Put("/", rt.users.UpdateProfile)
		})

		r.Route("/essays", func(r chi.Router) {
			r.Post("/", rt.essays.CreateEssay)
			r.Get("/", rt.essays.ListEssays)
			r.Post("/upload-url", rt.essays.GetUploadURL)
			r.Get("/{essayId}", rt.essays.GetEssay)
			r.Delete("/{essayId}", rt.essays.DeleteEssay)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.Handle(w, r, apperrors.NewNotFoundError("Route"))
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
