package auth

import "context"

type contextKey string

const userContextKey contextKey = "user"

// UserContext is the caller identity taken from the gateway authorizer.
type UserContext struct {
	UserID string
	Email  string
}

// SetUserInContext stores the caller identity in ctx
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext returns the caller identity, if any
func GetUserFromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok && user != nil && user.UserID != ""
}
