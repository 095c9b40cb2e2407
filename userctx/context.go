package userctx

import (
	"context"

	"github.com/helpdesk-tools/incident-tracker/models"
)

// Context key type
type contextKey string

const userKey contextKey = "current_user"

// SetUser adds the authenticated user to the request context
func SetUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser retrieves the authenticated user from the request context.
// Returns nil when no user is set.
func GetUser(ctx context.Context) *models.User {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
