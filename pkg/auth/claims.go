package auth

import (
	"context"
	"strings"

	"catalog-backend/pkg/errors"
)

// AdminGroup is the user-pool group whose members may manage categories,
// tags and other users' items.
const AdminGroup = "admins"

// UserContext carries the caller identity resolved by the platform
// authorizer. The application only ever reads Username and IsAdmin; it never
// authenticates anybody itself.
type UserContext struct {
	Username string
	Groups   []string
}

// IsAdmin reports whether the caller belongs to the admin group.
func (u *UserContext) IsAdmin() bool {
	for _, g := range u.Groups {
		if g == AdminGroup {
			return true
		}
	}
	return false
}

// ParseGroups splits a comma-separated group claim.
func ParseGroups(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	groups := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			groups = append(groups, p)
		}
	}
	return groups
}

type contextKey string

const userContextKey contextKey = "user_context"

// SetUserInContext adds the user context to a request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the user context; it fails when the request
// was not authenticated.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.NewUnauthorizedError("no user in request context")
	}
	return user, nil
}

// MaybeUserFromContext returns the user context when present, nil otherwise.
// Read endpoints accept anonymous callers.
func MaybeUserFromContext(ctx context.Context) *UserContext {
	user, _ := ctx.Value(userContextKey).(*UserContext)
	return user
}
