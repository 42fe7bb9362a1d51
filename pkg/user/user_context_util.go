package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const UserKey contextKey = "user"

var ErrNoUser = errors.New("no authenticated user")

// WithUser stores the authenticated principal in the context.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// CurrentUser retrieves the authenticated principal from the context.
// Returns ErrNoUser if no principal is present.
func CurrentUser(ctx context.Context) (User, error) {
	u, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("user not found in context")
		return User{}, ErrNoUser
	}
	return u, nil
}

// CurrentUsername returns the authenticated principal's username, or ErrNoUser.
func CurrentUsername(ctx context.Context) (string, error) {
	u, err := CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// IsAdmin reports whether the context carries an admin principal.
func IsAdmin(ctx context.Context) bool {
	u, ok := ctx.Value(UserKey).(User)
	return ok && u.IsAdmin
}
