package test_utils

import (
	"context"

	"github.com/fleetbook/fleetbook/pkg/user"
)

// ContextWithTestUser returns a context carrying a fixed regular principal.
func ContextWithTestUser(ctx context.Context) context.Context {
	return user.WithUser(ctx, user.User{
		ID:       123,
		UID:      "11111111-2222-3333-4444-555555555555",
		Username: "test_user",
	})
}

// ContextWithTestAdmin returns a context carrying a fixed admin principal.
func ContextWithTestAdmin(ctx context.Context) context.Context {
	return user.WithUser(ctx, user.User{
		ID:       124,
		UID:      "66666666-7777-8888-9999-000000000000",
		Username: "test_admin",
		IsAdmin:  true,
	})
}
