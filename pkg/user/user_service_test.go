package user

import (
	"context"
	"testing"
	"time"

	"github.com/fleetbook/fleetbook/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserServiceTest(t *testing.T) (*UserServiceImpl, context.Context) {
	repo := NewStubUserRepo()
	t.Cleanup(repo.Cleanup)
	clock := &utils.MockClock{FixedNow: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	return NewUserService(repo, clock), context.Background()
}

func TestUserServiceImpl_CreateUser(t *testing.T) {
	t.Run("creates a user with a hashed password and UID", func(t *testing.T) {
		s, ctx := setupUserServiceTest(t)

		created, err := s.CreateUser(ctx, "anna", "correct horse battery", false)

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.NotEmpty(t, created.UID)
		assert.NotEqual(t, "correct horse battery", created.PasswordHash)
		assert.Equal(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), created.CreatedAt)
	})

	t.Run("rejects a duplicate username", func(t *testing.T) {
		s, ctx := setupUserServiceTest(t)

		_, err := s.CreateUser(ctx, "anna", "password1", false)
		require.NoError(t, err)

		_, err = s.CreateUser(ctx, "anna", "password2", false)
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("rejects empty username and password", func(t *testing.T) {
		s, ctx := setupUserServiceTest(t)

		_, err := s.CreateUser(ctx, "   ", "password", false)
		assert.Error(t, err)

		_, err = s.CreateUser(ctx, "anna", "", false)
		assert.Error(t, err)
	})
}

func TestUserServiceImpl_Authenticate(t *testing.T) {
	t.Run("accepts the right password", func(t *testing.T) {
		s, ctx := setupUserServiceTest(t)

		created, err := s.CreateUser(ctx, "anna", "correct horse battery", false)
		require.NoError(t, err)

		authenticated, err := s.Authenticate(ctx, "anna", "correct horse battery")

		assert.NoError(t, err)
		assert.Equal(t, created.ID, authenticated.ID)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		s, ctx := setupUserServiceTest(t)

		_, err := s.CreateUser(ctx, "anna", "correct horse battery", false)
		require.NoError(t, err)

		_, err = s.Authenticate(ctx, "anna", "wrong password")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects an unknown username with the same error", func(t *testing.T) {
		s, ctx := setupUserServiceTest(t)

		_, err := s.Authenticate(ctx, "nobody", "whatever")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserServiceImpl_DeleteUser(t *testing.T) {
	t.Run("deletes another user", func(t *testing.T) {
		s, ctx := setupUserServiceTest(t)

		admin, err := s.CreateUser(ctx, "admin", "admin-password", true)
		require.NoError(t, err)
		other, err := s.CreateUser(ctx, "anna", "password", false)
		require.NoError(t, err)

		err = s.DeleteUser(WithUser(ctx, admin), other.ID)

		assert.NoError(t, err)
		_, err = s.GetUser(ctx, other.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("refuses to delete the acting user", func(t *testing.T) {
		s, ctx := setupUserServiceTest(t)

		admin, err := s.CreateUser(ctx, "admin", "admin-password", true)
		require.NoError(t, err)

		err = s.DeleteUser(WithUser(ctx, admin), admin.ID)

		assert.ErrorIs(t, err, ErrSelfDeletion)
	})
}

func TestUserServiceImpl_EnsureDefaultUsers(t *testing.T) {
	t.Run("seeds an admin on an empty user table", func(t *testing.T) {
		s, ctx := setupUserServiceTest(t)

		err := s.EnsureDefaultUsers(ctx, "admin", "bootstrap-password")

		require.NoError(t, err)
		seeded, err := s.Authenticate(ctx, "admin", "bootstrap-password")
		require.NoError(t, err)
		assert.True(t, seeded.IsAdmin)
	})

	t.Run("does nothing when users already exist", func(t *testing.T) {
		s, ctx := setupUserServiceTest(t)

		_, err := s.CreateUser(ctx, "anna", "password", false)
		require.NoError(t, err)

		err = s.EnsureDefaultUsers(ctx, "admin", "bootstrap-password")

		require.NoError(t, err)
		_, err = s.Authenticate(ctx, "admin", "bootstrap-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("does nothing without an admin password", func(t *testing.T) {
		s, ctx := setupUserServiceTest(t)

		err := s.EnsureDefaultUsers(ctx, "admin", "")

		require.NoError(t, err)
		users, err := s.GetAllUsers(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}
