package auth

import (
	"testing"
	"time"

	"github.com/fleetbook/fleetbook/internal/utils"
	"github.com/fleetbook/fleetbook/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() user.User {
	return user.User{
		ID:       1,
		UID:      "11111111-2222-3333-4444-555555555555",
		Username: "anna",
		IsAdmin:  true,
	}
}

func TestTokenIssuer_IssueAndValidate(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	issuer := NewTokenIssuer("test-secret", 24*time.Hour, clock)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", claims.UserUID)
	assert.Equal(t, "anna", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestTokenIssuer_Validate_Expired(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	issuer := NewTokenIssuer("test-secret", time.Hour, clock)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	clock.SetNow(clock.FixedNow.Add(2 * time.Hour))
	_, err = issuer.Validate(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Validate_WrongSecret(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	issuer := NewTokenIssuer("test-secret", time.Hour, clock)
	otherIssuer := NewTokenIssuer("other-secret", time.Hour, clock)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = otherIssuer.Validate(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Validate_Garbage(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	issuer := NewTokenIssuer("test-secret", time.Hour, clock)

	_, err := issuer.Validate("not.a.token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}
