package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/fleetbook/fleetbook/internal/utils"
	"github.com/fleetbook/fleetbook/pkg/user"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the decoded payload of a session token.
type Claims struct {
	UserUID  string
	Username string
	IsAdmin  bool
}

// TokenIssuer signs and validates HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  utils.Clock
}

func NewTokenIssuer(secret string, ttl time.Duration, clock utils.Clock) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock,
	}
}

// Issue creates a signed session token for the given user.
func (i *TokenIssuer) Issue(u user.User) (string, error) {
	now := i.clock.Now()
	claims := jwt.MapClaims{
		"sub":      u.UID,
		"username": u.Username,
		"admin":    u.IsAdmin,
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a session token and returns its claims.
func (i *TokenIssuer) Validate(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.clock.Now))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	username, _ := mapClaims["username"].(string)
	isAdmin, _ := mapClaims["admin"].(bool)

	return Claims{
		UserUID:  sub,
		Username: username,
		IsAdmin:  isAdmin,
	}, nil
}
