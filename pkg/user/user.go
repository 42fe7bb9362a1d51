package user

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSelfDeletion       = errors.New("cannot delete own account")
)

type User struct {
	ID           int
	UID          string
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
