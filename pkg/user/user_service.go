package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/fleetbook/fleetbook/internal/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	CreateUser(ctx context.Context, username, password string, isAdmin bool) (User, error)
	Authenticate(ctx context.Context, username, password string) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int) error
	EnsureDefaultUsers(ctx context.Context, adminUsername, adminPassword string) error
}

type UserServiceImpl struct {
	repo  Repo
	clock utils.Clock
}

func NewUserService(repo Repo, clock utils.Clock) *UserServiceImpl {
	return &UserServiceImpl{repo: repo, clock: clock}
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	current, err := CurrentUser(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.GetUser(ctx, current.ID)
}

func (u *UserServiceImpl) CreateUser(ctx context.Context, username, password string, isAdmin bool) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, fmt.Errorf("username must not be empty")
	}
	if password == "" {
		return User{}, fmt.Errorf("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := User{
		UID:          uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		CreatedAt:    u.clock.Now(),
	}
	id, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.ID = id
	return user, nil
}

// Authenticate verifies the given credentials and returns the matching user.
// Returns ErrInvalidCredentials for both unknown usernames and wrong passwords
// so callers cannot distinguish the two.
func (u *UserServiceImpl) Authenticate(ctx context.Context, username, password string) (User, error) {
	user, err := u.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if err == ErrUserNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (u *UserServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.repo.GetUser(ctx, id)
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	return u.repo.GetAllUsers(ctx)
}

func (u *UserServiceImpl) DeleteUser(ctx context.Context, id int) error {
	current, err := CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if current.ID == id {
		return ErrSelfDeletion
	}
	return u.repo.DeleteUser(ctx, id)
}

// EnsureDefaultUsers seeds a bootstrap admin account when the user table is
// empty. A blank adminPassword disables seeding.
func (u *UserServiceImpl) EnsureDefaultUsers(ctx context.Context, adminUsername, adminPassword string) error {
	if adminPassword == "" {
		return nil
	}
	count, err := u.repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if _, err := u.CreateUser(ctx, adminUsername, adminPassword, true); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	log.Infof("Seeded bootstrap admin user %q", adminUsername)
	return nil
}
