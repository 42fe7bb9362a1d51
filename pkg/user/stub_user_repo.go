package user

import (
	"context"
	"sort"
)

type StubUserRepo struct {
	nextId int
	data   map[int]User
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{
		nextId: 0,
		data:   map[int]User{},
	}
}

func (s *StubUserRepo) CreateUser(ctx context.Context, user User) (int, error) {
	for _, u := range s.data {
		if u.Username == user.Username {
			return 0, ErrUsernameTaken
		}
	}
	s.nextId++
	user.ID = s.nextId
	s.data[user.ID] = user
	return user.ID, nil
}

func (s *StubUserRepo) GetUser(ctx context.Context, id int) (User, error) {
	u, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *StubUserRepo) GetUserByUid(ctx context.Context, uid string) (User, error) {
	for _, u := range s.data {
		if u.UID == uid {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) GetUserByUsername(ctx context.Context, username string) (User, error) {
	for _, u := range s.data {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) GetAllUsers(ctx context.Context) ([]User, error) {
	users := make([]User, 0, len(s.data))
	for _, u := range s.data {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (s *StubUserRepo) DeleteUser(ctx context.Context, id int) error {
	if _, ok := s.data[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *StubUserRepo) CountUsers(ctx context.Context) (int, error) {
	return len(s.data), nil
}

func (s *StubUserRepo) Cleanup() {
	s.data = map[int]User{}
}
