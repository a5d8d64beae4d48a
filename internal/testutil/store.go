package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/userapi/internal/model/user"
	"github.com/deppfellow/userapi/internal/sqlerr"
)

// MemoryUserStore is an in-memory users table with the same uniqueness
// rules and error shapes as the Postgres repository.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]user.User
	order []string

	// Err, when set, is returned by every operation.
	Err error

	// BeforeDelete runs between the existence check and the delete.
	BeforeDelete func()
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[string]user.User{}}
}

func (s *MemoryUserStore) CreateUser(_ context.Context, u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.users[u.UserID]; ok {
		return nil, sqlerr.NewUniqueViolation("users", "user_id")
	}
	if s.emailTakenLocked(u.Email, "") {
		return nil, sqlerr.NewUniqueViolation("users", "email")
	}

	created := *u
	if created.RemainingChats == 0 {
		created.RemainingChats = user.DefaultRemainingChats
	}
	s.users[created.UserID] = created
	s.order = append(s.order, created.UserID)

	return &created, nil
}

func (s *MemoryUserStore) GetUserByID(_ context.Context, userID string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("get user %s: %w", userID, pgx.ErrNoRows)
	}
	return &u, nil
}

func (s *MemoryUserStore) ListUsers(context.Context) ([]user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]user.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *MemoryUserStore) UpdateUser(_ context.Context, req *user.UpdateUserRequest) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[req.UserID]
	if !ok {
		return nil, fmt.Errorf("update user %s: %w", req.UserID, pgx.ErrNoRows)
	}
	if req.Email != nil && s.emailTakenLocked(*req.Email, req.UserID) {
		return nil, sqlerr.NewUniqueViolation("users", "email")
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = *req.PhoneNumber
	}
	s.users[u.UserID] = u

	return &u, nil
}

func (s *MemoryUserStore) DeleteUser(_ context.Context, userID string) (int64, error) {
	if s.BeforeDelete != nil {
		s.BeforeDelete()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}
	if _, ok := s.users[userID]; !ok {
		return 0, nil
	}
	delete(s.users, userID)
	for i, id := range s.order {
		if id == userID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

// Remove deletes a user directly, bypassing the service.
func (s *MemoryUserStore) Remove(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
	for i, id := range s.order {
		if id == userID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored users.
func (s *MemoryUserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *MemoryUserStore) emailTakenLocked(email, exceptUserID string) bool {
	for id, u := range s.users {
		if id != exceptUserID && u.Email == email {
			return true
		}
	}
	return false
}
