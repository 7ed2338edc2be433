package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	CreateFn         func(ctx context.Context, user *domain.User) error
	GetByUsernameFn  func(ctx context.Context, username string) (*domain.User, error)
	ListFn           func(ctx context.Context) ([]*domain.User, error)
	UpdatePasswordFn func(ctx context.Context, username, hashedPassword string) error
	DeleteFn         func(ctx context.Context, username string) error

	// Users backs the default implementations, keyed by username.
	Users map[string]*domain.User
}

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the UserStore interface.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if _, exists := m.Users[user.Username]; exists {
		return store.ErrUsernameExists
	}
	m.Users[user.Username] = user
	return nil
}

// GetByUsername implements the UserStore interface.
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	user, exists := m.Users[username]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// List implements the UserStore interface.
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users, nil
}

// UpdatePassword implements the UserStore interface.
func (m *MockUserStore) UpdatePassword(ctx context.Context, username, hashedPassword string) error {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, username, hashedPassword)
	}
	user, exists := m.Users[username]
	if !exists {
		return store.ErrUserNotFound
	}
	user.HashedPassword = hashedPassword
	return nil
}

// Delete implements the UserStore interface.
func (m *MockUserStore) Delete(ctx context.Context, username string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, username)
	}
	if _, exists := m.Users[username]; !exists {
		return store.ErrUserNotFound
	}
	delete(m.Users, username)
	return nil
}

// WithTx implements the UserStore interface. The mock has no transaction
// scope; it returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
