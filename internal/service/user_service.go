package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/service/auth"
	"github.com/prisma-study/srs-api/internal/store"
)

// MinPasswordLength is enforced on registration and password changes.
const MinPasswordLength = 8

// UserService provides account management operations.
type UserService interface {
	// Register creates a new user with the given credentials.
	// Returns ErrUsernameTaken when the name is in use and
	// domain.ErrReservedUsername when it is the reserved admin name.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// Authenticate verifies a username/password pair.
	// Returns ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetUser retrieves a user by username.
	GetUser(ctx context.Context, username string) (*domain.User, error)

	// ChangePassword replaces the user's password after verifying the
	// current one.
	ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error

	// ListUsers returns all registered users ordered by username.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// DeleteUser removes a user and, via cascading foreign keys, their
	// review records and authored questions.
	// Returns ErrAdminImmutable for the reserved admin account.
	DeleteUser(ctx context.Context, username string) error

	// EnsureAdmin creates the reserved admin account if it does not exist.
	// Called once at startup with the configured admin password.
	EnsureAdmin(ctx context.Context, password string) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger

	// runTx wraps mutating operations in a database transaction.
	// Injectable so unit tests can substitute a pass-through scope.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	db *sql.DB,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With("component", "user_service"),
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// Register creates a new user with the specified username and password.
// Uses a transaction to ensure atomicity of the operation.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(username, hashed)
	if err != nil {
		s.logger.Debug("rejected user registration",
			"error", err,
			"username", username)
		return nil, err
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("attempted to register an existing username",
				"username", username)
			return nil, ErrUsernameTaken
		}
		s.logger.Error("failed to save user",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user registered", "username", username)
	return user, nil
}

// Authenticate verifies the credential pair and returns the user on success.
func (s *UserServiceImpl) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown user", "username", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve user for authentication",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password", "username", username)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by username.
func (s *UserServiceImpl) GetUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to retrieve user",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a hash of the new one.
func (s *UserServiceImpl) ChangePassword(
	ctx context.Context,
	username, currentPassword, newPassword string,
) error {
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.Authenticate(ctx, username, currentPassword)
	if err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.logger.Error("failed to hash new password",
			"error", err,
			"username", username)
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).UpdatePassword(ctx, user.Username, hashed)
	})
	if err != nil {
		s.logger.Error("failed to update password",
			"error", err,
			"username", username)
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password changed", "username", username)
	return nil
}

// ListUsers returns all registered users ordered by username.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user. The reserved admin account is never deletable.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, username string) error {
	if username == domain.AdminUsername {
		return ErrAdminImmutable
	}

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Delete(ctx, username)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("failed to delete user",
			"error", err,
			"username", username)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", "username", username)
	return nil
}

// EnsureAdmin creates the reserved admin account if it is absent.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, password string) error {
	_, err := s.userStore.GetByUsername(ctx, domain.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin, err := domain.NewAdminUser(hashed)
	if err != nil {
		return fmt.Errorf("failed to build admin account: %w", err)
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, admin)
	})
	if err != nil {
		// A concurrent instance may have won the race; that is fine.
		if errors.Is(err, store.ErrUsernameExists) {
			return nil
		}
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	s.logger.Info("admin account created")
	return nil
}
