package repositories

import (
	"context"

	"github.com/SscSPs/user_account_service/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsernameOrEmail retrieves the user matching either identifier.
	// Empty identifiers never match.
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// CreateUser persists a new user and returns it. Returns apperrors.ErrDuplicate
	// when the username or email is taken.
	CreateUser(ctx context.Context, params domain.NewUserParams) (*domain.User, error)
}

// RefreshTokenStore manages the single refresh token slot of a user.
type RefreshTokenStore interface {
	// SetRefreshTokenHash overwrites the slot unconditionally.
	SetRefreshTokenHash(ctx context.Context, userID string, tokenHash string) error

	// SwapRefreshTokenHash replaces the slot with next only if it currently holds expected.
	// The returned bool is false when the slot no longer held expected.
	SwapRefreshTokenHash(ctx context.Context, userID string, expected string, next string) (bool, error)

	// ClearRefreshTokenHash empties the slot. Clearing an empty slot is not an error.
	ClearRefreshTokenHash(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	RefreshTokenStore
}
