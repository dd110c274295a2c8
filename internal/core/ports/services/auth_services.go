package services

import (
	"context"

	"github.com/SscSPs/user_account_service/internal/core/domain"
	"github.com/SscSPs/user_account_service/internal/dto"
)

// TokenIssuerSvc issues and persists token pairs.
type TokenIssuerSvc interface {
	// IssueTokens signs a fresh access/refresh pair for an existing user and
	// stores the refresh token in the user's slot.
	IssueTokens(ctx context.Context, userID string) (*domain.TokenPair, error)
}

// SessionSvc covers the session state transitions of a user.
type SessionSvc interface {
	// Login authenticates by username or email and password and opens a session.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.LoginResult, error)

	// Logout clears the user's refresh token slot. It is idempotent.
	Logout(ctx context.Context, userID string) error

	// Renew exchanges a still-current refresh token for a brand new pair.
	Renew(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
}

// AuthSvcFacade combines the token lifecycle interfaces.
type AuthSvcFacade interface {
	TokenIssuerSvc
	SessionSvc
}
