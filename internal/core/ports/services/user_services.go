package services

import (
	"context"

	"github.com/SscSPs/user_account_service/internal/core/domain"
	"github.com/SscSPs/user_account_service/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID, without credential material.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserRegistrationSvc defines account creation.
type UserRegistrationSvc interface {
	// Register creates a new user with the uploaded avatar and optional cover image.
	Register(ctx context.Context, req dto.RegisterRequest, files domain.ImageFiles) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserRegistrationSvc
}
