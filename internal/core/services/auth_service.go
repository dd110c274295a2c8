package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/user_account_service/internal/apperrors"
	"github.com/SscSPs/user_account_service/internal/core/domain"
	portsrepo "github.com/SscSPs/user_account_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/user_account_service/internal/core/ports/services"
	"github.com/SscSPs/user_account_service/internal/dto"
	"github.com/SscSPs/user_account_service/internal/platform/config"
	"github.com/SscSPs/user_account_service/internal/utils"
)

const (
	msgTokenGenerationFailed = "token generation failed"
	msgRefreshTokenMissing   = "unauthorized request"
	msgInvalidRefreshToken   = "invalid refresh token"
	msgRefreshTokenReused    = "refresh token is expired or used"
)

// authService owns the token lifecycle: issuance at login, rotation on renewal
// and invalidation at logout. The only state is the refresh slot on the user record.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// signPair signs an access and a refresh token, each with its own secret and expiry.
func (s *authService) signPair(user *domain.User) (*domain.TokenPair, error) {
	accessToken, accessExpiry, err := utils.GenerateAccessToken(user, s.cfg.AccessTokenSecret, s.cfg.AccessTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiry, err := utils.GenerateRefreshToken(user.UserID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiry,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiry,
	}, nil
}

// IssueTokens signs a new pair for an existing user and overwrites the refresh slot.
// Every failure, including a missing user, is an internal error wrapping the cause.
func (s *authService) IssueTokens(ctx context.Context, userID string) (*domain.TokenPair, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternal(msgTokenGenerationFailed, err)
	}

	pair, err := s.signPair(user)
	if err != nil {
		return nil, apperrors.NewInternal(msgTokenGenerationFailed, err)
	}

	if err := s.userRepo.SetRefreshTokenHash(ctx, user.UserID, utils.HashRefreshToken(pair.RefreshToken)); err != nil {
		return nil, apperrors.NewInternal(msgTokenGenerationFailed, err)
	}

	return pair, nil
}

// Login authenticates by username or email plus password and opens a session.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.LoginResult, error) {
	if !s.cfg.LoginIdentifierPolicy.Satisfied(req.Username, req.Email) {
		if s.cfg.LoginIdentifierPolicy == domain.LoginPolicyRequireBoth {
			return nil, apperrors.NewBadRequest("username and email are required")
		}
		return nil, apperrors.NewBadRequest("username or email is required")
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindUserByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("user does not exist")
		}
		return nil, apperrors.NewInternal("failed to look up user", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Login rejected: password mismatch", slog.String("user_id", user.UserID))
		return nil, apperrors.NewUnauthorized("invalid user credentials", nil)
	}

	pair, err := s.IssueTokens(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &domain.LoginResult{User: user.Sanitized(), Tokens: *pair}, nil
}

// Logout empties the refresh slot. A user without a session, or one that no
// longer exists, is not an error.
func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshTokenHash(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return apperrors.NewInternal("failed to log out", err)
	}
	s.LogInfo(ctx, "User logged out", slog.String("user_id", userID))
	return nil
}

// Renew validates the incoming refresh token against the stored slot and rotates
// it. The slot is swapped atomically, so of several concurrent renewals carrying
// the same token at most one succeeds.
func (s *authService) Renew(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, apperrors.NewUnauthorized(msgRefreshTokenMissing, nil)
	}

	claims, err := utils.ParseAndValidateJWT(refreshToken, s.cfg.RefreshTokenSecret, s.cfg.JWTIssuer)
	if err != nil {
		return nil, apperrors.NewUnauthorized(err.Error(), err)
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorized(msgInvalidRefreshToken, err)
		}
		return nil, apperrors.NewInternal("failed to load user for refresh", err)
	}

	presentedHash := utils.HashRefreshToken(refreshToken)
	if !utils.RefreshTokenMatches(refreshToken, user.RefreshTokenHash) {
		s.LogWarn(ctx, "Refresh rejected: token does not match stored slot", slog.String("user_id", user.UserID))
		return nil, apperrors.NewUnauthorized(msgRefreshTokenReused, nil)
	}

	pair, err := s.signPair(user)
	if err != nil {
		return nil, apperrors.NewInternal(msgTokenGenerationFailed, err)
	}

	swapped, err := s.userRepo.SwapRefreshTokenHash(ctx, user.UserID, presentedHash, utils.HashRefreshToken(pair.RefreshToken))
	if err != nil {
		return nil, apperrors.NewInternal(msgTokenGenerationFailed, err)
	}
	if !swapped {
		s.LogWarn(ctx, "Refresh rejected: slot rotated concurrently", slog.String("user_id", user.UserID))
		return nil, apperrors.NewUnauthorized(msgRefreshTokenReused, nil)
	}

	return pair, nil
}
