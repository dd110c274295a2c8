package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/user_account_service/internal/apperrors"
	"github.com/SscSPs/user_account_service/internal/core/domain"
	portsrepo "github.com/SscSPs/user_account_service/internal/core/ports/repositories"
	"github.com/SscSPs/user_account_service/internal/models"
	"github.com/SscSPs/user_account_service/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, email, full_name, password_hash, avatar, cover_image,
	refresh_token_hash, created_at, last_updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.FullName,
		&m.PasswordHash,
		&m.Avatar,
		&m.CoverImage,
		&m.RefreshTokenHash,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, mapQueryError(fmt.Sprintf("failed to find user by ID %s", userID), err)
	}
	return user, nil
}

// FindUserByUsernameOrEmail matches either identifier. Empty values never match.
func (r *PgxUserRepository) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" && email == "" {
		return nil, fmt.Errorf("no identifier given: %w", apperrors.ErrNotFound)
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1 <> '' AND username = $1) OR ($2 <> '' AND email = $2)
		ORDER BY created_at
		LIMIT 1;
	`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, username, email))
	if err != nil {
		return nil, mapQueryError("failed to find user by username or email", err)
	}
	return user, nil
}

func (r *PgxUserRepository) CreateUser(ctx context.Context, params domain.NewUserParams) (*domain.User, error) {
	m := mapping.ToModelUser(domain.User{
		UserID:       uuid.NewString(),
		Username:     strings.ToLower(params.Username),
		Email:        strings.ToLower(params.Email),
		FullName:     params.FullName,
		PasswordHash: params.PasswordHash,
		Avatar:       params.Avatar,
		CoverImage:   params.CoverImage,
		AuditFields: domain.AuditFields{
			CreatedAt:     params.CreatedAt,
			LastUpdatedAt: params.CreatedAt,
		},
	})

	query := `
		INSERT INTO users (user_id, username, email, full_name, password_hash, avatar, cover_image, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns + `;
	`
	user, err := scanUser(r.Pool.QueryRow(ctx, query,
		m.UserID,
		m.Username,
		m.Email,
		m.FullName,
		m.PasswordHash,
		m.Avatar,
		m.CoverImage,
		m.CreatedAt,
		m.LastUpdatedAt,
	))
	if err != nil {
		return nil, mapQueryError("failed to create user", err)
	}
	return user, nil
}

func (r *PgxUserRepository) SetRefreshTokenHash(ctx context.Context, userID string, hash string) error {
	query := `UPDATE users SET refresh_token_hash = $2, last_updated_at = now() WHERE user_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, hash)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

// SwapRefreshTokenHash replaces the stored digest only if it still equals expected.
// It reports false when another writer changed the slot first.
func (r *PgxUserRepository) SwapRefreshTokenHash(ctx context.Context, userID string, expected string, next string) (bool, error) {
	query := `
		UPDATE users
		SET refresh_token_hash = $3, last_updated_at = now()
		WHERE user_id = $1 AND refresh_token_hash = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, expected, next)
	if err != nil {
		return false, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

func (r *PgxUserRepository) ClearRefreshTokenHash(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token_hash = NULL, last_updated_at = now() WHERE user_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
