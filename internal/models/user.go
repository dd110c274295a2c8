package models

import (
	"database/sql"
	"time"
)

// AuditFields mirrors the audit columns shared by persisted rows.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

// User is the row shape of the users table.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	FullName     string         `db:"full_name"`
	PasswordHash string         `db:"password_hash"`
	Avatar       string         `db:"avatar"`
	CoverImage   sql.NullString `db:"cover_image"`
	AuditFields

	// Digest of the current refresh token; NULL when the user has no session.
	RefreshTokenHash sql.NullString `db:"refresh_token_hash"`
}
