package domain

import "time"

// User represents a registered account in the domain.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	PasswordHash string `json:"-"`
	Avatar       string `json:"avatar"`
	CoverImage   string `json:"coverImage"`
	// RefreshTokenHash is the digest of the single currently valid refresh token.
	// Empty means no active session.
	RefreshTokenHash string `json:"-"`
	AuditFields
}

// HasActiveSession reports whether the user's refresh slot is occupied.
func (u *User) HasActiveSession() bool {
	return u.RefreshTokenHash != ""
}

// Sanitized returns a copy of the user without credential material.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.RefreshTokenHash = ""
	return u
}

// NewUserParams carries the already normalized fields of a user about to be created.
type NewUserParams struct {
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	Avatar       string
	CoverImage   string
	CreatedAt    time.Time
}
