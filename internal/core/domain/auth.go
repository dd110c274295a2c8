package domain

import (
	"fmt"
	"strings"
	"time"
)

// TokenPair is the access/refresh pair issued at login and on every renewal.
type TokenPair struct {
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	User   User
	Tokens TokenPair
}

// LoginIdentifierPolicy decides which lookup identifiers a login request must carry.
type LoginIdentifierPolicy string

const (
	// LoginPolicyRequireEither rejects a login only when both username and email are missing.
	LoginPolicyRequireEither LoginIdentifierPolicy = "either"
	// LoginPolicyRequireBoth rejects a login when either username or email is missing.
	LoginPolicyRequireBoth LoginIdentifierPolicy = "both"
)

// ParseLoginIdentifierPolicy maps a configuration value to a policy. Empty selects the default.
func ParseLoginIdentifierPolicy(value string) (LoginIdentifierPolicy, error) {
	switch p := LoginIdentifierPolicy(strings.ToLower(strings.TrimSpace(value))); p {
	case "":
		return LoginPolicyRequireEither, nil
	case LoginPolicyRequireEither, LoginPolicyRequireBoth:
		return p, nil
	default:
		return "", fmt.Errorf("invalid login identifier policy %q (want %q or %q)", value, LoginPolicyRequireEither, LoginPolicyRequireBoth)
	}
}

// Satisfied reports whether the supplied identifiers meet the policy.
func (p LoginIdentifierPolicy) Satisfied(username, email string) bool {
	hasUsername := strings.TrimSpace(username) != ""
	hasEmail := strings.TrimSpace(email) != ""
	if p == LoginPolicyRequireBoth {
		return hasUsername && hasEmail
	}
	return hasUsername || hasEmail
}

// ImageFiles references uploaded files saved to local temporary storage.
type ImageFiles struct {
	AvatarPath     string
	CoverImagePath string
}
